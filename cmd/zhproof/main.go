// Package main provides the entry point for the zhproof CLI.
//
// zhproof proofreads Chinese EPUB source trees. It converts a book between
// Traditional and Simplified Chinese, cleans text with rewrite rules and
// walks the proofreader through lines that need a human eye.
//
// Usage:
//
//	zhproof convert t2s <input_dir> <output_dir>
//	zhproof clean [-r <rule>|all] <path>
//	zhproof pr [-r <rule>|all] <directory>
//
// See --help for all available options.
package main

// main is the entry point for zhproof.
func main() {
	Execute()
}
