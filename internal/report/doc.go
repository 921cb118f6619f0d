// Package report writes the lines flagged by review rules without the
// interactive viewer.
//
// This package contains writers for different output formats:
//   - SimpleWriter: one "path:line: text" row per flagged line
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: a Markdown document for sharing with other proofreaders
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably.
package report
