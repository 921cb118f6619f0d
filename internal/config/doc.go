// Package config provides the configuration of zhproof: the settings built
// from command line flags, the optional YAML configuration file with rule
// and replacement overrides, and the built-in rule definitions.
package config
