package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidDirection is returned when the conversion direction is
	// neither t2s nor s2t.
	ErrInvalidDirection = errors.New("invalid direction: use either 't2s' or 's2t'")

	// ErrNoInputDir is returned when convert has no input directory.
	ErrNoInputDir = errors.New("no input directory specified")

	// ErrNoOutputDir is returned when convert has no output directory.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrSameDirs is returned when convert would write over its input.
	ErrSameDirs = errors.New("input and output directories must differ")

	// ErrInvalidJobs is returned when the number of jobs is not positive.
	ErrInvalidJobs = errors.New("invalid number of jobs: must be positive")

	// ErrNoPath is returned when clean or pr has no path to work on.
	ErrNoPath = errors.New("no path specified")

	// ErrInvalidFormat is returned for an unknown pr output format.
	ErrInvalidFormat = errors.New("invalid format: use tui, text, json or markdown")

	// ErrReportFileWithTUI is returned when an output file is requested
	// for the interactive viewer.
	ErrReportFileWithTUI = errors.New("--output cannot be used with --format tui")

	// ErrInvalidRuleSpec is returned for a malformed rule in the
	// configuration file.
	ErrInvalidRuleSpec = errors.New("invalid rule definition")

	// ErrInvalidReplacementSpec is returned for a malformed replacement
	// in the configuration file.
	ErrInvalidReplacementSpec = errors.New("invalid replacement definition")
)
