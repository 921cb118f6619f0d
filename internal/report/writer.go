package report

import (
	"io"

	"github.com/nao1215/zhproof/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the results of one pr run. Files without flagged lines
	// may be present and are left out by writers that list lines.
	// Returns the number of bytes written and any error encountered.
	Write(results []model.ReviewResult) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Summary counts what a run flagged.
type Summary struct {
	// Files is the number of files reviewed.
	Files int `json:"files"`

	// FlaggedFiles is the number of files with at least one flagged line.
	FlaggedFiles int `json:"flagged_files"`

	// Lines is the total number of flagged lines.
	Lines int `json:"lines"`
}

// Summarize counts results.
func Summarize(results []model.ReviewResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if len(r.Lines) > 0 {
			s.FlaggedFiles++
			s.Lines += len(r.Lines)
		}
	}
	return s
}
