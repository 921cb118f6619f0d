package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/zhproof/internal/model"
)

// JSONWriter outputs reports in JSON format.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// version is written into the report when not empty.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// WithVersion records the zhproof version in the report.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport is the document written by JSONWriter.
type JSONReport struct {
	// Version is the zhproof version that generated this report.
	Version string `json:"version,omitempty"`

	// Summary counts the flagged lines.
	Summary Summary `json:"summary"`

	// Files holds the files with at least one flagged line.
	Files []model.ReviewResult `json:"files"`
}

// Write outputs the results as one JSON document.
func (w *JSONWriter) Write(results []model.ReviewResult) (int, error) {
	doc := JSONReport{
		Version: w.version,
		Summary: Summarize(results),
		Files:   make([]model.ReviewResult, 0, len(results)),
	}
	for _, r := range results {
		if len(r.Lines) > 0 {
			doc.Files = append(doc.Files, r)
		}
	}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')
	return w.output.Write(data)
}
