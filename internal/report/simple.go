package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/zhproof/internal/model"
)

// SimpleWriter outputs one line per flagged line, in the "path:line: text"
// form understood by editors and grep-like tools, followed by a summary.
type SimpleWriter struct {
	baseWriter

	// summary controls whether the closing count is printed.
	summary bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithSummary enables or disables the closing count.
func WithSummary(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.summary = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		summary:    true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the flagged lines.
func (w *SimpleWriter) Write(results []model.ReviewResult) (int, error) {
	var b strings.Builder
	for _, r := range results {
		for _, l := range r.Lines {
			fmt.Fprintf(&b, "%s:%d: [%s] %s\n", l.Path, l.Line, l.Rule, l.Text)
		}
	}
	if w.summary {
		s := Summarize(results)
		fmt.Fprintf(&b, "%d flagged line(s) in %d of %d file(s)\n", s.Lines, s.FlaggedFiles, s.Files)
	}
	return io.WriteString(w.output, b.String())
}
