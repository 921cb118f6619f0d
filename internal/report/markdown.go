package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/zhproof/internal/model"
)

// MarkdownWriter outputs reports in Markdown format, one table of flagged
// lines per file.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the results as a Markdown document.
func (w *MarkdownWriter) Write(results []model.ReviewResult) (int, error) {
	md := markdown.NewMarkdown(w.output)
	s := Summarize(results)

	md.H1("Proofreading Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Files reviewed", "Files flagged", "Lines flagged"},
		Rows: [][]string{{
			strconv.Itoa(s.Files),
			strconv.Itoa(s.FlaggedFiles),
			strconv.Itoa(s.Lines),
		}},
	})
	md.PlainText("")

	if s.Lines == 0 {
		md.Tip("No flagged lines.")
		md.PlainText("")
	}

	for _, r := range results {
		if len(r.Lines) == 0 {
			continue
		}
		md.H2(r.Path)
		md.PlainText("")
		md.PlainTextf("Rule: `%s`", r.Rule)
		md.PlainText("")

		rows := make([][]string, 0, len(r.Lines))
		for _, l := range r.Lines {
			rows = append(rows, []string{strconv.Itoa(l.Line), escapeCell(l.Text)})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Line", "Text"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// escapeCell keeps a line of book text inside its table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
