package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// MaxExcerptRunes is the number of runes kept from a long string value.
const MaxExcerptRunes = 60

// Ellipsis marks a clipped value.
const Ellipsis = "…"

// documentKeys are attribute keys that hold whole files. Their values are
// logged as a size only.
var documentKeys = map[string]bool{
	"content":  true,
	"document": true,
	"body":     true,
}

// newlineEscaper keeps a record on one line.
var newlineEscaper = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// ExcerptHandler wraps an slog.Handler and shortens string attributes
// before passing the record on.
type ExcerptHandler struct {
	handler slog.Handler
}

// NewExcerptHandler creates a new ExcerptHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewExcerptHandler(handler slog.Handler) *ExcerptHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &ExcerptHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *ExcerptHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle shortens the record's attributes and passes it to the underlying handler.
func (h *ExcerptHandler) Handle(ctx context.Context, r slog.Record) error {
	clipped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clipped.AddAttrs(excerptAttr(a))
		return true
	})
	return h.handler.Handle(ctx, clipped)
}

// WithAttrs returns a new handler with the given attributes shortened and added.
func (h *ExcerptHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clipped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clipped[i] = excerptAttr(a)
	}
	return &ExcerptHandler{handler: h.handler.WithAttrs(clipped)}
}

// WithGroup returns a new handler with the given group name.
func (h *ExcerptHandler) WithGroup(name string) slog.Handler {
	return &ExcerptHandler{handler: h.handler.WithGroup(name)}
}

// excerptAttr shortens a single attribute, recursively handling groups.
func excerptAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		clipped := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			clipped[i] = excerptAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clipped...)}
	case slog.KindString:
		s := a.Value.String()
		if documentKeys[strings.ToLower(a.Key)] {
			return slog.String(a.Key, fmt.Sprintf("<%d bytes>", len(s)))
		}
		return slog.String(a.Key, Excerpt(s))
	default:
		return a
	}
}

// Excerpt clips s to MaxExcerptRunes runes and escapes line breaks.
func Excerpt(s string) string {
	if utf8.RuneCountInString(s) > MaxExcerptRunes {
		n := 0
		for i := range s {
			if n == MaxExcerptRunes {
				s = s[:i] + Ellipsis
				break
			}
			n++
		}
	}
	return newlineEscaper.Replace(s)
}

// NewLogger creates a text logger whose records pass through an
// ExcerptHandler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewExcerptHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger is NewLogger with JSON output.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewExcerptHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
