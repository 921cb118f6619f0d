// Package log builds the slog loggers used by zhproof.
//
// Proofreading logs carry book text: fragments, replacement keys and whole
// lines. The ExcerptHandler wraps any slog.Handler and keeps such values
// readable in a terminal:
//   - String values longer than MaxExcerptRunes are clipped with an ellipsis
//   - Newlines and tabs are escaped so one record stays on one line
//   - Values under a document key (content, document) are replaced by their size
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("fragment rewritten",
//	    "path", f.Path,
//	    "line", f.Line,
//	    "text", f.Text, // clipped to MaxExcerptRunes
//	)
//
// Interactive output such as prompts and the viewer never goes through
// these loggers.
package log
