// Package review flags lines that break a structural rule and hands them
// to a viewer for triage.
package review

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/nao1215/zhproof/internal/model"
)

// Terminators are the strings a line may legitimately end with.
type Terminators []string

// DefaultTerminators returns the sentence enders of Latin and Chinese text,
// each with its ellipsis form.
func DefaultTerminators() Terminators {
	return Terminators{
		".", "?", "!", "……",
		"。", "？", "！", "······",
	}
}

// Ends reports whether s ends with one of the terminators.
func (t Terminators) Ends(s string) bool {
	return slices.ContainsFunc(t, func(end string) bool {
		return strings.HasSuffix(s, end)
	})
}

// FlagLines returns the 1-based numbers of the non-blank lines of content
// that, once trimmed, do not end with a terminator.
func FlagLines(content string, t Terminators) []int {
	var flagged []int
	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !t.Ends(trimmed) {
			flagged = append(flagged, i+1)
		}
	}
	return flagged
}

// Session is one file handed to a viewer.
type Session struct {
	// Path is the reviewed file.
	Path string
	// Rule is the rule that flagged the lines.
	Rule model.RuleID
	// Content is the reconstructed text; its line N is line N of the file.
	Content string
	// Lines are the flagged line numbers in ascending order.
	Lines []int
}

// Viewer shows a session to the proofreader and returns when the session
// is over, either because every line was seen or because the proofreader
// quit the file.
type Viewer interface {
	View(ctx context.Context, s Session) error
}

// Reviewer runs the line check and drives a viewer.
type Reviewer struct {
	terminators Terminators
	viewer      Viewer
	logger      *slog.Logger
}

// Option configures a Reviewer.
type Option func(*Reviewer)

// WithViewer sets the viewer. Without one, flagged lines are only returned.
func WithViewer(v Viewer) Option {
	return func(r *Reviewer) {
		r.viewer = v
	}
}

// WithTerminators replaces the default terminators.
func WithTerminators(t Terminators) Option {
	return func(r *Reviewer) {
		r.terminators = t
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reviewer) {
		r.logger = logger
	}
}

// NewReviewer returns a Reviewer.
func NewReviewer(opts ...Option) *Reviewer {
	r := &Reviewer{
		terminators: DefaultTerminators(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Review flags the lines of content and, when there are any, blocks on the
// viewer until the proofreader is done with the file.
func (r *Reviewer) Review(ctx context.Context, path string, rule model.RuleID, content string) (model.ReviewResult, error) {
	result := model.ReviewResult{Path: path, Rule: rule}

	numbers := FlagLines(content, r.terminators)
	if len(numbers) == 0 {
		return result, nil
	}

	lines := strings.Split(content, "\n")
	for _, n := range numbers {
		result.Lines = append(result.Lines, model.FlaggedLine{
			Line: n,
			Rule: rule,
			Path: path,
			Text: strings.TrimSpace(lines[n-1]),
		})
	}
	r.logger.Debug("lines flagged",
		slog.String("path", path),
		slog.String("rule", string(rule)),
		slog.Int("count", len(numbers)))

	if r.viewer == nil {
		return result, nil
	}
	if err := r.viewer.View(ctx, Session{Path: path, Rule: rule, Content: content, Lines: numbers}); err != nil {
		return result, err
	}
	return result, nil
}
