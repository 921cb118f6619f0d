package replace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/zhproof/internal/model"
)

// State is the resolution state of one entry within one fragment.
type State int

const (
	// StatePending means the entry matched and its policy is not yet resolved.
	StatePending State = iota
	// StateAutoApplied means an auto entry is being applied.
	StateAutoApplied
	// StateAwaitingUser means a prompt entry waits for a decision.
	StateAwaitingUser
	// StateApplied means every occurrence was replaced.
	StateApplied
	// StateSkipped means the text was left unchanged.
	StateSkipped
	// StateDeferred means the fragment was handed to the editor.
	StateDeferred
)

// String returns a lowercase name for the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAutoApplied:
		return "auto-applied"
	case StateAwaitingUser:
		return "awaiting-user"
	case StateApplied:
		return "applied"
	case StateSkipped:
		return "skipped"
	case StateDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// Decision is the proofreader's answer to a prompt.
type Decision int

const (
	// DecisionSkip leaves the text unchanged.
	DecisionSkip Decision = iota
	// DecisionApply replaces every occurrence in the fragment.
	DecisionApply
	// DecisionEdit opens the editor and stops work on the fragment.
	DecisionEdit
)

// Prompt describes one pending question.
type Prompt struct {
	// Fragment is the fragment being processed.
	Fragment model.Fragment
	// Text is the current fragment text, with earlier entries applied.
	Text string
	// Entry is the entry asking for confirmation.
	Entry model.ReplacementEntry
	// Count is the number of occurrences of Entry.Match in Text.
	Count int
}

// Prompter asks the proofreader about one entry. Calls are never concurrent.
type Prompter interface {
	Ask(ctx context.Context, p Prompt) (Decision, error)
}

// Editor opens a file at a line and returns when editing is done.
type Editor interface {
	Open(ctx context.Context, path string, line int) error
}

// Resolution records what happened to one matching entry.
type Resolution struct {
	Entry model.ReplacementEntry
	State State
	Count int
}

// Result is the outcome of resolving one fragment.
type Result struct {
	// Text is the fragment text after all applied replacements.
	Text string
	// Deferred is true when the proofreader chose to edit the fragment.
	// No further rule should touch the fragment in this pass.
	Deferred bool
	// Resolutions lists the matching entries in table order.
	Resolutions []Resolution
}

// Changed reports whether any replacement was applied.
func (r Result) Changed() bool {
	for _, res := range r.Resolutions {
		if res.State == StateApplied {
			return true
		}
	}
	return false
}

// Resolver applies a table to fragments.
type Resolver struct {
	table    *Table
	prompter Prompter
	editor   Editor
	autoOnly bool
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPrompter sets the prompter for prompt entries. Without one, prompt
// entries are skipped.
func WithPrompter(p Prompter) Option {
	return func(r *Resolver) {
		r.prompter = p
	}
}

// WithEditor sets the editor opened on DecisionEdit.
func WithEditor(e Editor) Option {
	return func(r *Resolver) {
		r.editor = e
	}
}

// WithAutoOnly skips every prompt entry without asking.
func WithAutoOnly() Option {
	return func(r *Resolver) {
		r.autoOnly = true
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver returns a Resolver for table.
func NewResolver(table *Table, opts ...Option) *Resolver {
	r := &Resolver{
		table:  table,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs every entry matching the fragment's language over its text.
// Prompter and editor errors other than a failed editor launch abort the
// resolution; a failed launch is logged and the fragment is still deferred.
func (r *Resolver) Resolve(ctx context.Context, f model.Fragment) (Result, error) {
	res := Result{Text: f.Text}

	for e := range r.table.Matching(f.Lang) {
		count := strings.Count(res.Text, e.Match)
		if count == 0 {
			continue
		}
		state, err := r.resolveEntry(ctx, f, res.Text, e, count)
		if err != nil {
			return res, err
		}
		res.Resolutions = append(res.Resolutions, Resolution{Entry: e, State: state, Count: count})

		switch state {
		case StateApplied:
			res.Text = strings.ReplaceAll(res.Text, e.Match, e.Replacement)
		case StateDeferred:
			res.Deferred = true
			return res, nil
		}
	}
	return res, nil
}

// resolveEntry walks one entry from pending to a final state.
func (r *Resolver) resolveEntry(ctx context.Context, f model.Fragment, text string, e model.ReplacementEntry, count int) (State, error) {
	state := StatePending
	for {
		switch state {
		case StatePending:
			if e.Policy == model.PolicyAuto {
				state = StateAutoApplied
				continue
			}
			if r.autoOnly || r.prompter == nil {
				r.logger.Debug("prompt entry not asked",
					slog.String("match", e.Match),
					slog.String("path", f.Path),
					slog.Int("line", f.Line))
				return StateSkipped, nil
			}
			state = StateAwaitingUser

		case StateAutoApplied:
			return StateApplied, nil

		case StateAwaitingUser:
			decision, err := r.prompter.Ask(ctx, Prompt{Fragment: f, Text: text, Entry: e, Count: count})
			if err != nil {
				return state, fmt.Errorf("failed to ask about %q: %w", e.Match, err)
			}
			switch decision {
			case DecisionApply:
				return StateApplied, nil
			case DecisionEdit:
				r.openEditor(ctx, f)
				return StateDeferred, nil
			default:
				return StateSkipped, nil
			}

		default:
			return state, nil
		}
	}
}

func (r *Resolver) openEditor(ctx context.Context, f model.Fragment) {
	if r.editor == nil {
		r.logger.Warn("no editor configured", slog.String("path", f.Path), slog.Int("line", f.Line))
		return
	}
	if err := r.editor.Open(ctx, f.Path, f.Line); err != nil {
		r.logger.Warn("failed to open editor",
			slog.String("path", f.Path),
			slog.Int("line", f.Line),
			slog.String("error", err.Error()))
	}
}

// Auto applies only the auto entries matching lang. It never prompts and
// has the signature of a rewrite function.
func (r *Resolver) Auto(text, lang string) string {
	for e := range r.table.Matching(lang) {
		if e.Policy == model.PolicyAuto {
			text = strings.ReplaceAll(text, e.Match, e.Replacement)
		}
	}
	return text
}
