package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/zhproof/internal/model"
	"github.com/nao1215/zhproof/internal/replace"
	"github.com/nao1215/zhproof/internal/review"
	"github.com/nao1215/zhproof/internal/rewrite"
)

// ErrMissingHandler is returned by Check when a rule has no handler of
// its kind.
var ErrMissingHandler = errors.New("rule has no handler")

// Outcome is the result of a rewrite handler on one fragment.
type Outcome struct {
	// Text is the rewritten fragment text.
	Text string

	// Deferred is set when the proofreader chose to edit the file by hand.
	// No further rule of the pass touches the fragment.
	Deferred bool
}

// RewriteFunc rewrites one fragment under a rule.
type RewriteFunc func(ctx context.Context, rule model.Rule, f model.Fragment) (Outcome, error)

// ReviewFunc reviews the reconstructed text of one file.
type ReviewFunc func(ctx context.Context, path string, rule model.RuleID, content string) (model.ReviewResult, error)

// Handler is the code behind one rule identifier. Exactly one field is set,
// matching the rule's kind.
type Handler struct {
	Rewrite RewriteFunc
	Review  ReviewFunc
}

// Dispatch maps rule identifiers to their handlers.
type Dispatch map[model.RuleID]Handler

// Pure adapts a rewrite function that never interacts. The function is
// repeated until its output is stable, so a second clean run over the same
// file changes nothing.
func Pure(fn rewrite.Func) RewriteFunc {
	stable := rewrite.Chain(fn)
	return func(_ context.Context, _ model.Rule, f model.Fragment) (Outcome, error) {
		return Outcome{Text: stable(f.Text, f.Lang)}, nil
	}
}

// Resolve adapts a replacement resolver. A rule with the auto policy never
// prompts: only auto entries are applied.
func Resolve(resolver *replace.Resolver) RewriteFunc {
	return func(ctx context.Context, rule model.Rule, f model.Fragment) (Outcome, error) {
		if rule.Policy == model.PolicyAuto {
			return Outcome{Text: resolver.Auto(f.Text, f.Lang)}, nil
		}
		res, err := resolver.Resolve(ctx, f)
		if err != nil {
			return Outcome{Text: f.Text}, err
		}
		return Outcome{Text: res.Text, Deferred: res.Deferred}, nil
	}
}

// NewDispatch returns the dispatch table of every rule the tool implements.
func NewDispatch(resolver *replace.Resolver, reviewer *review.Reviewer) Dispatch {
	return Dispatch{
		model.RuleChineseSpacing:     {Rewrite: Pure(rewrite.ChineseSpacing)},
		model.RuleNumberSpacing:      {Rewrite: Pure(rewrite.NumberSpacing)},
		model.RuleReplaceText:        {Rewrite: Resolve(resolver)},
		model.RuleChinesePunctuation: {Rewrite: Pure(rewrite.ChinesePunctuation)},
		model.RulePunctuationLineEnd: {Review: reviewer.Review},
	}
}

// Check verifies that every rule of reg has a handler of its kind.
func (d Dispatch) Check(reg *Registry) error {
	for _, rule := range reg.Rules() {
		h := d[rule.ID]
		switch rule.Kind {
		case model.KindRewrite:
			if h.Rewrite == nil {
				return fmt.Errorf("%w: %q", ErrMissingHandler, rule.ID)
			}
		case model.KindReview:
			if h.Review == nil {
				return fmt.Errorf("%w: %q", ErrMissingHandler, rule.ID)
			}
		}
	}
	return nil
}
