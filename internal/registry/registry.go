// Package registry resolves rule definitions into complete rules and maps
// every rule identifier to the code that runs it.
//
// Rules are resolved once at startup: fields a rule leaves out are taken
// from the default rule, unknown identifiers are rejected, and the
// dispatch table is checked against the rule list before any file is read.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nao1215/zhproof/internal/config"
	"github.com/nao1215/zhproof/internal/model"
)

var (
	// ErrUnknownRule is returned when configuration names a rule the tool
	// does not implement.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrRuleNotFound is returned by Select for a name not in the registry.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrWrongRuleKind is returned by Select when the named rule belongs to
	// the other command.
	ErrWrongRuleKind = errors.New("rule cannot run in this command")

	// ErrIncompleteRule is returned when a rule lacks a field and there is
	// no default rule to inherit it from.
	ErrIncompleteRule = errors.New("rule has missing fields")
)

// AllRules selects every rule of a kind.
const AllRules = "all"

// Registry is the ordered, read-only list of resolved rules.
type Registry struct {
	rules []model.Rule
}

// New resolves specs into rules. Every spec except the default one
// inherits the fields it leaves out from the default spec; explicit values,
// including explicit empty lists, are kept.
func New(specs []config.RuleSpec) (*Registry, error) {
	var def *config.RuleSpec
	for i := range specs {
		if specs[i].Name == string(model.RuleDefault) {
			def = &specs[i]
			break
		}
	}

	reg := &Registry{}
	seen := make(map[model.RuleID]bool, len(specs))
	for _, spec := range specs {
		id := model.RuleID(spec.Name)
		kind, ok := id.Kind()
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, spec.Name)
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		if def != nil {
			spec = inherit(spec, *def)
		}
		rule, err := resolve(id, kind, spec)
		if err != nil {
			return nil, err
		}
		reg.rules = append(reg.rules, rule)
	}
	return reg, nil
}

// inherit fills the fields spec leaves out with those of def.
func inherit(spec, def config.RuleSpec) config.RuleSpec {
	if spec.Extensions == nil {
		spec.Extensions = def.Extensions
	}
	if spec.Tags == nil {
		spec.Tags = def.Tags
	}
	if spec.SkipFiles == nil {
		spec.SkipFiles = def.SkipFiles
	}
	if spec.Policy == "" {
		spec.Policy = def.Policy
	}
	return spec
}

func resolve(id model.RuleID, kind model.RuleKind, spec config.RuleSpec) (model.Rule, error) {
	if spec.Extensions == nil || spec.Tags == nil || spec.SkipFiles == nil || spec.Policy == "" {
		return model.Rule{}, fmt.Errorf("%w: %q", ErrIncompleteRule, id)
	}
	policy, err := model.ParsePolicy(spec.Policy)
	if err != nil {
		return model.Rule{}, fmt.Errorf("rule %q: %w", id, err)
	}
	return model.Rule{
		ID:         id,
		Kind:       kind,
		Extensions: slices.Clone(spec.Extensions),
		Tags:       slices.Clone(spec.Tags),
		SkipFiles:  slices.Clone(spec.SkipFiles),
		Policy:     policy,
	}, nil
}

// Rules returns a copy of the resolved rules in order, the default rule included.
func (r *Registry) Rules() []model.Rule {
	return slices.Clone(r.rules)
}

// Get returns the rule with the given identifier.
func (r *Registry) Get(id model.RuleID) (model.Rule, bool) {
	i := slices.IndexFunc(r.rules, func(rule model.Rule) bool { return rule.ID == id })
	if i < 0 {
		return model.Rule{}, false
	}
	return r.rules[i], true
}

// Select returns the rules a command runs. An empty name or AllRules
// selects every rule of the kind in registry order; any other name must be
// a rule of that kind.
func (r *Registry) Select(name string, kind model.RuleKind) ([]model.Rule, error) {
	if name == "" || name == AllRules {
		var rules []model.Rule
		for _, rule := range r.rules {
			if rule.Kind == kind {
				rules = append(rules, rule)
			}
		}
		return rules, nil
	}

	rule, ok := r.Get(model.RuleID(name))
	if !ok || rule.Kind == model.KindNone {
		return nil, fmt.Errorf("%w: %q", ErrRuleNotFound, name)
	}
	if rule.Kind != kind {
		return nil, fmt.Errorf("%w: %q is a %s rule", ErrWrongRuleKind, name, rule.Kind)
	}
	return []model.Rule{rule}, nil
}
