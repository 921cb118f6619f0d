package config

import (
	"fmt"

	"github.com/nao1215/zhproof/internal/model"
)

// File represents the structure of the zhproof configuration file.
type File struct {
	// CanonicalBranch replaces DefaultCanonicalBranch.
	CanonicalBranch string `yaml:"canonical_branch,omitempty"`

	// Editor is the editor command template, with {file} and {line}.
	Editor string `yaml:"editor,omitempty"`

	// Rules override fields of built-in rules by name.
	Rules []RuleSpec `yaml:"rules,omitempty"`

	// Replacements override built-in entries with the same match and
	// append the others to the table.
	Replacements []ReplacementSpec `yaml:"replacements,omitempty"`
}

// ReplacementSpec is a replacement entry as written in configuration.
type ReplacementSpec struct {
	Match       string `yaml:"match"`
	Replacement string `yaml:"replacement"`
	// Lang is the language scope: zh, zh-Hans, zh-Hant or any.
	// Empty means zh.
	Lang string `yaml:"lang,omitempty"`
	// Policy is auto or prompt. Empty means auto.
	Policy string `yaml:"policy,omitempty"`
	// Kind is variant, hant2hans or error_ocr. Empty means variant.
	Kind  string `yaml:"kind,omitempty"`
	Notes string `yaml:"notes,omitempty"`
}

// Entry converts s into a replacement entry.
func (s ReplacementSpec) Entry() (model.ReplacementEntry, error) {
	e := model.ReplacementEntry{
		Match:       s.Match,
		Replacement: s.Replacement,
		Scope:       model.ScopeZh,
		Policy:      model.PolicyAuto,
		Kind:        model.KindVariant,
		Notes:       s.Notes,
	}
	if s.Match == "" {
		return e, fmt.Errorf("%w: empty match", ErrInvalidReplacementSpec)
	}
	if s.Lang != "" {
		e.Scope = model.LangScope(s.Lang)
		if !e.Scope.Valid() {
			return e, fmt.Errorf("%w: %q: unknown lang %q", ErrInvalidReplacementSpec, s.Match, s.Lang)
		}
	}
	if s.Policy != "" {
		p, err := model.ParsePolicy(s.Policy)
		if err != nil {
			return e, fmt.Errorf("%w: %q: %w", ErrInvalidReplacementSpec, s.Match, err)
		}
		e.Policy = p
	}
	if s.Kind != "" {
		e.Kind = model.ReplacementKind(s.Kind)
		switch e.Kind {
		case model.KindVariant, model.KindHant2Hans, model.KindErrorOCR:
		default:
			return e, fmt.Errorf("%w: %q: unknown kind %q", ErrInvalidReplacementSpec, s.Match, s.Kind)
		}
	}
	return e, nil
}
