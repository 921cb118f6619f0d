package model

import (
	"slices"
	"strings"
)

// RuleID names a rule. The set of identifiers is closed: every rule the
// tool can run is listed below, and configuration naming anything else is
// rejected when the registry is built.
type RuleID string

const (
	// RuleDefault holds the values inherited by rules that omit a field.
	// It is never run itself.
	RuleDefault RuleID = "default"

	// RulePunctuationLineEnd flags lines that do not end with sentence
	// ending punctuation.
	RulePunctuationLineEnd RuleID = "punctuation_line_end"

	// RuleChineseSpacing enforces a single space between CJK text and
	// Latin letters or digits, and no space around CJK punctuation.
	RuleChineseSpacing RuleID = "chinese_spacing"

	// RuleNumberSpacing removes whitespace inside numbers.
	RuleNumberSpacing RuleID = "number_spacing"

	// RuleReplaceText applies the character replacement table.
	RuleReplaceText RuleID = "replace_text"

	// RuleChinesePunctuation turns half-width punctuation next to CJK text
	// into its full-width form.
	RuleChinesePunctuation RuleID = "chinese_punctuation"
)

// RuleKind tells which command runs a rule.
type RuleKind int

const (
	// KindNone is the kind of the default rule.
	KindNone RuleKind = iota

	// KindRewrite rules rewrite text fragments in place (clean command).
	KindRewrite

	// KindReview rules flag lines for a human (pr command).
	KindReview
)

// String returns a human-readable name of the kind.
func (k RuleKind) String() string {
	switch k {
	case KindRewrite:
		return "rewrite"
	case KindReview:
		return "review"
	default:
		return "none"
	}
}

// ruleKinds is the closed table of known rule identifiers.
var ruleKinds = map[RuleID]RuleKind{
	RuleDefault:            KindNone,
	RulePunctuationLineEnd: KindReview,
	RuleChineseSpacing:     KindRewrite,
	RuleNumberSpacing:      KindRewrite,
	RuleReplaceText:        KindRewrite,
	RuleChinesePunctuation: KindRewrite,
}

// Kind returns the kind of a rule identifier and whether it is known.
func (id RuleID) Kind() (RuleKind, bool) {
	k, ok := ruleKinds[id]
	return k, ok
}

// Known reports whether id is one of the identifiers above.
func (id RuleID) Known() bool {
	_, ok := ruleKinds[id]
	return ok
}

// Rule is a fully resolved rule: every field is populated, either
// explicitly or by inheritance from the default rule.
type Rule struct {
	// ID is the rule name.
	ID RuleID

	// Kind tells whether clean or pr runs the rule.
	Kind RuleKind

	// Extensions are the file extensions (without the dot) the rule reads.
	Extensions []string

	// Tags are the element names whose text is in scope.
	Tags []string

	// SkipFiles are base names that are never processed.
	SkipFiles []string

	// Policy is the rule-level policy.
	Policy Policy
}

// HasTag reports whether name is one of the rule's in-scope tags.
func (r Rule) HasTag(name string) bool {
	return slices.Contains(r.Tags, strings.ToLower(name))
}

// HasExtension reports whether ext (with or without the leading dot)
// is one of the rule's extensions.
func (r Rule) HasExtension(ext string) bool {
	return slices.Contains(r.Extensions, strings.TrimPrefix(ext, "."))
}

// Skips reports whether a file with the given base name is excluded.
func (r Rule) Skips(base string) bool {
	return slices.Contains(r.SkipFiles, base)
}
