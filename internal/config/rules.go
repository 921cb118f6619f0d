package config

import (
	"slices"

	"github.com/nao1215/zhproof/internal/model"
)

// RuleSpec is a rule as written in configuration. A nil field is missing
// and is inherited from the default rule; an explicit empty list is a
// value of its own.
type RuleSpec struct {
	// Name is the rule identifier.
	Name string `yaml:"name"`

	// Extensions are file extensions without the dot.
	Extensions []string `yaml:"extensions,omitempty"`

	// Tags are element names whose text is in scope.
	Tags []string `yaml:"tags,omitempty"`

	// SkipFiles are base names never processed.
	SkipFiles []string `yaml:"skip_files,omitempty"`

	// Policy is "auto" or "prompt". Empty is missing.
	Policy string `yaml:"policy,omitempty"`
}

// HTMLTextTags are the elements of HTML-like files that hold text.
var HTMLTextTags = []string{"h1", "h2", "h3", "h4", "h5", "h6", "p", "figcaption", "title"}

// HTMLExtensions are the extensions of HTML-like files.
var HTMLExtensions = []string{"html", "htm", "xhtml"}

// DefaultRules returns the built-in rules in processing order. The default
// rule comes first; every other rule inherits what it leaves out.
func DefaultRules() []RuleSpec {
	return []RuleSpec{
		{
			Name:       string(model.RuleDefault),
			Extensions: []string{"svg", "xhtml"},
			Tags:       []string{"h", "p", "text", "figcaption"},
			SkipFiles:  []string{},
			Policy:     model.PolicyPrompt.String(),
		},
		{
			Name:       string(model.RulePunctuationLineEnd),
			Extensions: []string{"xhtml"},
			Tags:       []string{"p", "figcaption"},
			SkipFiles:  []string{"loi.xhtml", "titlepage.xhtml"},
		},
		{
			Name:       string(model.RuleChineseSpacing),
			Extensions: slices.Clone(HTMLExtensions),
			Tags:       slices.Clone(HTMLTextTags),
		},
		{
			Name:       string(model.RuleNumberSpacing),
			Extensions: slices.Clone(HTMLExtensions),
			Tags:       slices.Clone(HTMLTextTags),
		},
		{
			Name:       string(model.RuleReplaceText),
			Extensions: slices.Clone(HTMLExtensions),
			Tags:       slices.Clone(HTMLTextTags),
		},
		{
			Name:       string(model.RuleChinesePunctuation),
			Extensions: slices.Clone(HTMLExtensions),
			Tags:       slices.Clone(HTMLTextTags),
		},
	}
}

// MergeRules overlays override on base. A rule with a name already in base
// replaces the fields it sets; other rules are appended in their order.
func MergeRules(base, override []RuleSpec) []RuleSpec {
	merged := slices.Clone(base)
	for _, o := range override {
		i := slices.IndexFunc(merged, func(r RuleSpec) bool { return r.Name == o.Name })
		if i < 0 {
			merged = append(merged, o)
			continue
		}
		if o.Extensions != nil {
			merged[i].Extensions = o.Extensions
		}
		if o.Tags != nil {
			merged[i].Tags = o.Tags
		}
		if o.SkipFiles != nil {
			merged[i].SkipFiles = o.SkipFiles
		}
		if o.Policy != "" {
			merged[i].Policy = o.Policy
		}
	}
	return merged
}
