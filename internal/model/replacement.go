package model

import "strings"

// LangScope is the language a replacement entry applies to.
type LangScope string

const (
	// ScopeZh applies to every Chinese variant.
	ScopeZh LangScope = "zh"

	// ScopeHans applies to Simplified Chinese only.
	ScopeHans LangScope = "zh-Hans"

	// ScopeHant applies to Traditional Chinese only.
	ScopeHant LangScope = "zh-Hant"

	// ScopeAny applies to every Chinese variant, like ScopeZh.
	ScopeAny LangScope = "any"
)

// Matches reports whether an entry with this scope applies to text in lang.
// The scope matches its own language exactly; zh and any additionally
// match every zh- prefixed language.
func (s LangScope) Matches(lang string) bool {
	if lang == string(s) {
		return true
	}
	return strings.HasPrefix(lang, "zh-") && (s == ScopeZh || s == ScopeAny)
}

// Valid reports whether s is one of the known scopes.
func (s LangScope) Valid() bool {
	switch s {
	case ScopeZh, ScopeHans, ScopeHant, ScopeAny:
		return true
	default:
		return false
	}
}

// ReplacementKind records why an entry exists.
type ReplacementKind string

const (
	// KindVariant replaces a character variant with the preferred form.
	KindVariant ReplacementKind = "variant"

	// KindHant2Hans replaces a Traditional form that survived conversion.
	KindHant2Hans ReplacementKind = "hant2hans"

	// KindErrorOCR fixes a typical OCR mistake.
	KindErrorOCR ReplacementKind = "error_ocr"
)

// ReplacementEntry is one row of the replacement table.
type ReplacementEntry struct {
	// Match is the substring to look for. Never empty, unique per table.
	Match string

	// Replacement is written in place of every occurrence of Match.
	Replacement string

	// Scope limits the entry to fragments of a language.
	Scope LangScope

	// Policy says whether each fragment needs confirmation.
	Policy Policy

	// Kind records why the entry exists.
	Kind ReplacementKind

	// Notes is free text for whoever maintains the table.
	Notes string
}
