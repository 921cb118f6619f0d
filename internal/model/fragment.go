package model

import "strings"

// Fragment is one editable run of text taken from an in-scope element.
// It lives only while the walker and the rewrite engine process one file.
type Fragment struct {
	// Text is the unescaped text of the run.
	Text string

	// Tag is the name of the element that directly owns the run.
	Tag string

	// Lang is the language inherited from the nearest ancestor that
	// declares one.
	Lang string

	// Line is the 1-based source line of the first non-blank character.
	Line int

	// Path is the file the run came from.
	Path string
}

// IsChinese reports whether lang is zh or a zh- variant.
func IsChinese(lang string) bool {
	return lang == "zh" || strings.HasPrefix(lang, "zh-")
}

// FlaggedLine is a source line that violates a review rule.
type FlaggedLine struct {
	// Line is the 1-based line number.
	Line int `json:"line"`

	// Rule is the rule that flagged the line.
	Rule RuleID `json:"rule"`

	// Path is the file that contains the line.
	Path string `json:"path"`

	// Text is the trimmed content of the line, for listings.
	Text string `json:"text,omitempty"`
}

// ReviewResult groups the flagged lines of one file.
type ReviewResult struct {
	// Path is the reviewed file.
	Path string `json:"path"`

	// Rule is the review rule that ran.
	Rule RuleID `json:"rule"`

	// Lines holds the flagged lines in ascending order.
	Lines []FlaggedLine `json:"lines"`
}
