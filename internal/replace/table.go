package replace

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/nao1215/zhproof/internal/model"
)

var (
	// ErrEmptyMatch is returned for an entry without a match string.
	ErrEmptyMatch = errors.New("replacement match is empty")

	// ErrDuplicateMatch is returned when two entries share a match string.
	ErrDuplicateMatch = errors.New("duplicate replacement match")

	// ErrInvalidScope is returned for an unknown language scope.
	ErrInvalidScope = errors.New("invalid replacement language scope")
)

// Table is an ordered, read-only list of replacement entries. Later entries
// see the text produced by earlier ones.
type Table struct {
	entries []model.ReplacementEntry
}

// NewTable validates entries and returns a table holding a copy of them.
func NewTable(entries []model.ReplacementEntry) (*Table, error) {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.Match == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyMatch)
		}
		if seen[e.Match] {
			return nil, fmt.Errorf("entry %d %q: %w", i, e.Match, ErrDuplicateMatch)
		}
		if !e.Scope.Valid() {
			return nil, fmt.Errorf("entry %d %q: %w: %q", i, e.Match, ErrInvalidScope, e.Scope)
		}
		seen[e.Match] = true
	}
	return &Table{entries: slices.Clone(entries)}, nil
}

// DefaultTable returns the built-in table.
func DefaultTable() *Table {
	return &Table{entries: DefaultEntries()}
}

// Merge returns a new table in which entries with a match already present
// replace the existing entry in place and the others are appended.
func (t *Table) Merge(extra []model.ReplacementEntry) (*Table, error) {
	merged := slices.Clone(t.entries)
	for _, e := range extra {
		i := slices.IndexFunc(merged, func(old model.ReplacementEntry) bool {
			return old.Match == e.Match
		})
		if i >= 0 {
			merged[i] = e
			continue
		}
		merged = append(merged, e)
	}
	return NewTable(merged)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []model.ReplacementEntry {
	return slices.Clone(t.entries)
}

// Matching yields, in table order, the entries whose scope covers lang.
func (t *Table) Matching(lang string) iter.Seq[model.ReplacementEntry] {
	return func(yield func(model.ReplacementEntry) bool) {
		for _, e := range t.entries {
			if !e.Scope.Matches(lang) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// DefaultEntries returns the built-in replacement entries.
//
// Variants that are hard to tell apart and make no difference to the text
// use the modern form. Traditional forms used in zh-Hant are kept there;
// zh-Hans uses the most common form.
func DefaultEntries() []model.ReplacementEntry {
	return []model.ReplacementEntry{
		{Match: "晩", Replacement: "晚", Scope: model.ScopeZh, Policy: model.PolicyAuto, Kind: model.KindVariant},
		{Match: "硏", Replacement: "研", Scope: model.ScopeHans, Policy: model.PolicyAuto, Kind: model.KindHant2Hans},
		{Match: "槪", Replacement: "概", Scope: model.ScopeHans, Policy: model.PolicyAuto, Kind: model.KindHant2Hans},
		{Match: "尙", Replacement: "尚", Scope: model.ScopeHans, Policy: model.PolicyAuto, Kind: model.KindHant2Hans},
		{
			Match:       "著",
			Replacement: "着",
			Scope:       model.ScopeHans,
			Policy:      model.PolicyPrompt,
			Kind:        model.KindHant2Hans,
			Notes:       "zh-TW uses 著 everywhere, zh-CN uses 着 in some situations",
		},
		{Match: "値", Replacement: "值", Scope: model.ScopeHans, Policy: model.PolicyAuto, Kind: model.KindHant2Hans},
		{Match: "鄕", Replacement: "乡", Scope: model.ScopeHans, Policy: model.PolicyAuto, Kind: model.KindHant2Hans},
		{Match: "倂", Replacement: "并", Scope: model.ScopeHans, Policy: model.PolicyAuto, Kind: model.KindHant2Hans},
		{Match: "一一", Replacement: "——", Scope: model.ScopeZh, Policy: model.PolicyPrompt, Kind: model.KindErrorOCR},
		{Match: "処", Replacement: "处", Scope: model.ScopeHans, Policy: model.PolicyAuto, Kind: model.KindHant2Hans},
		{Match: "関", Replacement: "关", Scope: model.ScopeHans, Policy: model.PolicyAuto, Kind: model.KindHant2Hans},
		{Match: "濶", Replacement: "阔", Scope: model.ScopeHans, Policy: model.PolicyAuto, Kind: model.KindHant2Hans},
		{Match: "敍", Replacement: "叙", Scope: model.ScopeHans, Policy: model.PolicyAuto, Kind: model.KindHant2Hans},
		{Match: "塡", Replacement: "填", Scope: model.ScopeHans, Policy: model.PolicyAuto, Kind: model.KindHant2Hans},
		{Match: "郷", Replacement: "鄕", Scope: model.ScopeHant, Policy: model.PolicyAuto, Kind: model.KindVariant},
		{Match: "髪", Replacement: "髮", Scope: model.ScopeZh, Policy: model.PolicyAuto, Kind: model.KindVariant},
	}
}
