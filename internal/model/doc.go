// Package model defines the data shared by the proofreading packages.
//
// This package contains the following main types:
//   - Rule: a resolved rule with extensions, tags, skipped files and policy
//   - ReplacementEntry: one row of the character replacement table
//   - Fragment: an editable text run produced by the tag-scoped walker
//   - FlaggedLine and ReviewResult: output of the line-flagging reviewer
//   - Direction: Traditional/Simplified conversion direction
//
// Types here carry no behavior beyond small predicates, so that the walker,
// the rewrite engine and the reviewer can share them without import cycles.
package model
