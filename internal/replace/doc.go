// Package replace holds the character replacement table and resolves its
// entries against fragments.
//
// Entries are applied in table order. An entry with the auto policy
// replaces every occurrence at once. An entry with the prompt policy asks a
// Prompter once per fragment in which it occurs; the answer applies the
// replacement, skips it, or defers the fragment to an external editor, in
// which case nothing else is done to that fragment.
package replace
