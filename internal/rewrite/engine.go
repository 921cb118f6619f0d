// Package rewrite implements the text rewrite rules applied to fragments:
// Chinese/Latin spacing, number spacing and full-width punctuation.
//
// Every rule is a total function of the text and its language. Texts
// without Chinese characters, full-width punctuation or digits pass through
// unchanged.
package rewrite

// Func rewrites the text of a fragment written in lang.
type Func func(text, lang string) string

// maxRounds bounds every fixpoint loop of the package.
const maxRounds = 8

// Chain returns a Func applying fns in order, repeating the whole sequence
// until the text no longer changes. The result of a chain is therefore
// stable: running it again on its own output is a no-op.
func Chain(fns ...Func) Func {
	return func(text, lang string) string {
		for range maxRounds {
			next := text
			for _, fn := range fns {
				next = fn(next, lang)
			}
			if next == text {
				break
			}
			text = next
		}
		return text
	}
}
