package rewrite

import (
	"strings"
	"unicode"
)

// cjkRanges are the ideograph blocks treated as Chinese characters: the
// unified ideographs, extension A and extensions B through H.
var cjkRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3400, Hi: 0x4dbf, Stride: 1},
		{Lo: 0x4e00, Hi: 0x9fff, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x20000, Hi: 0x2a6df, Stride: 1},
		{Lo: 0x2a700, Hi: 0x2ebef, Stride: 1},
		{Lo: 0x30000, Hi: 0x3134f, Stride: 1},
	},
}

// cjkPunct are the typographic quotes and full-width punctuation marks.
const cjkPunct = "“”‘’，。！？、：；…—～《》「」『』【】〔〕〈〉〖〗〘〙〚〛（）［］｛｝｟｠｢｣"

// Regular expression classes built from the tables above.
const (
	classHan      = `[\x{3400}-\x{4dbf}\x{4e00}-\x{9fff}\x{20000}-\x{2a6df}\x{2a700}-\x{2ebef}\x{30000}-\x{3134f}]`
	classPunct    = `[` + cjkPunct + `]`
	classHanPunct = `[\x{3400}-\x{4dbf}\x{4e00}-\x{9fff}\x{20000}-\x{2a6df}\x{2a700}-\x{2ebef}\x{30000}-\x{3134f}` + cjkPunct + `]`
	classAlnum    = `[A-Za-z0-9]`
	classDigit    = `[0-9]`
	classSpace    = `[\s\p{Z}]`
)

// IsCJK reports whether r is a Chinese character.
func IsCJK(r rune) bool {
	return unicode.Is(cjkRanges, r)
}

// IsCJKPunct reports whether r is a full-width punctuation mark or a
// typographic quote.
func IsCJKPunct(r rune) bool {
	return strings.ContainsRune(cjkPunct, r)
}

// ContainsCJK reports whether s contains at least one Chinese character.
func ContainsCJK(s string) bool {
	return strings.IndexFunc(s, IsCJK) >= 0
}
