package rewrite

import (
	"regexp"

	"github.com/nao1215/zhproof/internal/model"
)

// substitution is one regular expression pass.
type substitution struct {
	re   *regexp.Regexp
	repl string
}

func sub(pattern, repl string) substitution {
	return substitution{re: regexp.MustCompile(pattern), repl: repl}
}

// apply runs the substitution until the text stops changing. A single
// ReplaceAllString leaves overlapping matches such as "1 2 3" half done.
func (s substitution) apply(text string) string {
	for range maxRounds {
		next := s.re.ReplaceAllString(text, s.repl)
		if next == text {
			break
		}
		text = next
	}
	return text
}

// applyAll runs subs in order, repeating the set until the text stops
// changing, so a rewrite made by a later substitution is seen by an earlier
// one.
func applyAll(text string, subs []substitution) string {
	for range maxRounds {
		next := text
		for _, s := range subs {
			next = s.apply(next)
		}
		if next == text {
			break
		}
		text = next
	}
	return text
}

// The two inserting substitutions accept zero whitespace; every deleting
// one needs at least one space, or a bare pair would swallow the character
// the next pair starts with.
var spacingSubs = []substitution{
	// one space between Chinese and Latin text, both directions
	sub(`(`+classHan+`)`+classSpace+`*(`+classAlnum+`)`, `${1} ${2}`),
	sub(`(`+classAlnum+`)`+classSpace+`*(`+classHan+`)`, `${1} ${2}`),
	// no space around punctuation
	sub(`(`+classHan+`)`+classSpace+`+(`+classPunct+`)`, `${1}${2}`),
	sub(`(`+classPunct+`)`+classSpace+`+(`+classHan+`)`, `${1}${2}`),
	sub(`(`+classPunct+`)`+classSpace+`+(`+classPunct+`)`, `${1}${2}`),
	sub(`(`+classPunct+`)`+classSpace+`+(`+classAlnum+`)`, `${1}${2}`),
	sub(`(`+classAlnum+`)`+classSpace+`+(`+classPunct+`)`, `${1}${2}`),
}

// ChineseSpacing puts exactly one space between Chinese characters and
// adjacent letters or digits, and removes spaces next to full-width
// punctuation.
func ChineseSpacing(text, _ string) string {
	return applyAll(text, spacingSubs)
}

var (
	digitSubs = []substitution{
		sub(`(`+classDigit+`)`+classSpace+`+(`+classDigit+`)`, `${1}${2}`),
	}
	decimalSubs = []substitution{
		sub(`(`+classDigit+`)(?:`+classSpace+`+\.`+classSpace+`*|\.`+classSpace+`+)(`+classDigit+`)`, `${1}.${2}`),
	}
)

// NumberSpacing removes whitespace between digits. For Chinese text it also
// removes whitespace around a decimal point between digits, so "10 . 1"
// becomes "10.1".
func NumberSpacing(text, lang string) string {
	text = applyAll(text, digitSubs)
	if model.IsChinese(lang) {
		text = applyAll(text, decimalSubs)
	}
	return text
}

var punctuationSubs = []substitution{
	sub(`(`+classHanPunct+`)`+classSpace+`*,`, `${1}，`),
	sub(`\(`+classSpace+`*(`+classHanPunct+`)`, `（${1}`),
	sub(`(`+classHanPunct+`)`+classSpace+`*\)`, `${1}）`),
	sub(`(`+classHanPunct+`)`+classSpace+`*;`, `${1}；`),
}

// ChinesePunctuation turns a half-width comma, semicolon or closing
// parenthesis following Chinese text, and an opening parenthesis preceding
// it, into the full-width form. Whitespace in between is dropped.
func ChinesePunctuation(text, _ string) string {
	return applyAll(text, punctuationSubs)
}
