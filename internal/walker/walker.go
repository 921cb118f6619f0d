// Package walker traverses a markup tree under a rule's tag scope.
//
// A Walker has two output modes. Fragments yields the text runs owned by
// in-scope elements so they can be rewritten in place. Reconstruct renders
// the whole document as plain text in which out-of-scope text and every
// markup token are reduced to their line breaks, so that line N of the
// result is line N of the source file.
package walker

import (
	"iter"
	"slices"
	"strings"

	"github.com/nao1215/zhproof/internal/markup"
	"github.com/nao1215/zhproof/internal/model"
)

// State is the scope state threaded down the tree. It is passed by value;
// a child never changes the state seen by its siblings.
type State struct {
	// InScope is true once an ancestor or the element itself is one of the
	// walker's tags. It stays true for the whole subtree.
	InScope bool

	// Lang is the nearest declared language.
	Lang string

	// Tag is the name of the element owning the current text.
	Tag string
}

// Run is one in-scope text node together with the fragment describing it.
type Run struct {
	Node     *markup.Node
	Fragment model.Fragment
}

// Walker walks documents with a fixed tag scope.
type Walker struct {
	tags         []string
	defaultScope bool
	path         string
}

// Option configures a Walker.
type Option func(*Walker)

// WithDefaultScope sets the scope state at the document root. With true,
// every text run is in scope regardless of tags.
func WithDefaultScope(inScope bool) Option {
	return func(w *Walker) {
		w.defaultScope = inScope
	}
}

// WithPath sets the file path recorded in fragments.
func WithPath(path string) Option {
	return func(w *Walker) {
		w.path = path
	}
}

// New returns a Walker whose scope is the given tag names.
func New(tags []string, opts ...Option) *Walker {
	w := &Walker{tags: make([]string, 0, len(tags))}
	for _, t := range tags {
		w.tags = append(w.tags, strings.ToLower(t))
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// initial returns the state at the document root. The language defaults to
// the one declared on the root element.
func (w *Walker) initial(doc *markup.Document) State {
	st := State{InScope: w.defaultScope}
	if root := doc.RootElement(); root != nil {
		st.Lang, _ = root.Lang()
	}
	return st
}

// enter returns the state for the children of element n.
func (w *Walker) enter(n *markup.Node, parent State) State {
	st := parent
	st.Tag = n.Name
	if lang, ok := n.Lang(); ok {
		st.Lang = lang
	}
	if slices.Contains(w.tags, n.Name) {
		st.InScope = true
	}
	return st
}

// Fragments yields every non-blank text run owned by an in-scope element,
// in document order. Note reference and backlink anchors are skipped with
// their whole subtree. The caller may change a run's node text while
// iterating.
func (w *Walker) Fragments(doc *markup.Document) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		w.fragments(doc.Root, w.initial(doc), yield)
	}
}

func (w *Walker) fragments(n *markup.Node, st State, yield func(Run) bool) bool {
	for _, c := range n.Children {
		switch c.Type {
		case markup.ElementNode:
			if isNoteAnchor(c) || isRawText(c) {
				continue
			}
			if !w.fragments(c, w.enter(c, st), yield) {
				return false
			}
		case markup.TextNode:
			if !st.InScope || strings.TrimSpace(c.Text()) == "" {
				continue
			}
			run := Run{
				Node: c,
				Fragment: model.Fragment{
					Text: c.Text(),
					Tag:  st.Tag,
					Lang: st.Lang,
					Line: textLine(c),
					Path: w.path,
				},
			}
			if !yield(run) {
				return false
			}
		}
	}
	return true
}

// Reconstruct returns the document text with out-of-scope content blanked.
// In-scope text is kept verbatim. Out-of-scope text keeps its line breaks
// and has every other character replaced by a space. Tags, comments and
// skipped anchors contribute only their line breaks.
func (w *Walker) Reconstruct(doc *markup.Document) string {
	var b strings.Builder
	w.reconstruct(&b, doc.Root, w.initial(doc))
	return b.String()
}

func (w *Walker) reconstruct(b *strings.Builder, n *markup.Node, st State) {
	for _, c := range n.Children {
		switch c.Type {
		case markup.ElementNode:
			if isNoteAnchor(c) || isRawText(c) {
				writeNewlines(b, c.Raw())
				for d := range c.Descendants() {
					writeNewlines(b, d.Raw())
					writeNewlines(b, d.RawEnd())
				}
				writeNewlines(b, c.RawEnd())
				continue
			}
			writeNewlines(b, c.Raw())
			w.reconstruct(b, c, w.enter(c, st))
			writeNewlines(b, c.RawEnd())
		case markup.TextNode:
			if st.InScope {
				b.WriteString(c.Text())
			} else {
				b.WriteString(Blank(c.Text()))
			}
		default:
			writeNewlines(b, c.Raw())
		}
	}
}

// Blank replaces every character of s except line breaks with one space.
func Blank(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' {
			b.WriteByte('\n')
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}

func writeNewlines(b *strings.Builder, s string) {
	b.WriteString(strings.Repeat("\n", strings.Count(s, "\n")))
}

// textLine returns the line of the first non-blank character of a text node.
func textLine(n *markup.Node) int {
	text := n.Text()
	lead := len(text) - len(strings.TrimLeft(text, " \t\r\n\f"))
	return n.Line + strings.Count(text[:lead], "\n")
}

// isNoteAnchor reports whether n is an endnote reference or backlink.
func isNoteAnchor(n *markup.Node) bool {
	if n.Name != "a" {
		return false
	}
	typ, ok := n.Attr("epub:type")
	if !ok {
		return false
	}
	for _, f := range strings.Fields(typ) {
		if f == "noteref" || f == "backlink" {
			return true
		}
	}
	return false
}

func isRawText(n *markup.Node) bool {
	return n.Name == "script" || n.Name == "style"
}
