package markup

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"

	"golang.org/x/net/html"
)

// voidElements never have an end tag in HTML. They are only honored for
// documents that are not XML; in XHTML, SVG and OPF every element is either
// self-closing or explicitly closed, and OPF even has a <meta> with content.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// rawTextElements hold character data that is never entity-escaped.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

// Document is a parsed markup file.
type Document struct {
	// Root is the document node. Its children are the top-level tokens.
	Root *Node
}

// Parse reads a markup document. Parsing is best effort: unbalanced end tags
// close every element opened after the matching start tag, and end tags with
// no matching start tag are kept as raw nodes. Only read errors are returned.
func Parse(r io.Reader) (*Document, error) {
	z := html.NewTokenizer(r)
	root := &Node{Type: DocumentNode, Line: 1}
	stack := []*Node{root}
	line := 1
	xmlMode := false

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, z.Err()
		}

		// Raw must be copied before Text or Token rewrite the buffer.
		raw := string(z.Raw())
		top := stack[len(stack)-1]

		switch tt {
		case html.TextToken:
			top.appendChild(&Node{Type: TextNode, Line: line, raw: raw, data: string(z.Text())})

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			n := &Node{
				Type:        ElementNode,
				Name:        tok.Data,
				Line:        line,
				attr:        tok.Attr,
				raw:         raw,
				selfClosing: tt == html.SelfClosingTagToken,
			}
			if _, ok := n.Attr("xmlns"); ok {
				xmlMode = true
			}
			top.appendChild(n)
			if tt == html.StartTagToken && (xmlMode || !voidElements[n.Name]) {
				stack = append(stack, n)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if i := openIndex(stack, string(name)); i > 0 {
				stack[i].rawEnd = raw
				stack = stack[:i]
			} else {
				top.appendChild(&Node{Type: RawNode, Line: line, raw: raw})
			}

		default:
			if strings.HasPrefix(raw, "<?xml") {
				xmlMode = true
			}
			top.appendChild(&Node{Type: RawNode, Line: line, raw: raw})
		}

		line += strings.Count(raw, "\n")
	}

	return &Document{Root: root}, nil
}

// ParseString is Parse for in-memory content.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// openIndex returns the stack index of the innermost open element named
// name, or -1 when none is open.
func openIndex(stack []*Node, name string) int {
	for i := len(stack) - 1; i > 0; i-- {
		if stack[i].Name == name {
			return i
		}
	}
	return -1
}

// Render writes the document back out. Untouched nodes are written with
// their original bytes.
func (d *Document) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	render(bw, d.Root)
	return bw.Flush()
}

// String renders the document into a string.
func (d *Document) String() string {
	var b strings.Builder
	_ = d.Render(&b) //nolint:errcheck // strings.Builder never fails
	return b.String()
}

func render(w *bufio.Writer, n *Node) {
	switch n.Type {
	case DocumentNode:
		for _, c := range n.Children {
			render(w, c)
		}
	case ElementNode:
		_, _ = w.WriteString(n.raw)
		for _, c := range n.Children {
			render(w, c)
		}
		_, _ = w.WriteString(n.rawEnd)
	case TextNode:
		if !n.changed {
			_, _ = w.WriteString(n.raw)
			return
		}
		if n.Parent != nil && rawTextElements[n.Parent.Name] {
			_, _ = w.WriteString(n.data)
			return
		}
		_, _ = w.WriteString(escapeText(n.data))
	case RawNode:
		_, _ = w.WriteString(n.raw)
	}
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// TextNodes yields every text node of the document in document order,
// except the contents of script and style elements.
func (d *Document) TextNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := range d.Root.Descendants() {
			if n.Type != TextNode {
				continue
			}
			if n.Parent != nil && rawTextElements[n.Parent.Name] {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// RootElement returns the first top-level element, nil for a document
// without elements.
func (d *Document) RootElement() *Node {
	for _, c := range d.Root.Children {
		if c.Type == ElementNode {
			return c
		}
	}
	return nil
}

// Changed reports whether any node was modified since parsing.
func (d *Document) Changed() bool {
	for n := range d.Root.Descendants() {
		if n.changed {
			return true
		}
	}
	return false
}
