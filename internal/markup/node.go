package markup

import (
	"iter"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// NodeType identifies the kind of a Node.
type NodeType int

const (
	// DocumentNode is the root of a tree.
	DocumentNode NodeType = iota

	// ElementNode is an element with a start tag and an optional end tag.
	ElementNode

	// TextNode is a run of character data.
	TextNode

	// RawNode is any other token kept verbatim: comments, the XML prolog,
	// doctype declarations, CDATA sections and stray end tags.
	RawNode
)

// Node is one node of a lossless markup tree.
type Node struct {
	// Type is the node kind.
	Type NodeType

	// Name is the lowercased element name. Empty for non-elements.
	Name string

	// Line is the 1-based source line where the node's token starts.
	Line int

	// Parent is the enclosing node, nil for the document.
	Parent *Node

	// Children are the child nodes in document order.
	Children []*Node

	attr        []html.Attribute
	raw         string
	rawEnd      string
	data        string
	selfClosing bool
	changed     bool
}

// Attr returns the value of the attribute key and whether it is present.
// Keys are compared in lowercase, including prefixed keys such as xml:lang.
func (n *Node) Attr(key string) (string, bool) {
	key = strings.ToLower(key)
	for _, a := range n.attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Lang returns the language declared on the element by xml:lang, or by
// lang when xml:lang is absent.
func (n *Node) Lang() (string, bool) {
	if v, ok := n.Attr("xml:lang"); ok {
		return v, true
	}
	return n.Attr("lang")
}

// SetAttr changes the value of an existing attribute or adds a new one.
// Only the attribute itself is rewritten in the start tag; the rest of the
// tag keeps its original bytes.
func (n *Node) SetAttr(key, val string) {
	if n.Type != ElementNode {
		return
	}
	key = strings.ToLower(key)
	for i, a := range n.attr {
		if a.Key != key {
			continue
		}
		if a.Val == val {
			return
		}
		n.attr[i].Val = val
		n.raw = replaceAttrValue(n.raw, key, val)
		n.changed = true
		return
	}
	n.attr = append(n.attr, html.Attribute{Key: key, Val: val})
	n.raw = insertAttr(n.raw, key, val)
	n.changed = true
}

// Text returns the unescaped character data of a text node.
func (n *Node) Text() string {
	return n.data
}

// SetText replaces the character data of a text node. Setting the same
// text again is a no-op and keeps the original bytes on render.
func (n *Node) SetText(s string) {
	if n.Type != TextNode || s == n.data {
		return
	}
	n.data = s
	n.changed = true
}

// Changed reports whether the node's text or start tag was modified.
func (n *Node) Changed() bool {
	return n.changed
}

// Raw returns the source bytes of the node's own token: the start tag of an
// element, the character data of an unmodified text node, or the whole
// token of a raw node.
func (n *Node) Raw() string {
	return n.raw
}

// RawEnd returns the source bytes of an element's end tag, empty when the
// element was self-closing or never closed.
func (n *Node) RawEnd() string {
	return n.rawEnd
}

// Descendants yields every node below n in document order (pre-order).
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.descend(yield)
	}
}

func (n *Node) descend(yield func(*Node) bool) bool {
	for _, c := range n.Children {
		if !yield(c) {
			return false
		}
		if !c.descend(yield) {
			return false
		}
	}
	return true
}

func (n *Node) appendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// attrPattern matches one attribute assignment inside a start tag.
func attrPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(\s` + regexp.QuoteMeta(key) + `\s*=\s*)("[^"]*"|'[^']*'|[^\s"'>/]+)`)
}

func replaceAttrValue(tag, key, val string) string {
	re := attrPattern(key)
	loc := re.FindStringSubmatchIndex(tag)
	if loc == nil {
		return insertAttr(tag, key, val)
	}
	quote := `"`
	if old := tag[loc[4]:loc[5]]; strings.HasPrefix(old, "'") {
		quote = "'"
	}
	return tag[:loc[4]] + quote + escapeAttr(val, quote) + quote + tag[loc[5]:]
}

func insertAttr(tag, key, val string) string {
	end := len(tag) - 1
	if strings.HasSuffix(tag, "/>") {
		end = len(tag) - 2
	}
	if end < 0 {
		return tag
	}
	return strings.TrimRight(tag[:end], " \t\r\n") + " " + key + `="` + escapeAttr(val, `"`) + `"` + tag[end:]
}

func escapeAttr(val, quote string) string {
	val = strings.ReplaceAll(val, "&", "&amp;")
	val = strings.ReplaceAll(val, "<", "&lt;")
	if quote == "'" {
		return strings.ReplaceAll(val, "'", "&apos;")
	}
	return strings.ReplaceAll(val, `"`, "&quot;")
}
