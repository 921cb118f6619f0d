package markup

import "strings"

// RewriteLang changes every language declaration equal to from into to:
// xml:lang and lang attributes, and the text of dc:language elements in
// package documents. It returns the number of declarations changed.
func (d *Document) RewriteLang(from, to string) int {
	count := 0
	for n := range d.Root.Descendants() {
		if n.Type != ElementNode {
			continue
		}
		for _, key := range []string{"xml:lang", "lang"} {
			if v, ok := n.Attr(key); ok && v == from {
				n.SetAttr(key, to)
				count++
			}
		}
		if n.Name != "dc:language" {
			continue
		}
		for _, c := range n.Children {
			if c.Type == TextNode && strings.TrimSpace(c.Text()) == from {
				c.SetText(strings.Replace(c.Text(), from, to, 1))
				count++
			}
		}
	}
	return count
}
