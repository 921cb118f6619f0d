// Package markup parses XHTML, SVG and OPF files into a lossless tree.
//
// The tree is built from golang.org/x/net/html tokens rather than from
// html.Parse: the HTML5 tree builder reorders content, drops the XML prolog
// and lowercases SVG attribute names, while the tokenizer hands back the raw
// bytes of every token. Each node keeps those bytes, so rendering a tree that
// was not modified reproduces the input exactly, and rendering a modified
// tree changes only the text runs and attributes that were touched.
//
// Every node also records the 1-based source line its token starts on,
// which the walker uses to keep line numbers stable.
//
// # Usage
//
//	doc, err := markup.Parse(r)
//	for n := range doc.TextNodes() {
//	    n.SetText(strings.ToUpper(n.Text()))
//	}
//	err = doc.Render(w)
package markup
