// Package innertext converts a parsed HTML tree to plain text using a
// subset of the HTMLElement.innerText algorithm. The output is meant for
// short textual documents (article bodies, feed titles and summaries);
// no effort is made to render tables, images, or form controls.
package innertext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockLevel is the set of block-level elements per the MDN list.
// Tag names from x/net/html are already lower-cased, so membership
// checks are exact.
var blockLevel = map[string]struct{}{
	"address":    {},
	"article":    {},
	"aside":      {},
	"blockquote": {},
	"dd":         {},
	"details":    {},
	"dialog":     {},
	"div":        {},
	"dl":         {},
	"dt":         {},
	"fieldset":   {},
	"figcaption": {},
	"figure":     {},
	"footer":     {},
	"form":       {},
	"h1":         {},
	"h2":         {},
	"h3":         {},
	"h4":         {},
	"h5":         {},
	"h6":         {},
	"header":     {},
	"hgroup":     {},
	"hr":         {},
	"li":         {},
	"main":       {},
	"nav":        {},
	"ol":         {},
	"p":          {},
	"pre":        {},
	"section":    {},
	"table":      {},
	"ul":         {},
}

func isBlockElement(name string) bool {
	_, ok := blockLevel[name]
	return ok
}

// item is one entry in the content stream derived from a subtree:
// either a literal text run or a candidate newline insertion point.
type item struct {
	text     string
	newlines int // 0 for text items
}

// items walks the subtree rooted at n in document order and classifies
// each enter/exit event. Text nodes that are empty or whitespace-only
// produce nothing; <br> opens a single break, <p> opens and closes a
// double break, and every other block-level tag contributes a single
// break on both open and close. Inline elements, comments, and doctype
// nodes are ignored.
func items(root *html.Node) []item {
	var out []item

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				out = append(out, item{text: n.Data})
			}
		case html.ElementNode:
			switch {
			case n.Data == "br":
				out = append(out, item{newlines: 1})
			case n.Data == "p":
				out = append(out, item{newlines: 2})
			case isBlockElement(n.Data):
				out = append(out, item{newlines: 1})
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode {
			if n.Data == "p" {
				out = append(out, item{newlines: 2})
			} else if isBlockElement(n.Data) {
				out = append(out, item{newlines: 1})
			}
		}
	}
	walk(root)

	return out
}

// Extract returns the plain-text rendering of the subtree rooted at n.
// Text runs are emitted verbatim (the parser has already decoded
// entities). Runs of consecutive breaks collapse into a single group
// sized at the largest count, and groups at the very start or end of
// the output are dropped so the result never carries leading or
// trailing newlines. The call is side-effect-free and assumes a stable,
// non-mutating view of the tree for its duration.
func Extract(root *html.Node) string {
	its := items(root)

	var out strings.Builder
	for i := 0; i < len(its); i++ {
		it := its[i]
		if it.newlines == 0 {
			out.WriteString(it.text)
			continue
		}

		// Combine all subsequent breaks into one, using the maximum value.
		max := it.newlines
		for i+1 < len(its) && its[i+1].newlines > 0 {
			i++
			if its[i].newlines > max {
				max = its[i].newlines
			}
		}

		// Don't insert newlines at the beginning or the end.
		if out.Len() == 0 || i+1 >= len(its) {
			continue
		}
		out.WriteString(strings.Repeat("\n", max))
	}

	return out.String()
}

// FromString parses s as an HTML fragment in body context and extracts
// its plain text. Malformed markup is tolerated; the parser always
// yields a well-formed tree.
func FromString(s string) (string, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return Extract(body), nil
}
