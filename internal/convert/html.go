package convert

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/plaintext/internal/innertext"
	"github.com/dgallion1/plaintext/internal/textdoc"
	"golang.org/x/net/html"
)

// HTMLConverter handles HTML files. The title comes from <title> when
// present; the body text comes from the innertext core. Script, style,
// and template subtrees are pruned before extraction — that is content
// selection at the service layer, the core itself renders every text
// node it is handed.
type HTMLConverter struct{}

func (c *HTMLConverter) Convert(r io.Reader, filename string) (*textdoc.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := findTitle(doc)
	if title == "" {
		title = titleFromFilename(filename)
	}

	root := findBody(doc)
	if root == nil {
		root = doc
	}
	pruneNonContent(root)
	text := innertext.Extract(root)

	return &textdoc.Document{
		Title:     title,
		Text:      text,
		Format:    "html",
		CharCount: utf8.RuneCountInString(text),
	}, nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return strings.TrimSpace(innertext.Extract(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// pruneNonContent detaches subtrees whose text is never readable prose.
func pruneNonContent(n *html.Node) {
	var doomed []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "script", "style", "template", "noscript", "iframe":
				doomed = append(doomed, c)
				continue
			}
		}
		pruneNonContent(c)
	}
	for _, c := range doomed {
		n.RemoveChild(c)
	}
}
