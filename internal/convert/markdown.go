package convert

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dgallion1/plaintext/internal/innertext"
	"github.com/dgallion1/plaintext/internal/textdoc"
	"github.com/yuin/goldmark"
)

// MarkdownConverter handles Markdown files. goldmark renders the source
// to HTML, which then goes through the same innertext extraction as
// native HTML input, so paragraph and break semantics stay identical
// across both formats.
type MarkdownConverter struct{}

func (c *MarkdownConverter) Convert(r io.Reader, filename string) (*textdoc.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var rendered bytes.Buffer
	if err := goldmark.New().Convert(src, &rendered); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	text, err := innertext.FromString(rendered.String())
	if err != nil {
		return nil, fmt.Errorf("parse rendered markdown: %w", err)
	}

	return &textdoc.Document{
		Title:     titleFromFilename(filename),
		Text:      text,
		Format:    "markdown",
		CharCount: utf8.RuneCountInString(text),
	}, nil
}
