package convert

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/plaintext/internal/textdoc"
)

// TextConverter handles plain text files. Blank-line runs collapse into
// a single paragraph boundary, mirroring what the innertext core emits
// between sibling <p> elements.
type TextConverter struct{}

func (c *TextConverter) Convert(r io.Reader, filename string) (*textdoc.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	text := strings.Join(paragraphs, "\n\n")
	return &textdoc.Document{
		Title:     titleFromFilename(filename),
		Text:      text,
		Format:    "text",
		CharCount: utf8.RuneCountInString(text),
	}, nil
}
