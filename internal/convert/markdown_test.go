package convert

import (
	"strings"
	"testing"
)

func TestMarkdownConverter_HeadingsAndParagraphs(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.
`
	c := &MarkdownConverter{}
	doc, err := c.Convert(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", doc.Title)
	}
	want := "Title\n\nIntro text.\n\nSection A\n\nSection A content."
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
}

func TestMarkdownConverter_ListItems(t *testing.T) {
	input := "- one\n- two\n- three\n"
	c := &MarkdownConverter{}
	doc, err := c.Convert(strings.NewReader(input), "list.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "one\ntwo\nthree" {
		t.Errorf("expected list items on separate lines, got %q", doc.Text)
	}
}

func TestMarkdownConverter_InlineFormattingStripped(t *testing.T) {
	input := "Some *emphasized* and **strong** words.\n"
	c := &MarkdownConverter{}
	doc, err := c.Convert(strings.NewReader(input), "inline.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Some emphasized and strong words." {
		t.Errorf("expected inline markup stripped, got %q", doc.Text)
	}
}

func TestMarkdownConverter_CodeBlock(t *testing.T) {
	input := "Before.\n\n```\nGET /api/users\n```\n\nAfter.\n"
	c := &MarkdownConverter{}
	doc, err := c.Convert(strings.NewReader(input), "code.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc.Text, "GET /api/users") {
		t.Errorf("expected code block content preserved, got %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "After.") {
		t.Errorf("expected trailing paragraph, got %q", doc.Text)
	}
}

func TestMarkdownConverter_EmptyInput(t *testing.T) {
	c := &MarkdownConverter{}
	doc, err := c.Convert(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestMarkdownConverter_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"plain.md", "plain"},
	}
	c := &MarkdownConverter{}
	for _, tt := range tests {
		doc, err := c.Convert(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
