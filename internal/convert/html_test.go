package convert

import (
	"strings"
	"testing"
)

func TestHTMLConverter_TitleAndBody(t *testing.T) {
	input := `<html><head><title>Release Notes</title></head>
<body><p>First paragraph.</p><p>Second paragraph.</p></body></html>`
	c := &HTMLConverter{}
	doc, err := c.Convert(strings.NewReader(input), "notes.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Release Notes" {
		t.Errorf("expected title %q, got %q", "Release Notes", doc.Title)
	}
	if doc.Text != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("expected paragraph separation, got %q", doc.Text)
	}
	if doc.Format != "html" {
		t.Errorf("expected format html, got %q", doc.Format)
	}
}

func TestHTMLConverter_TitleFallsBackToFilename(t *testing.T) {
	c := &HTMLConverter{}
	doc, err := c.Convert(strings.NewReader("<p>no title here</p>"), "fragment.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "fragment" {
		t.Errorf("expected title %q, got %q", "fragment", doc.Title)
	}
}

func TestHTMLConverter_PrunesScriptAndStyle(t *testing.T) {
	input := `<body><script>var x = 1;</script><style>p { color: red }</style><p>visible</p></body>`
	c := &HTMLConverter{}
	doc, err := c.Convert(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "visible" {
		t.Errorf("expected only visible text, got %q", doc.Text)
	}
}

func TestHTMLConverter_EntityDecoding(t *testing.T) {
	c := &HTMLConverter{}
	doc, err := c.Convert(strings.NewReader("<p>a &amp; b &lt;c&gt;</p>"), "ents.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "a & b <c>" {
		t.Errorf("expected decoded entities, got %q", doc.Text)
	}
}

func TestHTMLConverter_MalformedInput(t *testing.T) {
	// The parser recovers into a well-formed tree, so extraction never fails.
	c := &HTMLConverter{}
	doc, err := c.Convert(strings.NewReader("<div><p>unclosed everywhere"), "broken.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "unclosed everywhere" {
		t.Errorf("expected recovered text, got %q", doc.Text)
	}
}

func TestHTMLConverter_CharCount(t *testing.T) {
	c := &HTMLConverter{}
	doc, err := c.Convert(strings.NewReader("<p>héllo</p>"), "count.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.CharCount != 5 {
		t.Errorf("expected 5 runes, got %d", doc.CharCount)
	}
}
