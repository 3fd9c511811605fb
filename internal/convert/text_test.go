package convert

import (
	"strings"
	"testing"
)

func TestTextConverter_ParagraphJoining(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	c := &TextConverter{}
	doc, err := c.Convert(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	want := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
}

func TestTextConverter_EmptyInput(t *testing.T) {
	c := &TextConverter{}
	doc, err := c.Convert(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
	if doc.CharCount != 0 {
		t.Errorf("expected 0 chars, got %d", doc.CharCount)
	}
}

func TestTextConverter_BlankLineRunsCollapse(t *testing.T) {
	input := "Para one.\n\n\n\nPara two."
	c := &TextConverter{}
	doc, err := c.Convert(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Para one.\n\nPara two." {
		t.Errorf("expected single boundary, got %q", doc.Text)
	}
}

func TestTextConverter_WhitespaceOnlyLines(t *testing.T) {
	input := "Para one.\n   \nPara two."
	c := &TextConverter{}
	doc, err := c.Convert(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Para one.\n\nPara two." {
		t.Errorf("expected whitespace lines treated as blank, got %q", doc.Text)
	}
}

func TestCSVConverter_LabeledRows(t *testing.T) {
	input := "name,city\nAda,London\nLin,Taipei\n"
	c := &CSVConverter{}
	doc, err := c.Convert(strings.NewReader(input), "people.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "name: Ada, city: London\nname: Lin, city: Taipei"
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
}

func TestForFile_Dispatch(t *testing.T) {
	for _, name := range []string{"a.txt", "b.md", "c.csv", "d.html", "e.htm", "f.pdf", "g.docx", "H.MD"} {
		if _, err := ForFile(name); err != nil {
			t.Errorf("expected converter for %q, got error: %v", name, err)
		}
	}
	if _, err := ForFile("evil.exe"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("evil.exe") {
		t.Error("expected .exe to be unsupported")
	}
	if !IsSupportedExtension("ok.html") {
		t.Error("expected .html to be supported")
	}
}
