package textdoc

// Document is the plain-text rendering of one source document.
type Document struct {
	Title     string // Document title (from metadata or filename)
	Text      string // Extracted plain text
	Format    string // Source format: html, markdown, text, csv, pdf, docx
	CharCount int    // Rune count of Text
}

// Snippet is a display-ready reduction of a Document, sized for
// feed-style consumers (entry titles and summaries).
type Snippet struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Truncated bool   `json:"truncated"`
}
