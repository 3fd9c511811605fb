// Package snippet reduces an extracted document to a display-ready
// title and summary, sized for feed-style consumers.
package snippet

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/plaintext/internal/textdoc"
)

// Config controls snippet sizing.
type Config struct {
	TitleMaxRunes   int // Hard cap on title length.
	SummaryMaxRunes int // Target summary length.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		TitleMaxRunes:   120,
		SummaryMaxRunes: 400,
	}
}

// Build derives a snippet from a document. The title falls back to the
// first text line when the document carries none. The summary takes
// whole paragraphs while they fit the budget; a first paragraph that is
// itself too long is cut at a sentence boundary, then a word boundary.
func Build(doc *textdoc.Document, cfg Config) textdoc.Snippet {
	if cfg.TitleMaxRunes <= 0 {
		cfg.TitleMaxRunes = 120
	}
	if cfg.SummaryMaxRunes <= 0 {
		cfg.SummaryMaxRunes = 400
	}

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = firstLine(doc.Text)
	}
	title, titleCut := truncateAtWord(title, cfg.TitleMaxRunes)

	summary, summaryCut := buildSummary(doc.Text, cfg.SummaryMaxRunes)

	return textdoc.Snippet{
		Title:     title,
		Summary:   summary,
		Truncated: titleCut || summaryCut,
	}
}

func buildSummary(text string, maxRunes int) (string, bool) {
	paragraphs := splitByParagraphs(text)
	if len(paragraphs) == 0 {
		return "", false
	}

	var out strings.Builder
	used := 0
	for i, para := range paragraphs {
		n := utf8.RuneCountInString(para)
		if used+n > maxRunes {
			if i == 0 {
				// Even the first paragraph is over budget: cut it down.
				s, _ := truncateAtSentence(para, maxRunes)
				return s, true
			}
			return out.String(), true
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
			used += 2
		}
		out.WriteString(para)
		used += n
	}
	return out.String(), false
}

// splitByParagraphs splits on double-newlines, dropping empties.
func splitByParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// truncateAtSentence keeps whole sentences while they fit, falling back
// to a word cut when the first sentence alone exceeds the budget.
func truncateAtSentence(text string, maxRunes int) (string, bool) {
	sentences := splitSentences(text)

	var out strings.Builder
	used := 0
	for i, sent := range sentences {
		n := utf8.RuneCountInString(sent)
		if used+n > maxRunes {
			if i == 0 {
				return truncateAtWord(sent, maxRunes)
			}
			return out.String(), true
		}
		if out.Len() > 0 {
			out.WriteString(" ")
			used++
		}
		out.WriteString(sent)
		used += n
	}
	return out.String(), false
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, strings.TrimSpace(current.String()))
	}

	return sentences
}

// truncateAtWord cuts s to at most maxRunes, preferring a word boundary,
// and appends an ellipsis when anything was removed.
func truncateAtWord(s string, maxRunes int) (string, bool) {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s, false
	}
	runes := []rune(s)
	cut := runes[:maxRunes]
	if idx := strings.LastIndex(string(cut), " "); idx > 0 {
		cut = []rune(string(cut)[:idx])
	}
	return strings.TrimRight(string(cut), " ,;:") + "…", true
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
