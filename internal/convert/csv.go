package convert

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/plaintext/internal/textdoc"
)

// CSVConverter handles CSV files. Each data row becomes one line of
// "header: value" pairs so the output reads as prose-ish plain text.
type CSVConverter struct{}

func (c *CSVConverter) Convert(r io.Reader, filename string) (*textdoc.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &textdoc.Document{
		Title:  titleFromFilename(filename),
		Format: "csv",
	}
	if len(records) == 0 {
		return doc, nil
	}

	// First row is headers.
	headers := records[0]

	var text strings.Builder
	for _, row := range records[1:] {
		for j, cell := range row {
			if j > 0 {
				text.WriteString(", ")
			}
			if j < len(headers) {
				text.WriteString(headers[j] + ": " + cell)
			} else {
				text.WriteString(cell)
			}
		}
		text.WriteString("\n")
	}

	doc.Text = strings.TrimRight(text.String(), "\n")
	doc.CharCount = utf8.RuneCountInString(doc.Text)
	return doc, nil
}
