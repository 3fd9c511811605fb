package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/plaintext/internal/innertext"
)

// handleText synchronously extracts plain text from an HTML fragment.
// The fragment comes either as a JSON body {"html": "..."} or as the
// raw request body for text/html and text/plain content types.
func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var src string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			HTML string `json:"html"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
			return
		}
		src = req.HTML
	} else {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			jsonError(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
			return
		}
		src = string(data)
	}

	start := time.Now()
	text, err := innertext.FromString(src)
	if err != nil {
		// The parser recovers from malformed markup, so this only fires
		// on read errors from the underlying tokenizer.
		jsonError(w, "parse html: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.stats.Record("html", time.Since(start).Milliseconds())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"text":       text,
		"char_count": utf8.RuneCountInString(text),
	})
}
