package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/plaintext/internal/callback"
	"github.com/dgallion1/plaintext/internal/convert"
	"github.com/dgallion1/plaintext/internal/metrics"
	"github.com/dgallion1/plaintext/internal/snippet"
)

// Worker processes a single conversion job.
type Worker struct {
	deliverer   *callback.Client
	stats       *metrics.ConvertStats
	log         *slog.Logger
	snippetCfg  snippet.Config
	pdfFallback bool
}

func NewWorker(deliverer *callback.Client, stats *metrics.ConvertStats, log *slog.Logger, snippetCfg snippet.Config, pdfFallback bool) *Worker {
	return &Worker{
		deliverer:   deliverer,
		stats:       stats,
		log:         log,
		snippetCfg:  snippetCfg,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full conversion pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Pick a converter.
	job.SetStatus(StatusParsing, "parsing")
	conv, err := convert.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if p, ok := conv.(*convert.PDFConverter); ok {
		p.FallbackPdftotext = w.pdfFallback
	}

	// Phase 2: Extract plain text.
	job.SetStatus(StatusExtracting, "extracting")
	start := time.Now()
	doc, err := conv.Convert(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("conversion failed", "error", err)
		job.AddError(fmt.Sprintf("convert: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	w.stats.Record(doc.Format, time.Since(start).Milliseconds())

	if job.Title != "" {
		doc.Title = job.Title
	}

	result := &Result{
		Title:       doc.Title,
		Text:        doc.Text,
		Format:      doc.Format,
		CharCount:   doc.CharCount,
		ContentHash: ContentHashHex([]byte(doc.Text)),
		Snippet:     snippet.Build(doc, w.snippetCfg),
	}
	job.SetResult(result)
	log.Info("conversion complete", "format", doc.Format, "chars", doc.CharCount)

	// Phase 3: Deliver to the callback URL, if one was given.
	if job.CallbackURL == "" {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	job.SetStatus(StatusDelivering, "delivering")
	payload := map[string]any{
		"job_id":       job.ID,
		"filename":     job.Filename,
		"title":        result.Title,
		"text":         result.Text,
		"format":       result.Format,
		"char_count":   result.CharCount,
		"content_hash": result.ContentHash,
		"snippet":      result.Snippet,
	}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		job.IncrDeliveryAttempts()
		lastErr = w.deliverer.Deliver(ctx, job.CallbackURL, payload)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable delivery error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}

	if lastErr != nil {
		// The result stays retrievable even when the callback never landed.
		log.Error("delivery failed", "error", lastErr)
		job.AddError(fmt.Sprintf("deliver: %s", lastErr))
		job.SetStatus(StatusUndelivered, "delivering")
		return
	}

	log.Info("delivery complete", "callback_url", job.CallbackURL)
	job.SetStatus(StatusCompleted, "done")
}
