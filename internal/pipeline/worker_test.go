package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgallion1/plaintext/internal/callback"
	"github.com/dgallion1/plaintext/internal/metrics"
	"github.com/dgallion1/plaintext/internal/snippet"
)

func testWorker(t *testing.T) *Worker {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorker(callback.NewClient(""), metrics.NewConvertStats(time.Hour), log, snippet.DefaultConfig(), false)
}

func TestWorker_ConvertsHTMLJob(t *testing.T) {
	job := &Job{ID: "w1", Filename: "article.html", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	job.SetFileData([]byte("<html><head><title>T</title></head><body><p>alpha</p><p>beta</p></body></html>"))

	testWorker(t).Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors: %v)", job.Status, job.Snapshot().Progress.Errors)
	}
	res := job.Result()
	if res == nil {
		t.Fatal("expected result")
	}
	if res.Text != "alpha\n\nbeta" {
		t.Errorf("expected %q, got %q", "alpha\n\nbeta", res.Text)
	}
	if res.Title != "T" {
		t.Errorf("expected title %q, got %q", "T", res.Title)
	}
	if res.Snippet.Summary == "" {
		t.Error("expected snippet summary")
	}
	if res.ContentHash == "" {
		t.Error("expected content hash")
	}
}

func TestWorker_UnsupportedFormatFails(t *testing.T) {
	job := &Job{ID: "w2", Filename: "binary.exe", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	job.SetFileData([]byte{0x4d, 0x5a})

	testWorker(t).Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected failed, got %q", job.Status)
	}
	if len(job.Snapshot().Progress.Errors) == 0 {
		t.Error("expected recorded error")
	}
}

func TestWorker_DeliversToCallback(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	job := &Job{ID: "w3", Filename: "note.txt", CallbackURL: srv.URL, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	job.SetFileData([]byte("hello callback"))

	testWorker(t).Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors: %v)", job.Status, job.Snapshot().Progress.Errors)
	}
	if got["job_id"] != "w3" {
		t.Errorf("expected delivered job_id w3, got %v", got["job_id"])
	}
	if got["text"] != "hello callback" {
		t.Errorf("expected delivered text, got %v", got["text"])
	}
	if job.Snapshot().Progress.DeliveryAttempts != 1 {
		t.Errorf("expected 1 delivery attempt, got %d", job.Snapshot().Progress.DeliveryAttempts)
	}
}

func TestWorker_PermanentDeliveryFailureIsUndelivered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	job := &Job{ID: "w4", Filename: "note.txt", CallbackURL: srv.URL, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	job.SetFileData([]byte("undeliverable"))

	testWorker(t).Process(context.Background(), job)

	if job.Status != StatusUndelivered {
		t.Fatalf("expected undelivered, got %q", job.Status)
	}
	// The conversion result must survive the failed delivery.
	if job.Result() == nil || job.Result().Text != "undeliverable" {
		t.Errorf("expected retrievable result, got %+v", job.Result())
	}
	// A permanent failure should not be retried.
	if job.Snapshot().Progress.DeliveryAttempts != 1 {
		t.Errorf("expected 1 delivery attempt, got %d", job.Snapshot().Progress.DeliveryAttempts)
	}
}
