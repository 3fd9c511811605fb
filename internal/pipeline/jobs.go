package pipeline

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/plaintext/internal/textdoc"
)

// JobStatus represents the state of a conversion job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusParsing     JobStatus = "parsing"
	StatusExtracting  JobStatus = "extracting"
	StatusDelivering  JobStatus = "delivering"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
	StatusUndelivered JobStatus = "undelivered"
)

// Result is the finished output of a conversion job.
type Result struct {
	Title       string          `json:"title"`
	Text        string          `json:"text"`
	Format      string          `json:"format"`
	CharCount   int             `json:"char_count"`
	ContentHash string          `json:"content_hash"`
	Snippet     textdoc.Snippet `json:"snippet"`
}

// Job tracks the state of a single document conversion.
type Job struct {
	mu sync.Mutex

	ID          string `json:"job_id"`
	Filename    string `json:"filename"`
	Title       string `json:"title"`
	CallbackURL string `json:"callback_url,omitempty"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *Result
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	BytesIn          int64    `json:"bytes_in"`
	CharsOut         int      `json:"chars_out"`
	DeliveryAttempts int      `json:"delivery_attempts"`
	Errors           []string `json:"errors"`
}

// NewJobID returns a random 20-character hex job identifier.
func NewJobID() string {
	var b [10]byte
	rand.Read(b[:])
	return fmt.Sprintf("%x", b)
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrDeliveryAttempts counts one callback delivery attempt.
func (j *Job) IncrDeliveryAttempts() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.DeliveryAttempts++
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
	j.Progress.BytesIn = int64(len(data))
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetResult stores the finished output and releases the input bytes.
func (j *Job) SetResult(r *Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = r
	j.fileData = nil
	j.Progress.CharsOut = r.CharCount
	j.UpdatedAt = time.Now()
}

// Result returns the finished output, or nil while the job is running.
func (j *Job) Result() *Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		Filename: j.Filename,
		Title:    j.Title,
		Status:   j.Status,
		Phase:    j.Phase,
		Progress: Progress{
			BytesIn:          j.Progress.BytesIn,
			CharsOut:         j.Progress.CharsOut,
			DeliveryAttempts: j.Progress.DeliveryAttempts,
			Errors:           errs,
		},
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Delete removes a job; returns false when the id is unknown.
func (s *JobStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return false
	}
	delete(s.jobs, id)
	return true
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
