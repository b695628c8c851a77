package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"skillswap/backend/internal/content/domain"
	"skillswap/backend/internal/content/repository"
)

// fakeSummarizer returns a fixed summary or error, optionally blocking until released.
type fakeSummarizer struct {
	summary string
	err     error
	block   chan struct{} // when non-nil, Summarize waits for close
	calls   int
	mu      sync.Mutex
}

func (f *fakeSummarizer) Summarize(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.summary, f.err
}

func newRecord(t *testing.T, repo repository.Repository, mt domain.MediaType) *domain.ContentRecord {
	t.Helper()
	rec := &domain.ContentRecord{
		OwnerID:     1,
		Filename:    "a." + string(mt),
		MediaType:   mt,
		StoragePath: "/tmp/a",
		SizeBytes:   5,
		Status:      domain.StatusProcessing,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return rec
}

func TestSubmit_PDFSuccess(t *testing.T) {
	repo := repository.NewMemoryRepository()
	p := New(repo, &fakeSummarizer{summary: "S"}, nil)
	rec := newRecord(t, repo, domain.MediaPDF)

	if err := p.Submit(rec); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	p.Wait()

	got, err := repo.GetByID(context.Background(), rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.StatusComplete {
		t.Errorf("status = %q, want complete", got.Status)
	}
	if got.Summary == nil || *got.Summary != "S" {
		t.Errorf("summary = %v, want %q", got.Summary, "S")
	}
}

func TestSubmit_PDFSummarizerFailure(t *testing.T) {
	repo := repository.NewMemoryRepository()
	p := New(repo, &fakeSummarizer{err: errors.New("provider down")}, nil)
	rec := newRecord(t, repo, domain.MediaPDF)

	if err := p.Submit(rec); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	p.Wait()

	got, _ := repo.GetByID(context.Background(), rec.ID)
	if got.Status != domain.StatusFailed {
		t.Errorf("status = %q, want failed", got.Status)
	}
	if got.Summary != nil {
		t.Errorf("summary = %q, want absent", *got.Summary)
	}
}

func TestSubmit_VideoAlwaysCompletes(t *testing.T) {
	repo := repository.NewMemoryRepository()
	// The summarizer must never be consulted for video.
	sum := &fakeSummarizer{err: errors.New("should not be called")}
	p := New(repo, sum, nil)
	rec := newRecord(t, repo, domain.MediaVideo)

	if err := p.Submit(rec); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	p.Wait()

	got, _ := repo.GetByID(context.Background(), rec.ID)
	if got.Status != domain.StatusComplete {
		t.Errorf("status = %q, want complete", got.Status)
	}
	if got.Summary == nil || *got.Summary != VideoPlaceholderSummary {
		t.Errorf("summary = %v, want the fixed placeholder", got.Summary)
	}
	if sum.calls != 0 {
		t.Errorf("summarizer called %d times for video, want 0", sum.calls)
	}
}

func TestSubmit_ReturnsBeforeProcessingFinishes(t *testing.T) {
	repo := repository.NewMemoryRepository()
	block := make(chan struct{})
	p := New(repo, &fakeSummarizer{summary: "S", block: block}, nil)
	rec := newRecord(t, repo, domain.MediaPDF)

	if err := p.Submit(rec); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Submit has returned while the summarizer is still blocked: the record
	// must still be processing, which is what the upload caller observes.
	got, _ := repo.GetByID(context.Background(), rec.ID)
	if got.Status != domain.StatusProcessing {
		t.Errorf("status = %q, want processing while summarizer is in flight", got.Status)
	}

	close(block)
	p.Wait()
	got, _ = repo.GetByID(context.Background(), rec.ID)
	if got.Status != domain.StatusComplete {
		t.Errorf("status = %q, want complete after release", got.Status)
	}
}

func TestSubmit_AtMostOneAttemptPerRecord(t *testing.T) {
	repo := repository.NewMemoryRepository()
	block := make(chan struct{})
	p := New(repo, &fakeSummarizer{summary: "S", block: block}, nil)
	rec := newRecord(t, repo, domain.MediaPDF)

	if err := p.Submit(rec); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := p.Submit(rec); !errors.Is(err, ErrAlreadyInFlight) {
		t.Errorf("second Submit: err = %v, want ErrAlreadyInFlight", err)
	}
	if n := p.InFlight(); n != 1 {
		t.Errorf("InFlight = %d, want 1", n)
	}

	close(block)
	p.Wait()
	if n := p.InFlight(); n != 0 {
		t.Errorf("InFlight after Wait = %d, want 0", n)
	}
}

func TestTerminalStatesAreImmutable(t *testing.T) {
	repo := repository.NewMemoryRepository()
	rec := newRecord(t, repo, domain.MediaPDF)
	ctx := context.Background()

	if err := repo.MarkFailed(ctx, rec.ID); err != nil {
		t.Fatal(err)
	}
	// A late MarkComplete must not resurrect a failed record.
	if err := repo.MarkComplete(ctx, rec.ID, "late"); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.GetByID(ctx, rec.ID)
	if got.Status != domain.StatusFailed {
		t.Errorf("status = %q, want failed to stay failed", got.Status)
	}
	if got.Summary != nil {
		t.Errorf("summary = %v, want absent", got.Summary)
	}
}
