package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"skillswap/backend/internal/content/domain"
	"skillswap/backend/internal/content/pipeline"
	"skillswap/backend/internal/content/repository"
	"skillswap/backend/internal/server/middleware"
)

type fakeSummarizer struct {
	summary string
	err     error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, path string) (string, error) {
	return f.summary, f.err
}

func newTestHandler(t *testing.T, sum *fakeSummarizer) (*Handler, *repository.MemoryRepository, *pipeline.Pipeline) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	pipe := pipeline.New(repo, sum, nil)
	h := NewHandler(repo, pipe, nil, t.TempDir(), 1024)
	return h, repo, pipe
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/content", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	ctx := middleware.WithIdentity(req.Context(), 1, "alice", "tok")
	return req.WithContext(ctx)
}

func TestUpload_PDFProcessedToComplete(t *testing.T) {
	h, repo, pipe := newTestHandler(t, &fakeSummarizer{summary: "S"})

	req := multipartUpload(t, "a.pdf", "application/pdf", []byte("%PDF!"))
	w := httptest.NewRecorder()
	h.Upload(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	var rec domain.ContentRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// The synchronous response reports the record as accepted for processing.
	if rec.Status != domain.StatusProcessing {
		t.Errorf("response status = %q, want processing", rec.Status)
	}
	if rec.SizeBytes != 5 {
		t.Errorf("sizeBytes = %d, want 5", rec.SizeBytes)
	}
	if rec.Filename != "a.pdf" {
		t.Errorf("filename = %q, want a.pdf", rec.Filename)
	}

	pipe.Wait()
	got, _ := repo.GetByID(context.Background(), rec.ID)
	if got.Status != domain.StatusComplete {
		t.Errorf("final status = %q, want complete", got.Status)
	}
	if got.Summary == nil || *got.Summary != "S" {
		t.Errorf("summary = %v, want %q", got.Summary, "S")
	}
}

func TestUpload_RejectedMIMECreatesNoRecord(t *testing.T) {
	h, repo, _ := newTestHandler(t, &fakeSummarizer{summary: "S"})

	req := multipartUpload(t, "a.txt", "text/plain", []byte("hello"))
	w := httptest.NewRecorder()
	h.Upload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if recs, _ := repo.ListByOwner(context.Background(), 1); len(recs) != 0 {
		t.Errorf("records = %d, want 0 after rejected upload", len(recs))
	}
}

func TestUpload_OversizeCreatesNoRecord(t *testing.T) {
	h, repo, _ := newTestHandler(t, &fakeSummarizer{summary: "S"})

	big := bytes.Repeat([]byte("x"), 2048) // ceiling in newTestHandler is 1024
	req := multipartUpload(t, "big.pdf", "application/pdf", big)
	w := httptest.NewRecorder()
	h.Upload(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
	if recs, _ := repo.ListByOwner(context.Background(), 1); len(recs) != 0 {
		t.Errorf("records = %d, want 0 after rejected upload", len(recs))
	}
}

func TestUpload_VideoCompletesWithPlaceholder(t *testing.T) {
	h, repo, pipe := newTestHandler(t, &fakeSummarizer{err: context.DeadlineExceeded})

	req := multipartUpload(t, "clip.mp4", "video/mp4", []byte("0000"))
	w := httptest.NewRecorder()
	h.Upload(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	pipe.Wait()
	recs, _ := repo.ListByOwner(context.Background(), 1)
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	if recs[0].Status != domain.StatusComplete {
		t.Errorf("status = %q, want complete (video never fails)", recs[0].Status)
	}
	if recs[0].Summary == nil || *recs[0].Summary != pipeline.VideoPlaceholderSummary {
		t.Errorf("summary = %v, want the fixed placeholder", recs[0].Summary)
	}
}

func TestUpload_Unauthenticated(t *testing.T) {
	h, _, _ := newTestHandler(t, &fakeSummarizer{})
	req := httptest.NewRequest(http.MethodPost, "/api/content", nil)
	w := httptest.NewRecorder()
	h.Upload(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
