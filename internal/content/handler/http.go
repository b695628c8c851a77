// Package handler exposes content upload and status endpoints.
package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"skillswap/backend/internal/content/domain"
	"skillswap/backend/internal/content/pipeline"
	"skillswap/backend/internal/content/repository"
	"skillswap/backend/internal/events"
	"skillswap/backend/internal/httpx"
	"skillswap/backend/internal/server/middleware"
)

// Handler serves uploads and content record lookups. The upload response never
// waits for processing: the record is returned in `processing` and the caller
// polls GetByID for the terminal state.
type Handler struct {
	repo     repository.Repository
	pipe     *pipeline.Pipeline
	emitter  events.Emitter
	dir      string
	maxBytes int64
}

// NewHandler returns a content handler writing artifacts under dir with the
// given size ceiling. emitter may be nil.
func NewHandler(repo repository.Repository, pipe *pipeline.Pipeline, emitter events.Emitter, dir string, maxBytes int64) *Handler {
	return &Handler{repo: repo, pipe: pipe, emitter: emitter, dir: dir, maxBytes: maxBytes}
}

// mediaTypeFor maps a declared MIME type to the accepted media types.
// Returns "" for anything outside {pdf, video}.
func mediaTypeFor(contentType string) domain.MediaType {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	switch {
	case mt == "application/pdf":
		return domain.MediaPDF
	case strings.HasPrefix(mt, "video/"):
		return domain.MediaVideo
	default:
		return ""
	}
}

// Upload handles POST /api/content (multipart form, field "file").
// Validation failures reject the request before any record exists.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	// Hard cap on the request body; the per-file check below gives the
	// friendlier error for oversized files that still fit the form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.Error(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds the %d byte limit", h.maxBytes))
			return
		}
		httpx.ValidationError(w, map[string]string{"file": "multipart field \"file\" is required"})
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		httpx.Error(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds the %d byte limit", h.maxBytes))
		return
	}
	mediaType := mediaTypeFor(header.Header.Get("Content-Type"))
	if mediaType == "" {
		httpx.ValidationError(w, map[string]string{"file": "content type must be application/pdf or video/*"})
		return
	}
	filename := filepath.Base(header.Filename)
	if filename == "" || filename == "." {
		httpx.ValidationError(w, map[string]string{"file": "filename is required"})
		return
	}

	storagePath, size, err := h.store(file, filename)
	if err != nil {
		httpx.Internal(w, err)
		return
	}

	now := time.Now().UTC()
	rec := &domain.ContentRecord{
		OwnerID:     ownerID,
		Filename:    filename,
		MediaType:   mediaType,
		StoragePath: storagePath,
		SizeBytes:   size,
		Status:      domain.StatusProcessing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.repo.Create(r.Context(), rec); err != nil {
		_ = os.Remove(storagePath)
		httpx.Internal(w, err)
		return
	}

	if err := h.pipe.Submit(rec); err != nil {
		// Duplicate submission for a fresh id cannot happen; log and keep the
		// record queryable in `processing`.
		log.Printf("content: submit record %d: %v", rec.ID, err)
	}

	events.EmitAsync(h.emitter, r.Context(), events.New("content.uploaded", map[string]any{
		"recordId":  rec.ID,
		"ownerId":   rec.OwnerID,
		"mediaType": string(rec.MediaType),
		"sizeBytes": rec.SizeBytes,
	}))

	httpx.WriteJSON(w, http.StatusCreated, rec)
}

// store copies the upload to the artifact directory under a fresh name,
// keeping the original extension. Returns the path and byte count.
func (h *Handler) store(src io.Reader, filename string) (string, int64, error) {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("content: create upload dir: %w", err)
	}
	path := filepath.Join(h.dir, uuid.New().String()+filepath.Ext(filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("content: create artifact: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("content: write artifact: %w", err)
	}
	return path, n, nil
}

// Get handles GET /api/content/{id}. Polling this endpoint is how callers
// observe terminal states; failures are never pushed.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.ValidationError(w, map[string]string{"id": "must be a numeric record id"})
		return
	}
	rec, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if rec == nil {
		httpx.NotFound(w, "content record not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

// List handles GET /api/content for the authenticated user's records.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}
	recs, err := h.repo.ListByOwner(r.Context(), ownerID)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if recs == nil {
		recs = []*domain.ContentRecord{}
	}
	httpx.WriteJSON(w, http.StatusOK, recs)
}
