// Package pipeline drives uploaded content through its processing state machine
// in background tasks, decoupled from the upload request/response cycle.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"skillswap/backend/internal/content/domain"
	"skillswap/backend/internal/content/repository"
	"skillswap/backend/internal/content/summarize"
	"skillswap/backend/internal/events"
)

// VideoPlaceholderSummary is the fixed summary for video uploads; a stand-in
// until a transcription capability exists. Video records always complete.
const VideoPlaceholderSummary = "Video uploaded. Transcription and summarization for video content is not yet available."

// processTimeout bounds one background processing attempt, summarizer call included.
const processTimeout = 5 * time.Minute

// ErrAlreadyInFlight is returned by Submit when a task for the record id is
// still outstanding. At most one attempt runs per record.
var ErrAlreadyInFlight = errors.New("pipeline: record already has a processing task in flight")

// Pipeline owns every status transition out of `processing`. The task started
// by Submit is the record's only writer; the upload handler never touches the
// record again after Create.
type Pipeline struct {
	records    repository.Repository
	summarizer summarize.Summarizer
	emitter    events.Emitter

	mu       sync.Mutex
	inflight map[int64]struct{}
	wg       sync.WaitGroup
}

// New returns a Pipeline over the given record store and summarizer.
// emitter may be nil (no lifecycle events).
func New(records repository.Repository, summarizer summarize.Summarizer, emitter events.Emitter) *Pipeline {
	return &Pipeline{
		records:    records,
		summarizer: summarizer,
		emitter:    emitter,
		inflight:   make(map[int64]struct{}),
	}
}

// Submit schedules background processing for rec and returns immediately.
// The caller must have persisted rec with status `processing`. Returns
// ErrAlreadyInFlight if a task for this id is still running.
//
// The task runs on context.Background() with its own timeout: the triggering
// HTTP request has already been answered by the time work happens, so request
// cancellation must not abort it.
func (p *Pipeline) Submit(rec *domain.ContentRecord) error {
	p.mu.Lock()
	if _, dup := p.inflight[rec.ID]; dup {
		p.mu.Unlock()
		return ErrAlreadyInFlight
	}
	p.inflight[rec.ID] = struct{}{}
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			delete(p.inflight, rec.ID)
			p.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()
		p.process(ctx, rec)
	}()
	return nil
}

// process runs one attempt to a terminal state. Failures are logged and
// recorded in the record's status, never re-raised; the uploader already has
// its response and observes the outcome by polling.
func (p *Pipeline) process(ctx context.Context, rec *domain.ContentRecord) {
	switch rec.MediaType {
	case domain.MediaPDF:
		summary, err := p.summarizer.Summarize(ctx, rec.StoragePath)
		if err != nil {
			p.fail(ctx, rec, fmt.Errorf("summarize %q: %w", rec.Filename, err))
			return
		}
		p.complete(ctx, rec, summary)
	case domain.MediaVideo:
		p.complete(ctx, rec, VideoPlaceholderSummary)
	default:
		// Unreachable for records created by the upload handler.
		p.fail(ctx, rec, fmt.Errorf("unknown media type %q", rec.MediaType))
	}
}

func (p *Pipeline) complete(ctx context.Context, rec *domain.ContentRecord, summary string) {
	if err := p.records.MarkComplete(ctx, rec.ID, summary); err != nil {
		log.Printf("pipeline: record %d: mark complete: %v", rec.ID, err)
		return
	}
	events.EmitAsync(p.emitter, ctx, events.New("content.completed", map[string]any{
		"recordId":  rec.ID,
		"ownerId":   rec.OwnerID,
		"mediaType": string(rec.MediaType),
	}))
}

func (p *Pipeline) fail(ctx context.Context, rec *domain.ContentRecord, cause error) {
	log.Printf("pipeline: record %d failed: %v", rec.ID, cause)
	if err := p.records.MarkFailed(ctx, rec.ID); err != nil {
		log.Printf("pipeline: record %d: mark failed: %v", rec.ID, err)
		return
	}
	events.EmitAsync(p.emitter, ctx, events.New("content.failed", map[string]any{
		"recordId":  rec.ID,
		"ownerId":   rec.OwnerID,
		"mediaType": string(rec.MediaType),
	}))
}

// Wait blocks until every outstanding task has reached a terminal state.
// Used on shutdown; in-flight records left behind by a hard kill stay in
// `processing`, an accepted partial-failure mode.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// InFlight returns the number of outstanding processing tasks.
func (p *Pipeline) InFlight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inflight)
}
