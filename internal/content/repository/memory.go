package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"skillswap/backend/internal/content/domain"
)

// MemoryRepository is an in-memory Repository for tests and dev runs.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[int64]*domain.ContentRecord
	nextID  int64
}

// NewMemoryRepository returns an empty in-memory content repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[int64]*domain.ContentRecord), nextID: 1}
}

func (r *MemoryRepository) Create(ctx context.Context, rec *domain.ContentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = r.nextID
	r.nextID++
	cp := *rec
	r.records[rec.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*domain.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rec, ok := r.records[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.ContentRecord
	for _, rec := range r.records {
		if rec.OwnerID == ownerID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryRepository) MarkComplete(ctx context.Context, id int64, summary string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[id]; ok && rec.Status == domain.StatusProcessing {
		rec.Status = domain.StatusComplete
		s := summary
		rec.Summary = &s
		rec.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (r *MemoryRepository) MarkFailed(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[id]; ok && rec.Status == domain.StatusProcessing {
		rec.Status = domain.StatusFailed
		rec.Summary = nil
		rec.UpdatedAt = time.Now().UTC()
	}
	return nil
}
