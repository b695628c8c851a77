package repository

import (
	"context"
	"sort"
	"sync"

	"skillswap/backend/internal/match/domain"
)

// MemoryRepository is an in-memory Repository for tests and dev runs.
type MemoryRepository struct {
	mu      sync.RWMutex
	matches map[int64]*domain.Match
	nextID  int64
}

// NewMemoryRepository returns an empty in-memory match repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{matches: make(map[int64]*domain.Match), nextID: 1}
}

func (r *MemoryRepository) Create(ctx context.Context, m *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	cp := *m
	r.matches[m.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.matches[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if m.RequesterID == userID || m.PartnerID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok || m.Status != domain.StatusPending {
		return false, nil
	}
	m.Status = status
	return true, nil
}
