package repository

import (
	"context"
	"sort"
	"sync"

	"skillswap/backend/internal/skill/domain"
)

// MemoryRepository is an in-memory Repository for tests and dev runs.
type MemoryRepository struct {
	mu     sync.RWMutex
	skills map[int64]*domain.Skill
	nextID int64
}

// NewMemoryRepository returns an empty in-memory skill repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{skills: make(map[int64]*domain.Skill), nextID: 1}
}

func (r *MemoryRepository) Create(ctx context.Context, s *domain.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	cp := *s
	r.skills[s.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.skills[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Skill, error) {
	return r.filter(func(s *domain.Skill) bool { return s.UserID == userID })
}

func (r *MemoryRepository) List(ctx context.Context, kind domain.Kind) ([]*domain.Skill, error) {
	return r.filter(func(s *domain.Skill) bool { return kind == "" || s.Kind == kind })
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.skills, id)
	return nil
}

func (r *MemoryRepository) filter(keep func(*domain.Skill) bool) ([]*domain.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Skill
	for _, s := range r.skills {
		if keep(s) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
