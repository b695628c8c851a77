package repository

import (
	"context"
	"sync"
	"time"

	"skillswap/backend/internal/message/domain"
)

// MemoryRepository is an in-memory Repository for tests and dev runs.
// Messages are kept in append order, which is also id order.
type MemoryRepository struct {
	mu       sync.RWMutex
	messages []*domain.Message
	nextID   int64
}

// NewMemoryRepository returns an empty in-memory message repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) Append(ctx context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	cp := *m
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *MemoryRepository) FetchPair(ctx context.Context, a, b int64) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Message
	for _, m := range r.messages {
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryRepository) MarkRead(ctx context.Context, readerID, counterpartID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.RecipientID == readerID && m.SenderID == counterpartID && m.ReadAt == nil {
			t := at
			m.ReadAt = &t
		}
	}
	return nil
}
