package repository

import (
	"context"
	"time"

	"skillswap/backend/internal/message/domain"
)

// Repository defines persistence for direct messages.
type Repository interface {
	// Append persists m and sets m.ID. Ids are strictly increasing in send order.
	Append(ctx context.Context, m *domain.Message) error
	// FetchPair returns every message between a and b, either direction, oldest first.
	FetchPair(ctx context.Context, a, b int64) ([]*domain.Message, error)
	// MarkRead sets read_at=at on every unread message sent to readerID by
	// counterpartID. Idempotent; no error when nothing matches.
	MarkRead(ctx context.Context, readerID, counterpartID int64, at time.Time) error
}
