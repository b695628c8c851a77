package repository

import (
	"context"

	"skillswap/backend/internal/match/domain"
)

// Repository defines persistence for matches.
type Repository interface {
	Create(ctx context.Context, m *domain.Match) error
	GetByID(ctx context.Context, id int64) (*domain.Match, error)
	// ListByUser returns matches where userID is requester or partner,
	// newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Match, error)
	// UpdateStatus moves a pending match to status. Returns false when the
	// match does not exist or is no longer pending.
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (bool, error)
}
