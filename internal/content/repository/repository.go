package repository

import (
	"context"

	"skillswap/backend/internal/content/domain"
)

// Repository defines persistence for content records. Terminal transitions are
// guarded: MarkComplete and MarkFailed only apply while the record is still
// `processing`, so a record can never leave `complete` or `failed`.
type Repository interface {
	// Create persists rec and sets rec.ID.
	Create(ctx context.Context, rec *domain.ContentRecord) error
	// GetByID returns the record for id, or nil if not found.
	GetByID(ctx context.Context, id int64) (*domain.ContentRecord, error)
	// ListByOwner returns all records owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.ContentRecord, error)
	// MarkComplete transitions processing → complete and sets the summary.
	// A no-op if the record is not in `processing`.
	MarkComplete(ctx context.Context, id int64, summary string) error
	// MarkFailed transitions processing → failed, leaving the summary absent.
	// A no-op if the record is not in `processing`.
	MarkFailed(ctx context.Context, id int64) error
}
