package repository

import (
	"context"

	"skillswap/backend/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	// GetByID returns the user for id, or nil if not found.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetByUsername returns the user with the given username, or nil if not found.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create persists u and sets u.ID to the assigned id.
	Create(ctx context.Context, u *domain.User) error
	// List returns all users ordered by id.
	List(ctx context.Context) ([]*domain.User, error)
	// First returns an arbitrary existing user as (id, username), or ok false when empty.
	// Satisfies session.UserLister for the dev auto-login bootstrap.
	First(ctx context.Context) (int64, string, bool, error)
}
