package repository

import (
	"context"

	"skillswap/backend/internal/skill/domain"
)

// Repository defines persistence for skills.
type Repository interface {
	Create(ctx context.Context, s *domain.Skill) error
	GetByID(ctx context.Context, id int64) (*domain.Skill, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Skill, error)
	List(ctx context.Context, kind domain.Kind) ([]*domain.Skill, error)
	Delete(ctx context.Context, id int64) error
}
