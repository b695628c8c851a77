package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillswap/backend/internal/skill/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a skill repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const skillColumns = "id, user_id, name, kind, level, created_at"

func scanSkill(row interface{ Scan(...any) error }) (*domain.Skill, error) {
	var s domain.Skill
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Kind, &s.Level, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persists the skill and sets s.ID from the database sequence.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Skill) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO skills (user_id, name, kind, level, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.UserID, s.Name, s.Kind, s.Level, s.CreatedAt,
	).Scan(&s.ID)
}

// GetByID returns the skill for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+skillColumns+" FROM skills WHERE id = $1", id)
	s, err := scanSkill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// ListByUser returns all skills for userID ordered by id.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Skill, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+skillColumns+" FROM skills WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// List returns all skills, optionally filtered by kind when kind is non-empty.
func (r *PostgresRepository) List(ctx context.Context, kind domain.Kind) ([]*domain.Skill, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if kind == "" {
		rows, err = r.db.QueryContext(ctx, "SELECT "+skillColumns+" FROM skills ORDER BY id")
	} else {
		rows, err = r.db.QueryContext(ctx, "SELECT "+skillColumns+" FROM skills WHERE kind = $1 ORDER BY id", kind)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// Delete removes the skill with the given id. Deleting an absent id is a no-op.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM skills WHERE id = $1", id)
	return err
}

func collect(rows *sql.Rows) ([]*domain.Skill, error) {
	var out []*domain.Skill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
