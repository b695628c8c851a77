package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillswap/backend/internal/match/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a match repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *domain.Match) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO matches (requester_id, partner_id, skill_name, status, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		m.RequesterID, m.PartnerID, m.SkillName, m.Status, m.CreatedAt,
	).Scan(&m.ID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	var m domain.Match
	err := r.db.QueryRowContext(ctx,
		`SELECT id, requester_id, partner_id, skill_name, status, created_at
		 FROM matches WHERE id = $1`, id,
	).Scan(&m.ID, &m.RequesterID, &m.PartnerID, &m.SkillName, &m.Status, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Match, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, requester_id, partner_id, skill_name, status, created_at
		 FROM matches
		 WHERE requester_id = $1 OR partner_id = $1
		 ORDER BY id DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(&m.ID, &m.RequesterID, &m.PartnerID, &m.SkillName, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// UpdateStatus transitions a pending match. The status = 'pending' guard keeps
// decided matches immutable under concurrent updates.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE matches SET status = $1 WHERE id = $2 AND status = 'pending'`,
		status, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
