package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillswap/backend/internal/content/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a content repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const contentColumns = "id, owner_id, filename, media_type, storage_path, size_bytes, status, summary, created_at, updated_at"

func scanRecord(row interface{ Scan(...any) error }) (*domain.ContentRecord, error) {
	var rec domain.ContentRecord
	var summary sql.NullString
	err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Filename, &rec.MediaType, &rec.StoragePath,
		&rec.SizeBytes, &rec.Status, &summary, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if summary.Valid {
		s := summary.String
		rec.Summary = &s
	}
	return &rec, nil
}

// Create persists the record and sets rec.ID from the database sequence.
func (r *PostgresRepository) Create(ctx context.Context, rec *domain.ContentRecord) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO content_records (owner_id, filename, media_type, storage_path, size_bytes, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		rec.OwnerID, rec.Filename, rec.MediaType, rec.StoragePath, rec.SizeBytes,
		rec.Status, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID)
}

// GetByID returns the record for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.ContentRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+contentColumns+" FROM content_records WHERE id = $1", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// ListByOwner returns all records owned by ownerID, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.ContentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contentColumns+" FROM content_records WHERE owner_id = $1 ORDER BY id DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ContentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// MarkComplete transitions processing → complete. The status guard in the
// WHERE clause keeps terminal states immutable no matter who calls.
func (r *PostgresRepository) MarkComplete(ctx context.Context, id int64, summary string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE content_records SET status = 'complete', summary = $2, updated_at = now()
		 WHERE id = $1 AND status = 'processing'`,
		id, summary,
	)
	return err
}

// MarkFailed transitions processing → failed with no summary.
func (r *PostgresRepository) MarkFailed(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE content_records SET status = 'failed', summary = NULL, updated_at = now()
		 WHERE id = $1 AND status = 'processing'`,
		id,
	)
	return err
}
