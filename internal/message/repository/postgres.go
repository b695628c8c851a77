package repository

import (
	"context"
	"database/sql"
	"time"

	"skillswap/backend/internal/message/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a message repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append persists the message; the BIGSERIAL id gives strict send ordering.
func (r *PostgresRepository) Append(ctx context.Context, m *domain.Message) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO messages (sender_id, recipient_id, content, sent_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		m.SenderID, m.RecipientID, m.Content, m.SentAt,
	).Scan(&m.ID)
}

// FetchPair returns all messages between a and b ordered by id ascending.
func (r *PostgresRepository) FetchPair(ctx context.Context, a, b int64) ([]*domain.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sender_id, recipient_id, content, sent_at, read_at
		 FROM messages
		 WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
		 ORDER BY id`,
		a, b,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Message
	for rows.Next() {
		var m domain.Message
		var readAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.SentAt, &readAt); err != nil {
			return nil, err
		}
		if readAt.Valid {
			t := readAt.Time
			m.ReadAt = &t
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// MarkRead marks unread messages from counterpartID to readerID as read.
// The read_at IS NULL guard makes repeated calls no-ops.
func (r *PostgresRepository) MarkRead(ctx context.Context, readerID, counterpartID int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET read_at = $1
		 WHERE recipient_id = $2 AND sender_id = $3 AND read_at IS NULL`,
		at, readerID, counterpartID,
	)
	return err
}
