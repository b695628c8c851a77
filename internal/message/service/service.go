// Package service implements the conversation index: append, fetch, and read marking.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillswap/backend/internal/message/domain"
	"skillswap/backend/internal/message/repository"
	userdomain "skillswap/backend/internal/user/domain"
)

// Sentinel errors; handlers map them to HTTP statuses.
var (
	ErrEmptyContent      = errors.New("message content must not be empty")
	ErrRecipientNotFound = errors.New("recipient not found")
)

// UserGetter is the minimal user lookup needed to validate recipients.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*userdomain.User, error)
}

// Service maintains per-pair message ordering and read state.
type Service struct {
	repo  repository.Repository
	users UserGetter
	nowF  func() time.Time
}

// NewService returns a conversation service over repo, validating recipients via users.
func NewService(repo repository.Repository, users UserGetter) *Service {
	return &Service{repo: repo, users: users, nowF: func() time.Time { return time.Now().UTC() }}
}

// Append persists a new message from senderID to recipientID. No dedup: every
// call creates a new message with a strictly increasing id.
func (s *Service) Append(ctx context.Context, senderID, recipientID int64, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	recipient, err := s.users.GetByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}
	m := &domain.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		SentAt:      s.nowF(),
	}
	if err := s.repo.Append(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Conversation returns every message between readerID and counterpartID,
// oldest first, after marking messages from the counterpart as read. The
// returned view therefore reflects the new read state.
func (s *Service) Conversation(ctx context.Context, readerID, counterpartID int64) ([]*domain.Message, error) {
	if err := s.repo.MarkRead(ctx, readerID, counterpartID, s.nowF()); err != nil {
		return nil, err
	}
	return s.repo.FetchPair(ctx, readerID, counterpartID)
}

// MarkRead marks every unread message sent to readerID by counterpartID as read. Idempotent.
func (s *Service) MarkRead(ctx context.Context, readerID, counterpartID int64) error {
	return s.repo.MarkRead(ctx, readerID, counterpartID, s.nowF())
}
