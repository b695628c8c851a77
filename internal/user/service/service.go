// Package service implements account registration and login.
package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"skillswap/backend/internal/security"
	"skillswap/backend/internal/user/domain"
)

// Sentinel errors for the account service; handlers map them to HTTP statuses.
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError carries field-level detail for a rejected request payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserRepo is the minimal user repository needed by the account service.
type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}

// Service implements register, login, and profile lookup.
type Service struct {
	repo   UserRepo
	hasher *security.Hasher
	nowF   func() time.Time
}

// NewService returns a Service with the given dependencies.
func NewService(repo UserRepo, hasher *security.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher, nowF: func() time.Time { return time.Now().UTC() }}
}

// Register creates an account. Username is trimmed, email lowercased.
// Returns ValidationError for bad input and ErrUsernameTaken on conflict.
func (s *Service) Register(ctx context.Context, username, email, password, bio string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	fields := map[string]string{}
	if len(username) < 2 || len(username) > 64 {
		fields["username"] = "must be 2-64 characters"
	}
	if !emailRe.MatchString(email) {
		fields["email"] = "must be a valid email address"
	}
	if len(password) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Bio:          strings.TrimSpace(bio),
		CreatedAt:    s.nowF(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the password for username. Returns ErrInvalidCredentials for
// an unknown username or a wrong password; the two are indistinguishable to callers.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns the user for id. Returns ErrUserNotFound when absent.
func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}
