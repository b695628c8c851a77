// Package session provides the in-memory session registry: opaque token → user identity.
// Sessions are process-local and ephemeral; a restart drops them all. There is
// no delete operation, so the registry lives as long as the process does.
package session

import (
	"context"
	"errors"
	"sync"

	"skillswap/backend/internal/security"
)

// Identity is the user a session token resolves to.
type Identity struct {
	UserID   int64
	Username string
}

// UserLister is the minimal user store access needed by EnsureDefault.
type UserLister interface {
	// First returns an arbitrary existing user as (id, username), or ok false
	// when the store is empty.
	First(ctx context.Context) (id int64, username string, ok bool, err error)
}

// ErrNoUsers is returned by EnsureDefault when the backing store has no users.
var ErrNoUsers = errors.New("session: no users exist to bootstrap a session for")

// Registry maps opaque session tokens to user identities. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Identity

	// tokenFn is swapped in tests for deterministic tokens.
	tokenFn func() (string, error)
}

// NewRegistry returns an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]Identity),
		tokenFn:  security.NewSessionToken,
	}
}

// Create stores a new session for the given user and returns its token.
// Sessions are never mutated after creation.
func (r *Registry) Create(userID int64, username string) (string, error) {
	token, err := r.tokenFn()
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.sessions[token] = Identity{UserID: userID, Username: username}
	r.mu.Unlock()
	return token, nil
}

// Resolve returns the identity for token. A pure lookup: no side effects.
func (r *Registry) Resolve(token string) (Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.sessions[token]
	return id, ok
}

// EnsureDefault synthesizes a session for an arbitrary existing user. It is a
// development bootstrap convenience, not a security mechanism; callers gate it
// behind the DEV_AUTO_LOGIN config flag. Returns ErrNoUsers when the store is empty.
func (r *Registry) EnsureDefault(ctx context.Context, users UserLister) (string, error) {
	id, username, ok, err := users.First(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoUsers
	}
	return r.Create(id, username)
}

// Len returns the number of live sessions. Used by readiness/debug surfaces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
