// Package middleware provides HTTP middleware: session auth, request logging, and panic recovery.
package middleware

import "context"

type contextKey struct{ name string }

var (
	userIDKey   = contextKey{"user_id"}
	usernameKey = contextKey{"username"}
	tokenKey    = contextKey{"session_token"}
)

// WithIdentity returns a context with user id, username, and session token set.
// Handlers read these via GetUserID, GetUsername, GetSessionToken.
func WithIdentity(ctx context.Context, userID int64, username, token string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, usernameKey, username)
	ctx = context.WithValue(ctx, tokenKey, token)
	return ctx
}

// GetUserID returns the authenticated user id from context and true if set.
func GetUserID(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(userIDKey).(int64)
	return v, ok
}

// GetUsername returns the authenticated username from context and true if set.
func GetUsername(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(usernameKey).(string)
	return v, ok
}

// GetSessionToken returns the resolved session token from context and true if set.
func GetSessionToken(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(tokenKey).(string)
	return v, ok
}
