package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"skillswap/backend/internal/httpx"
	"skillswap/backend/internal/session"
)

const bearerPrefix = "bearer "

// Auth validates the session token from the request and sets the caller's
// identity in context. Tokens are read from "Authorization: Bearer", the
// X-Session-Token header, or the sessionId query parameter, in that order.
//
// When devAutoLogin is true and no token is supplied, a session is synthesized
// for an arbitrary existing user via the registry (development bootstrap only);
// an empty user store still yields 401.
func Auth(registry *session.Registry, users session.UserLister, devAutoLogin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" && devAutoLogin {
				t, err := registry.EnsureDefault(r.Context(), users)
				if err != nil {
					if !errors.Is(err, session.ErrNoUsers) {
						log.Printf("auth: dev auto-login: %v", err)
					}
					httpx.Unauthorized(w)
					return
				}
				token = t
			}

			id, ok := registry.Resolve(token)
			if !ok {
				httpx.Unauthorized(w)
				return
			}

			ctx := WithIdentity(r.Context(), id.UserID, id.Username, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken returns the session token from r, or "" if none is supplied.
func ExtractToken(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) >= len(bearerPrefix) && strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		if t := strings.TrimSpace(v[len(bearerPrefix):]); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(r.Header.Get("X-Session-Token")); t != "" {
		return t
	}
	return strings.TrimSpace(r.URL.Query().Get("sessionId"))
}
