// Package server assembles the HTTP router from handler dependencies.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	contenthandler "skillswap/backend/internal/content/handler"
	healthhandler "skillswap/backend/internal/health/handler"
	matchhandler "skillswap/backend/internal/match/handler"
	messagehandler "skillswap/backend/internal/message/handler"
	"skillswap/backend/internal/realtime"
	"skillswap/backend/internal/server/middleware"
	"skillswap/backend/internal/session"
	skillhandler "skillswap/backend/internal/skill/handler"
	userhandler "skillswap/backend/internal/user/handler"
)

// Deps holds the handlers and registries the router mounts.
//
// Route → handler mapping:
//   - /api/register, /api/login, /api/me, /api/users  → internal/user/handler
//   - /api/skills                                     → internal/skill/handler
//   - /api/matches                                    → internal/match/handler
//   - /api/messages, /api/conversations               → internal/message/handler
//   - /api/content                                    → internal/content/handler
//   - /ws                                             → internal/realtime
//   - /healthz, /readyz                               → internal/health/handler
type Deps struct {
	Users    *userhandler.Handler
	Skills   *skillhandler.Handler
	Matches  *matchhandler.Handler
	Messages *messagehandler.Handler
	Content  *contenthandler.Handler
	Realtime *realtime.Handler
	Health   *healthhandler.Handler

	Sessions *session.Registry
	// UserLister backs the dev auto-login bootstrap in the auth middleware.
	UserLister   session.UserLister
	DevAutoLogin bool
}

// NewRouter builds the chi router: probes and auth endpoints are public, the
// rest of /api requires a resolvable session token, and /ws upgrades without
// auth since identity arrives per message.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover, middleware.Logging)

	r.Get("/healthz", deps.Health.Live)
	r.Get("/readyz", deps.Health.Ready)

	r.Post("/api/register", deps.Users.Register)
	r.Post("/api/login", deps.Users.Login)

	r.Handle("/ws", deps.Realtime)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.Sessions, deps.UserLister, deps.DevAutoLogin))

		r.Get("/api/me", deps.Users.Me)
		r.Get("/api/users", deps.Users.List)
		r.Get("/api/users/{id}", deps.Users.Get)
		r.Get("/api/users/{id}/skills", deps.Skills.ListByUser)

		r.Post("/api/skills", deps.Skills.Create)
		r.Get("/api/skills", deps.Skills.List)
		r.Delete("/api/skills/{id}", deps.Skills.Delete)

		r.Post("/api/matches", deps.Matches.Create)
		r.Get("/api/matches", deps.Matches.List)
		r.Get("/api/matches/suggestions", deps.Matches.Suggestions)
		r.Patch("/api/matches/{id}", deps.Matches.Update)

		r.Post("/api/messages", deps.Messages.Send)
		r.Get("/api/conversations/{counterpartId}", deps.Messages.Conversation)

		r.Post("/api/content", deps.Content.Upload)
		r.Get("/api/content", deps.Content.List)
		r.Get("/api/content/{id}", deps.Content.Get)
	})

	return otelhttp.NewHandler(r, "skillswap.http")
}
