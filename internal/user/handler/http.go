// Package handler exposes account endpoints: register, login, me, and user lookup.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skillswap/backend/internal/events"
	"skillswap/backend/internal/httpx"
	"skillswap/backend/internal/server/middleware"
	"skillswap/backend/internal/session"
	"skillswap/backend/internal/user/domain"
	"skillswap/backend/internal/user/service"
)

// Handler serves account endpoints. Sessions are minted here on register/login.
type Handler struct {
	svc      *service.Service
	sessions *session.Registry
	emitter  events.Emitter
}

// NewHandler returns an account handler backed by svc and the session registry.
// emitter may be nil.
func NewHandler(svc *service.Service, sessions *session.Registry, emitter events.Emitter) *Handler {
	return &Handler{svc: svc, sessions: sessions, emitter: emitter}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	User         *domain.User `json:"user"`
	SessionToken string       `json:"sessionToken"`
}

// Register handles POST /api/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	u, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password, req.Bio)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			httpx.ValidationError(w, verr.Fields)
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.Error(w, http.StatusConflict, err.Error())
		default:
			httpx.Internal(w, err)
		}
		return
	}
	events.EmitAsync(h.emitter, r.Context(), events.New("user.registered", map[string]any{
		"userId":   strconv.FormatInt(u.ID, 10),
		"username": u.Username,
	}))
	h.respondWithSession(w, http.StatusCreated, u)
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	u, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		httpx.Internal(w, err)
		return
	}
	h.respondWithSession(w, http.StatusOK, u)
}

func (h *Handler) respondWithSession(w http.ResponseWriter, status int, u *domain.User) {
	token, err := h.sessions.Create(u.ID, u.Username)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	httpx.WriteJSON(w, status, authResponse{User: u, SessionToken: token})
}

// Me handles GET /api/me for the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}
	u, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.NotFound(w, "user not found")
			return
		}
		httpx.Internal(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// List handles GET /api/users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.ValidationError(w, map[string]string{"id": "must be a numeric user id"})
		return
	}
	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.NotFound(w, "user not found")
			return
		}
		httpx.Internal(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
