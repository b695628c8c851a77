// Package handler exposes match request and suggestion endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"skillswap/backend/internal/httpx"
	"skillswap/backend/internal/match/domain"
	"skillswap/backend/internal/match/recommend"
	"skillswap/backend/internal/match/repository"
	"skillswap/backend/internal/server/middleware"
)

// Handler serves match endpoints. Suggestions come from the external
// recommender when one is configured, the local skill-complement fallback
// otherwise.
type Handler struct {
	repo        repository.Repository
	users       recommend.UserGetter
	recommender recommend.Recommender
	fallback    recommend.Recommender
}

// NewHandler returns a match handler.
func NewHandler(repo repository.Repository, users recommend.UserGetter, recommender, fallback recommend.Recommender) *Handler {
	return &Handler{repo: repo, users: users, recommender: recommender, fallback: fallback}
}

type createRequest struct {
	PartnerID int64  `json:"partnerId"`
	SkillName string `json:"skillName"`
}

// Create handles POST /api/matches.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}
	var req createRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if req.PartnerID == userID {
		httpx.ValidationError(w, map[string]string{"partnerId": "cannot request a match with yourself"})
		return
	}
	partner, err := h.users.GetByID(r.Context(), req.PartnerID)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if partner == nil {
		httpx.ValidationError(w, map[string]string{"partnerId": "no such user"})
		return
	}

	m := &domain.Match{
		RequesterID: userID,
		PartnerID:   req.PartnerID,
		SkillName:   strings.TrimSpace(req.SkillName),
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.repo.Create(r.Context(), m); err != nil {
		httpx.Internal(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, m)
}

// List handles GET /api/matches for the authenticated user.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}
	matches, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if matches == nil {
		matches = []*domain.Match{}
	}
	httpx.WriteJSON(w, http.StatusOK, matches)
}

type updateRequest struct {
	Status string `json:"status"`
}

// Update handles PATCH /api/matches/{id}. Only the partner may decide a
// pending match, and a decided match never changes again.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.ValidationError(w, map[string]string{"id": "must be a numeric match id"})
		return
	}
	var req updateRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	status := domain.Status(req.Status)
	if status != domain.StatusAccepted && status != domain.StatusDeclined {
		httpx.ValidationError(w, map[string]string{"status": `must be "accepted" or "declined"`})
		return
	}

	m, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if m == nil {
		httpx.NotFound(w, "match not found")
		return
	}
	if m.PartnerID != userID {
		httpx.Error(w, http.StatusForbidden, "only the requested partner may decide a match")
		return
	}

	updated, err := h.repo.UpdateStatus(r.Context(), id, status)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if !updated {
		httpx.Error(w, http.StatusConflict, "match already decided")
		return
	}
	m.Status = status
	httpx.WriteJSON(w, http.StatusOK, m)
}

// Suggestions handles GET /api/matches/suggestions.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}
	suggestions, err := h.recommender.Suggest(r.Context(), userID)
	if errors.Is(err, recommend.ErrNotConfigured) && h.fallback != nil {
		suggestions, err = h.fallback.Suggest(r.Context(), userID)
	}
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []recommend.Suggestion{}
	}
	httpx.WriteJSON(w, http.StatusOK, suggestions)
}
