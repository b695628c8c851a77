// Package handler exposes skill CRUD endpoints.
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"skillswap/backend/internal/httpx"
	"skillswap/backend/internal/server/middleware"
	"skillswap/backend/internal/skill/domain"
	"skillswap/backend/internal/skill/repository"
)

// Handler serves skill endpoints directly on the repository; there is no
// business logic beyond ownership checks.
type Handler struct {
	repo repository.Repository
}

// NewHandler returns a skill handler backed by repo.
func NewHandler(repo repository.Repository) *Handler {
	return &Handler{repo: repo}
}

type createRequest struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Level string `json:"level"`
}

// Create handles POST /api/skills for the authenticated user.
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

	fields := map[string]string{}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		fields["name"] = "must not be empty"
	}
	kind := domain.Kind(req.Kind)
	if !kind.Valid() {
		fields["kind"] = `must be "teach" or "learn"`
	}
	if len(fields) > 0 {
		httpx.ValidationError(w, fields)
		return
	}

	s := &domain.Skill{
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		Level:     strings.TrimSpace(req.Level),
		CreatedAt: time.Now().UTC(),
	}
	if err := h.repo.Create(r.Context(), s); err != nil {
		httpx.Internal(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, s)
}

// List handles GET /api/skills?kind=teach|learn.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	kind := domain.Kind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		httpx.ValidationError(w, map[string]string{"kind": `must be "teach" or "learn"`})
		return
	}
	skills, err := h.repo.List(r.Context(), kind)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if skills == nil {
		skills = []*domain.Skill{}
	}
	httpx.WriteJSON(w, http.StatusOK, skills)
}

// ListByUser handles GET /api/users/{id}/skills.
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.ValidationError(w, map[string]string{"id": "must be a numeric user id"})
		return
	}
	skills, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if skills == nil {
		skills = []*domain.Skill{}
	}
	httpx.WriteJSON(w, http.StatusOK, skills)
}

// Delete handles DELETE /api/skills/{id}. Only the owner may delete a skill.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.ValidationError(w, map[string]string{"id": "must be a numeric skill id"})
		return
	}
	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if s == nil {
		httpx.NotFound(w, "skill not found")
		return
	}
	if s.UserID != userID {
		httpx.Error(w, http.StatusForbidden, "not the owner of this skill")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		httpx.Internal(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusNoContent, nil)
}
