// Package handler serves liveness and readiness probes for load balancers and CI.
package handler

import (
	"context"
	"net/http"
	"time"

	"skillswap/backend/internal/httpx"
)

// Pinger is the database surface the readiness probe checks. Nil means the
// server runs on in-memory stores and is always ready.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const pingTimeout = 2 * time.Second

// Handler answers /healthz and /readyz.
type Handler struct {
	db Pinger
}

// NewHandler returns a health handler; db may be nil.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

type statusResponse struct {
	Status string `json:"status"`
}

// Live handles GET /healthz. The process answering is the whole check.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// Ready handles GET /readyz. Fails while the database is unreachable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "database unreachable"})
			return
		}
	}
	httpx.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
