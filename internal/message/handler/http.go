// Package handler exposes direct-message endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skillswap/backend/internal/events"
	"skillswap/backend/internal/httpx"
	"skillswap/backend/internal/message/domain"
	"skillswap/backend/internal/message/service"
	"skillswap/backend/internal/server/middleware"
)

// Handler serves message send and conversation fetch.
type Handler struct {
	svc     *service.Service
	emitter events.Emitter
}

// NewHandler returns a message handler. emitter may be nil (no events emitted).
func NewHandler(svc *service.Service, emitter events.Emitter) *Handler {
	return &Handler{svc: svc, emitter: emitter}
}

type sendRequest struct {
	RecipientID int64  `json:"recipientId"`
	Content     string `json:"content"`
}

// Send handles POST /api/messages for the authenticated user.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}
	var req sendRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	m, err := h.svc.Append(r.Context(), senderID, req.RecipientID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyContent):
			httpx.ValidationError(w, map[string]string{"content": "must not be empty"})
		case errors.Is(err, service.ErrRecipientNotFound):
			httpx.NotFound(w, "recipient not found")
		default:
			httpx.Internal(w, err)
		}
		return
	}

	events.EmitAsync(h.emitter, r.Context(), events.New("message.sent", map[string]any{
		"messageId":   m.ID,
		"senderId":    m.SenderID,
		"recipientId": m.RecipientID,
	}))

	httpx.WriteJSON(w, http.StatusCreated, m)
}

// Conversation handles GET /api/conversations/{counterpartId}.
// Fetching marks incoming messages from the counterpart as read.
func (h *Handler) Conversation(w http.ResponseWriter, r *http.Request) {
	readerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}
	counterpartID, err := strconv.ParseInt(chi.URLParam(r, "counterpartId"), 10, 64)
	if err != nil {
		httpx.ValidationError(w, map[string]string{"counterpartId": "must be a numeric user id"})
		return
	}
	msgs, err := h.svc.Conversation(r.Context(), readerID, counterpartID)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if msgs == nil {
		msgs = []*domain.Message{}
	}
	httpx.WriteJSON(w, http.StatusOK, msgs)
}
