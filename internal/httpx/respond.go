// Package httpx provides JSON response and error helpers shared by HTTP handlers.
package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes v as JSON with the given status code. Encoding failures are
// logged; headers are already gone by then so nothing else can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("httpx: encode response: %v", err)
	}
}

// Error writes a plain error response with the given status and message.
func Error(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg})
}

// ValidationError writes a 400 with per-field detail.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: "validation failed", Fields: fields})
}

// NotFound writes a 404 for a missing entity.
func NotFound(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "not found"
	}
	Error(w, http.StatusNotFound, msg)
}

// Unauthorized writes a 401 for a missing or unknown session token.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "missing or invalid session token")
}

// Internal logs err and writes an opaque 500.
func Internal(w http.ResponseWriter, err error) {
	log.Printf("httpx: internal error: %v", err)
	Error(w, http.StatusInternalServerError, "internal error")
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
// Returns false after writing a 400 when the body is malformed.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}
