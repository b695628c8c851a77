// Package events emits domain lifecycle events (registrations, messages,
// content processing) to Kafka, best-effort. When no brokers are configured
// emission is a no-op.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is one lifecycle event. Serialized as JSON on the wire.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"eventType"`
	Source    string         `json:"source"`
	CreatedAt time.Time      `json:"createdAt"`
	Data      map[string]any `json:"data,omitempty"`
}

// New returns an Event of the given type with the payload data.
func New(eventType string, data map[string]any) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    "skillswap-backend",
		CreatedAt: time.Now().UTC(),
		Data:      data,
	}
}
