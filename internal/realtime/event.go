// Package realtime tracks live WebSocket connections and fans inbound chat
// events out to every other connection. Delivery is best-effort and in-flight
// only; nothing here is persisted.
package realtime

import "time"

// Event kinds on the wire.
const (
	TypeSystem  = "system"
	TypeMessage = "message"
)

// Sentinel identity attached when a message carries no resolvable session.
const (
	SystemSenderID   = "system"
	SystemSenderName = "System"
)

// InboundEvent is the accepted client → server shape.
type InboundEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Content   string `json:"content"`
}

// OutboundEvent is the server → client shape for both system notices and
// broadcast messages. Sender fields are empty on system events.
type OutboundEvent struct {
	Type       string    `json:"type"`
	SenderID   string    `json:"senderId,omitempty"`
	SenderName string    `json:"senderName,omitempty"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}
