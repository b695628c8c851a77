package realtime

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"skillswap/backend/internal/session"
)

// Broadcaster routes inbound message events to every other live connection,
// resolving sender identity through the session registry.
type Broadcaster struct {
	registry *Registry
	sessions *session.Registry

	mu     sync.Mutex
	lastTS time.Time
	nowF   func() time.Time
}

// NewBroadcaster returns a Broadcaster over the given registries.
func NewBroadcaster(registry *Registry, sessions *session.Registry) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		sessions: sessions,
		nowF:     func() time.Time { return time.Now().UTC() },
	}
}

// HandleInbound processes one raw frame from c. Malformed payloads are logged
// and dropped: the realtime channel is fire-and-forget, so no error ever goes
// back to the sender and the connection stays registered.
func (b *Broadcaster) HandleInbound(c *Connection, raw []byte) {
	var ev InboundEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Printf("realtime: drop malformed payload from %s: %v", c.ID, err)
		return
	}
	if ev.Type != TypeMessage {
		log.Printf("realtime: drop event with unknown type %q from %s", ev.Type, c.ID)
		return
	}
	content := strings.TrimSpace(ev.Content)
	if content == "" {
		log.Printf("realtime: drop empty message from %s", c.ID)
		return
	}

	senderID, senderName := b.resolveSender(c, ev.SessionID)

	out := &OutboundEvent{
		Type:       TypeMessage,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
		Timestamp:  b.stamp(),
	}

	// Best-effort fan-out: one failing recipient never blocks the rest. A
	// write failure is a transport fault, so the recipient is dropped.
	var failed []*Connection
	b.registry.ForEachOther(c, func(o *Connection) {
		if err := o.Send(out); err != nil {
			log.Printf("realtime: deliver to %s: %v", o.ID, err)
			failed = append(failed, o)
		}
	})
	for _, o := range failed {
		b.registry.Unregister(o)
		_ = o.Close()
	}
}

// resolveSender attaches the real identity when the payload (or a prior
// message on this connection) carries a resolvable session token; otherwise
// the sentinel system identity.
func (b *Broadcaster) resolveSender(c *Connection, token string) (string, string) {
	if token != "" {
		if id, ok := b.sessions.Resolve(token); ok {
			// First identified message establishes the association.
			c.AssociateSession(token)
			return strconv.FormatInt(id.UserID, 10), id.Username
		}
	}
	if prior := c.SessionToken(); prior != "" {
		if id, ok := b.sessions.Resolve(prior); ok {
			return strconv.FormatInt(id.UserID, 10), id.Username
		}
	}
	return SystemSenderID, SystemSenderName
}

// stamp returns a wall-clock timestamp that never decreases across events,
// even if the system clock steps backwards.
func (b *Broadcaster) stamp() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.nowF()
	if now.Before(b.lastTS) {
		now = b.lastTS
	}
	b.lastTS = now
	return now
}
