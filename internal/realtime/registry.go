package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// welcomeContent is the system notice every connection receives on register.
const welcomeContent = "Connected to SkillSwap chat."

// Conn is the minimal transport surface the registry needs. Implementations
// must be safe for concurrent WriteEvent calls.
type Conn interface {
	WriteEvent(ev *OutboundEvent) error
	Close() error
}

// Connection is one live realtime channel. A session association is
// established lazily by the broadcaster on the first identified message.
type Connection struct {
	ID        string
	conn      Conn
	CreatedAt time.Time

	mu           sync.Mutex
	sessionToken string
}

// NewConnection wraps conn as a registrable Connection.
func NewConnection(conn Conn) *Connection {
	return &Connection{ID: uuid.New().String(), conn: conn, CreatedAt: time.Now().UTC()}
}

// Send delivers one event on this connection.
func (c *Connection) Send(ev *OutboundEvent) error {
	return c.conn.WriteEvent(ev)
}

// Close closes the underlying transport.
func (c *Connection) Close() error {
	return c.conn.Close()
}

// SessionToken returns the lazily associated session token, or "".
func (c *Connection) SessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionToken
}

// AssociateSession records the session token for this connection.
func (c *Connection) AssociateSession(token string) {
	c.mu.Lock()
	c.sessionToken = token
	c.mu.Unlock()
}

// Registry exclusively owns the set of live connections. Membership changes
// are its only side effects; no blocking I/O happens while the set is locked.
type Registry struct {
	mu    sync.RWMutex
	conns map[*Connection]struct{}
	nowF  func() time.Time
}

// NewRegistry returns an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[*Connection]struct{}),
		nowF:  func() time.Time { return time.Now().UTC() },
	}
}

// Register delivers the welcome event and adds c to the live set. The welcome
// is written synchronously before membership is visible, so no broadcast can
// reach c first and the welcome arrives exactly once. A failed welcome write
// leaves c unregistered and returns the transport error.
func (r *Registry) Register(c *Connection) error {
	welcome := &OutboundEvent{
		Type:      TypeSystem,
		Content:   welcomeContent,
		Timestamp: r.nowF(),
	}
	if err := c.Send(welcome); err != nil {
		return err
	}
	r.mu.Lock()
	r.conns[c] = struct{}{}
	r.mu.Unlock()
	return nil
}

// Unregister removes c from the live set. Idempotent: removing an absent
// connection is a no-op, not an error.
func (r *Registry) Unregister(c *Connection) {
	r.mu.Lock()
	delete(r.conns, c)
	r.mu.Unlock()
}

// ForEachOther invokes fn for every registered connection except excluding.
// fn runs on a snapshot, outside the membership lock, so it may perform I/O.
// Iteration order is unspecified.
func (r *Registry) ForEachOther(excluding *Connection, fn func(*Connection)) {
	r.mu.RLock()
	snapshot := make([]*Connection, 0, len(r.conns))
	for c := range r.conns {
		if c != excluding {
			snapshot = append(snapshot, c)
		}
	}
	r.mu.RUnlock()

	for _, c := range snapshot {
		fn(c)
	}
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
