package realtime

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same-origin policy is left to the deployment; the channel itself is
	// anonymous until a message carries a session token.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConn adapts a gorilla connection to Conn. gorilla allows one concurrent
// writer, so writes are serialized here.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) WriteEvent(ev *OutboundEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(ev)
}

func (w *wsConn) Close() error {
	return w.conn.Close()
}

// Handler upgrades HTTP requests to WebSocket connections and pumps inbound
// frames into the broadcaster.
type Handler struct {
	registry    *Registry
	broadcaster *Broadcaster
}

// NewHandler returns the realtime upgrade handler.
func NewHandler(registry *Registry, broadcaster *Broadcaster) *Handler {
	return &Handler{registry: registry, broadcaster: broadcaster}
}

// ServeHTTP handles GET /ws. Each connection gets its own read loop; inbound
// events are handled in arrival order for that connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("realtime: upgrade: %v", err)
		return
	}

	c := NewConnection(&wsConn{conn: ws})
	if err := h.registry.Register(c); err != nil {
		log.Printf("realtime: welcome to %s: %v", c.ID, err)
		_ = c.Close()
		return
	}

	go h.readLoop(c, ws)
}

func (h *Handler) readLoop(c *Connection, ws *websocket.Conn) {
	defer func() {
		h.registry.Unregister(c)
		_ = c.Close()
	}()
	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("realtime: read on %s: %v", c.ID, err)
			}
			return
		}
		h.broadcaster.HandleInbound(c, raw)
	}
}
