package notifysvc

import (
	"context"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
)

const wsWriteTimeout = 5 * time.Second

// WSHub pushes notifications as JSON toasts to connected frontend clients.
// It doubles as the http.Handler clients connect to.
type WSHub struct {
	logger core.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

var _ core.Notifier = (*WSHub)(nil)

func NewWSHub(logger core.Logger) *WSHub {
	return &WSHub{
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

func (h *WSHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn("accepting notification socket", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// clients never send anything meaningful; reading just detects close
	go h.drain(conn)
}

func (h *WSHub) drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.Read(context.Background()); err != nil {
			h.remove(conn)
			return
		}
	}
}

func (h *WSHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

func (h *WSHub) Notify(n core.Notification) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), wsWriteTimeout)
		if err := wsjson.Write(ctx, conn, n); err != nil {
			h.logger.Warn("pushing notification", err)
			h.remove(conn)
		}
		cancel()
	}
}

func (h *WSHub) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close(websocket.StatusGoingAway, "shutting down")
	}
}
