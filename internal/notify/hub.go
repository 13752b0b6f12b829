package notify

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const defaultPingInterval = 30 * time.Second

// Hub broadcasts events to connected websocket observers.
type Hub struct {
	mu           sync.Mutex
	conns        map[*websocket.Conn]struct{}
	pingInterval time.Duration
	logger       *zap.Logger
}

// NewHub builds the broadcast hub.
func NewHub(pingInterval time.Duration, logger *zap.Logger) *Hub {
	if pingInterval <= 0 {
		pingInterval = defaultPingInterval
	}
	return &Hub{
		conns:        make(map[*websocket.Conn]struct{}),
		pingInterval: pingInterval,
		logger:       logger,
	}
}

// Add registers a new observer connection.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

// Remove drops an observer connection.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// Publish broadcasts the event to every connected observer. Connections
// that fail to accept the write are dropped.
func (h *Hub) Publish(_ context.Context, ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			h.logger.Warn("dropping event observer", zap.Error(err))
			delete(h.conns, conn)
			_ = conn.Close()
		}
	}
	return nil
}

// Run keeps observer connections alive with periodic pings until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.mu.Lock()
			for conn := range h.conns {
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					delete(h.conns, conn)
					_ = conn.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}
