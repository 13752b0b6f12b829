package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"voltledger/internal/notify"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NewEventsHandler returns GET /ws/events: a live, fire-and-forget feed of
// ledger notifications for external observers.
func NewEventsHandler(hub *notify.Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		// Clear the server read deadline inherited from the upgrade; the
		// connection lives until the observer goes away.
		_ = conn.SetReadDeadline(time.Time{})
		hub.Add(conn)

		// Observers never send payloads; the read loop only notices closes.
		go func() {
			defer hub.Remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
