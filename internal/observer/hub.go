// Package observer fans auction lifecycle events out to websocket
// spectators. The hub is in-memory only; observers that miss events because
// they connected late simply start from the next one.
package observer

import (
	"sync"

	"github.com/gorilla/websocket"

	"auctioneer/internal/domain"
	"auctioneer/pkg/logger"
)

type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	log   logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
		log:   log,
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[conn] = struct{}{}
	h.log.Info("Observer registered", "remote_addr", conn.RemoteAddr().String(), "observers", len(h.conns))
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
		h.log.Info("Observer unregistered", "observers", len(h.conns))
	}
}

// PublishAuctionEvent broadcasts the event to every observer. Observers
// whose write fails are dropped; a slow or dead spectator must not stall
// the auction.
func (h *Hub) PublishAuctionEvent(event *domain.AuctionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			h.log.Warn("Dropping observer", "remote_addr", conn.RemoteAddr().String(), "error", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *Hub) ObserverCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects every observer, during server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}
