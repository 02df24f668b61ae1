package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"auctioneer/internal/observer"
	"auctioneer/internal/server"
	"auctioneer/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // observer feed is read-only
	},
}

// StatusHandler serves the admin surface: liveness, current auction state
// and the websocket event feed.
type StatusHandler struct {
	store     *server.AuctionStateStore
	hub       *observer.Hub
	startedAt time.Time
	log       logger.Logger
}

func NewStatusHandler(store *server.AuctionStateStore, hub *observer.Hub, log logger.Logger) *StatusHandler {
	return &StatusHandler{
		store:     store,
		hub:       hub,
		startedAt: time.Now(),
		log:       log,
	}
}

func (h *StatusHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"service":   "auctioneer",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *StatusHandler) Status(c echo.Context) error {
	snap := h.store.Snapshot()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"auction":        snap,
		"observers":      h.hub.ObserverCount(),
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	})
}

// Events upgrades the request and registers the connection with the hub.
// The read loop only exists to notice the peer going away.
func (h *StatusHandler) Events(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Error("Failed to upgrade observer connection", "error", err)
		return err
	}

	h.hub.Register(conn)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.hub.Unregister(conn)
				return
			}
		}
	}()
	return nil
}

// Register wires the admin routes onto the echo instance.
func (h *StatusHandler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/api/v1/status", h.Status)
	e.GET("/ws/events", h.Events)
}
