package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctioneer/internal/domain"
	"auctioneer/internal/observer"
	"auctioneer/internal/server"
	"auctioneer/pkg/logger"
)

func newTestAdmin(t *testing.T) (*httptest.Server, *server.AuctionStateStore, *observer.Hub) {
	t.Helper()

	store := server.NewAuctionStateStore(logger.NewNop())
	hub := observer.NewHub(logger.NewNop())

	e := echo.New()
	NewStatusHandler(store, hub, logger.NewNop()).Register(e)

	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	t.Cleanup(hub.Close)
	return ts, store, hub
}

func TestHealthEndpoint(t *testing.T) {
	ts, _, _ := newTestAdmin(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "auctioneer", body["service"])
}

func TestStatusEndpointReflectsStore(t *testing.T) {
	ts, store, _ := newTestAdmin(t)

	require.True(t, store.TryPublishAuction(&domain.Auction{
		RoundID:        "round-1",
		Kind:           domain.SecondPrice,
		ReservePrice:   50,
		TargetBidCount: 3,
		ItemName:       "Lamp",
	}))
	_, err := store.AppendBid(0, 80)
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Auction   server.StoreSnapshot `json:"auction"`
		Observers int                  `json:"observers"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "awaiting_buyers", body.Auction.Phase)
	assert.Equal(t, "round-1", body.Auction.RoundID)
	assert.Equal(t, "Lamp", body.Auction.ItemName)
	assert.Equal(t, 1, body.Auction.BidsRecorded)
	assert.Equal(t, 3, body.Auction.TargetBidCount)
	assert.Equal(t, 0, body.Observers)
}

func TestEventFeedDeliversPublishedEvents(t *testing.T) {
	ts, _, hub := newTestAdmin(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ObserverCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.PublishAuctionEvent(&domain.AuctionEvent{
		Type:      domain.ItemSold,
		RoundID:   "round-1",
		ItemName:  "Vase",
		BidderID:  0,
		Amount:    150,
		Timestamp: time.Now(),
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event domain.AuctionEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, domain.ItemSold, event.Type)
	assert.Equal(t, "Vase", event.ItemName)
	assert.Equal(t, 150, event.Amount)
}

func TestEventFeedDropsClosedObservers(t *testing.T) {
	ts, _, hub := newTestAdmin(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return hub.ObserverCount() == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return hub.ObserverCount() == 0
	}, time.Second, 10*time.Millisecond)
}
