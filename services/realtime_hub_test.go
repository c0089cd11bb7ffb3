package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHubConn opens a real websocket pair: the server side is what the
// hub writes to, the client side is what a frontend would read.
func newHubConn(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conns <- c
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	server = <-conns
	return server, client
}

func TestHubDeliversNotificationEvent(t *testing.T) {
	hub := NewRealtimeHub()
	server, client := newHubConn(t)
	hub.Register(&WSClient{UserID: 42, Conn: server})

	n := &models.Notification{
		ID:     "42_protein_2026-08-29_achieved",
		UserID: 42,
		Type:   "goal_achievement",
		Title:  "🎉 Protein Goal Achieved!",
	}
	hub.BroadcastNotification(42, n)

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := client.ReadMessage()
	require.NoError(t, err)

	var ev NotificationEvent
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, "notification.created", ev.Kind)
	require.NotNil(t, ev.Notification)
	assert.Equal(t, n.ID, ev.Notification.ID)
	assert.Equal(t, n.Title, ev.Notification.Title)
}

func TestHubDropsDeadConnections(t *testing.T) {
	hub := NewRealtimeHub()
	server, client := newHubConn(t)
	hub.Register(&WSClient{UserID: 7, Conn: server})

	require.NoError(t, client.Close())
	require.NoError(t, server.Close())

	hub.BroadcastNotification(7, &models.Notification{ID: "x", UserID: 7, Type: "goal_achievement"})

	hub.mu.RLock()
	_, open := hub.clients[7]
	hub.mu.RUnlock()
	assert.False(t, open, "a failed write must evict the connection")
}
