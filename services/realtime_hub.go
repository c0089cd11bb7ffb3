package services

import (
	"encoding/json"
	"sync"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// NotificationEvent is the frame pushed over a user's websocket when a
// goal notification is stored. Kind is always "notification.created".
type NotificationEvent struct {
	Kind         string               `json:"kind"`
	Notification *models.Notification `json:"notification"`
}

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn
}

// RealtimeHub tracks the open websocket connections per user so the
// goal tracker can push notifications without waiting for the poller.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// BroadcastNotification sends the notification to every open connection
// of the user. Connections whose write fails are unregistered.
func (h *RealtimeHub) BroadcastNotification(userID uint, n *models.Notification) {
	msg, err := json.Marshal(NotificationEvent{Kind: "notification.created", Notification: n})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to encode notification event")
		return
	}

	var dead []*WSClient
	h.mu.RLock()
	for c := range h.clients[userID] {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("websocket write failed, dropping connection")
			dead = append(dead, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range dead {
		h.Unregister(c)
	}
}
