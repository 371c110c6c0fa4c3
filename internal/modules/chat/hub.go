package chat

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks one websocket connection per user. A reconnect replaces the
// previous socket. It is shared with the notification service for push
// delivery.
type Hub struct {
	mu    sync.RWMutex
	conns map[int64]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int64]*websocket.Conn)}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.conns[userID]; ok && old != nil {
		_ = old.Close()
	}
	h.conns[userID] = conn
}

func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	// Only drop the mapping if it still points at this socket; a newer
	// connection may have replaced it already.
	if cur, ok := h.conns[userID]; ok && cur == conn {
		_ = cur.Close()
		delete(h.conns, userID)
	}
}

// SendToUser writes the message to the user's socket if connected. A write
// failure drops the connection.
func (h *Hub) SendToUser(userID int64, message interface{}) bool {
	h.mu.RLock()
	conn, ok := h.conns[userID]
	h.mu.RUnlock()
	if !ok || conn == nil {
		return false
	}

	if err := conn.WriteJSON(message); err != nil {
		h.Unregister(userID, conn)
		return false
	}
	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.conns {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.conns, id)
	}
}
