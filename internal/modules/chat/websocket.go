package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ofiz/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the frontend domain is fixed.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades authenticated connections and feeds inbound frames to
// the chat service. Auth comes via ?token= because browsers cannot set
// headers on websocket dials.
type WSHandler struct {
	hub     *Hub
	jwt     *jwt.Service
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewWSHandler(hub *Hub, jwtSvc *jwt.Service, service *Service, loggerf func(format string, args ...interface{})) *WSHandler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &WSHandler{hub: hub, jwt: jwtSvc, service: service, loggerf: loggerf}
}

func (h *WSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.Handle)
}

type wsClientFrame struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id"`
	Body           string `json:"body"`
}

func (h *WSHandler) Handle(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter is required"})
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.loggerf("level=error msg=websocket upgrade failed err=%v", err)
		return
	}

	userID := claims.UserID
	h.hub.Register(userID, conn)
	h.loggerf("level=info msg=websocket connected user_id=%d", userID)
	defer func() {
		h.hub.Unregister(userID, conn)
		h.loggerf("level=info msg=websocket disconnected user_id=%d", userID)
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	go pingLoop(conn)

	h.readLoop(conn, userID)
}

func pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

func (h *WSHandler) readLoop(conn *websocket.Conn, userID int64) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.loggerf("level=warn msg=websocket read error user_id=%d err=%v", userID, err)
			}
			return
		}

		var frame wsClientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			_ = conn.WriteJSON(wsEvent{Kind: "error", Body: "invalid json"})
			continue
		}

		ctx := context.Background()
		switch frame.Type {
		case "message":
			if _, err := h.service.SendMessage(ctx, userID, frame.ConversationID, frame.Body); err != nil {
				_ = conn.WriteJSON(wsEvent{Kind: "error", ConversationID: frame.ConversationID, Body: err.Error()})
			}
		case "typing":
			_ = h.service.Typing(ctx, userID, frame.ConversationID)
		case "read":
			_ = h.service.MarkRead(ctx, userID, frame.ConversationID)
		case "ping":
			_ = conn.WriteJSON(wsEvent{Kind: "pong"})
		default:
			_ = conn.WriteJSON(wsEvent{Kind: "error", Body: "unknown frame type: " + frame.Type})
		}
	}
}
