package watch

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"clipstream/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// Accepts any origin. Tighten this before exposing the endpoint
	// publicly.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades watch-page connections and keeps them registered
// with the hub for the lifetime of the socket.
type WSHandler struct {
	hub    *Hub
	tokens *token.Service
}

func NewWSHandler(hub *Hub, tokens *token.Service) *WSHandler {
	return &WSHandler{
		hub:    hub,
		tokens: tokens,
	}
}

// HandleWebSocket serves GET /ws/videos/:id?token=ACCESS_TOKEN.
//
// The token travels in the query string because browser WebSocket
// clients cannot set an Authorization header.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video ID"})
		return
	}

	raw := c.Query("token")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required. Use ?token=YOUR_ACCESS_TOKEN"})
		return
	}

	claims, err := h.tokens.Verify(raw, token.KindAccess)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(videoID, conn)
	log.Printf("User %d watching video %d via WebSocket", claims.UserID, videoID)

	defer func() {
		h.hub.Unregister(videoID, conn)
		log.Printf("User %d stopped watching video %d", claims.UserID, videoID)
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	go h.pingLoop(conn)
	h.readLoop(conn, claims.UserID)
}

func (h *WSHandler) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

// readLoop drains the socket. Watch connections are one-way: clients
// only receive events, so anything read is discarded.
func (h *WSHandler) readLoop(conn *websocket.Conn, userID int64) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for user %d: %v", userID, err)
			}
			return
		}
	}
}
