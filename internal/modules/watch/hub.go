package watch

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks the open watch-page connections per video and fans new
// events out to them.
type Hub struct {
	rooms map[int64]map[*websocket.Conn]struct{}
	mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[int64]map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Register(videoID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, exists := h.rooms[videoID]
	if !exists {
		room = make(map[*websocket.Conn]struct{})
		h.rooms[videoID] = room
	}
	room[conn] = struct{}{}
}

func (h *Hub) Unregister(videoID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, exists := h.rooms[videoID]
	if !exists {
		return
	}
	if _, ok := room[conn]; ok {
		_ = conn.Close()
		delete(room, conn)
	}
	if len(room) == 0 {
		delete(h.rooms, videoID)
	}
}

// BroadcastToVideo sends the event to every connection watching the
// video. Connections that fail to take the write are dropped.
func (h *Hub) BroadcastToVideo(videoID int64, message interface{}) int {
	h.mutex.RLock()
	room := h.rooms[videoID]
	conns := make([]*websocket.Conn, 0, len(room))
	for conn := range room {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	delivered := 0
	for _, conn := range conns {
		if err := conn.WriteJSON(message); err != nil {
			h.Unregister(videoID, conn)
			continue
		}
		delivered++
	}
	return delivered
}

func (h *Hub) WatcherCount(videoID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.rooms[videoID])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for videoID, room := range h.rooms {
		for conn := range room {
			_ = conn.Close()
		}
		delete(h.rooms, videoID)
	}
}
