// Package hub pushes warning events to connected Admin and Manager dashboards.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/chemsecure/models"
	"github.com/yeremiapane/chemsecure/utils"
)

// Event types
const (
	EventWarningCreated   = "warning_created"
	EventWarningManaged   = "warning_managed"
	EventWarningUnmanaged = "warning_unmanaged"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub keeps the open dashboard connections keyed by the user id that opened them.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

func New() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, userID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = userID
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Clients returns the number of open connections.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) WarningCreated(w models.Warning) {
	h.Broadcast(Message{Event: EventWarningCreated, Data: w})
}

func (h *Hub) WarningManaged(w models.Warning) {
	h.Broadcast(Message{Event: EventWarningManaged, Data: w})
}

func (h *Hub) WarningUnmanaged(w models.Warning) {
	h.Broadcast(Message{Event: EventWarningUnmanaged, Data: w})
}

// Broadcast sends msg to every client. Connections that fail the write are dropped.
func (h *Hub) Broadcast(msg Message) {
	if h == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		utils.WithError(err, "hub").Error("marshal message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, userID := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.WithError(err, "hub").WithField("user_id", userID).Error("dropping client")
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
