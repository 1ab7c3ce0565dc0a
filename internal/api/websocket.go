package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"warehouse-print-agent/internal/models"
)

// Hub pushes job activity to connected local consoles.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	history printingHistory
	log     *zap.Logger

	upgrader websocket.Upgrader
}

// printingHistory is the slice of History the hub needs for the initial
// snapshot on connect.
type printingHistory interface {
	Records() []models.JobRecord
}

func NewHub(history printingHistory, log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		history: history,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Loopback-only listener, origin checks add nothing here.
				return true
			},
		},
	}
}

// Serve upgrades the connection, sends the current activity snapshot, and
// keeps reading only to detect disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Registration and the snapshot write happen under the hub lock so a
	// broadcast triggered by a finishing job cannot write to the conn at the
	// same time; gorilla connections do not tolerate concurrent writers.
	h.mu.Lock()
	h.clients[conn] = true
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	err = conn.WriteJSON(h.history.Records())
	h.mu.Unlock()
	if err != nil {
		h.drop(conn)
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(conn)
			return
		}
	}
}

// Broadcast sends the updated record list to every connected client,
// dropping any that cannot keep up.
func (h *Hub) Broadcast(records []models.JobRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			conn.Close()
			delete(h.clients, conn)
			continue
		}
		if err := conn.WriteJSON(records); err != nil {
			h.log.Debug("websocket broadcast failed", zap.Error(err))
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}
