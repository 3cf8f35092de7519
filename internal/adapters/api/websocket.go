package api

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// EntriesChangedEvent is pushed to every connected client when a permission
// entry is added or removed.
type EntriesChangedEvent struct {
	Event string    `json:"event"`
	Kind  string    `json:"kind"` // "bind" or "whitelist"
	At    time.Time `json:"at"`
}

// EventHub fans out entry-change events to WebSocket clients, so connection
// managers can re-read their permission tables without polling.
type EventHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewEventHub creates a new event hub
func NewEventHub() *EventHub {
	return &EventHub{clients: make(map[*websocket.Conn]bool)}
}

func (h *EventHub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	log.Info().Int("clients", len(h.clients)).Msg("WebSocket client registered")
}

func (h *EventHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	log.Info().Int("clients", len(h.clients)).Msg("WebSocket client unregistered")
}

// NotifyEntriesChanged implements access.Notifier by broadcasting the change
// to every connected client.
func (h *EventHub) NotifyEntriesChanged(kind string) {
	payload, err := json.Marshal(EntriesChangedEvent{
		Event: "entries_changed",
		Kind:  kind,
		At:    time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode change event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn().Err(err).Msg("Failed to push change event, dropping client")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// HandleWebSocket godoc
//
//	@Summary		Subscribe to permission entry changes
//	@Description	Upgrades to a WebSocket that receives an event whenever an entry changes
//	@Router			/ws [get]
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}
	defer func() {
		h.hub.unregister(conn)
		conn.Close()
	}()

	h.hub.register(conn)

	// Drain control frames until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
