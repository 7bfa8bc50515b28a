package ws

import (
	"encoding/json"
	"sync"

	"covenfield_backend/internal/logger"
)

// Hub fans server events out to each player's open connections. Delivery is
// best-effort: a slow client's buffer overflowing drops the message, never
// blocks a game transaction.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.PlayerID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.PlayerID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.PlayerID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.PlayerID)
		}
	}
}

type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Publish implements service.Publisher.
func (h *Hub) Publish(playerID int64, event string, payload any) {
	msg, err := json.Marshal(envelope{Type: event, Data: payload})
	if err != nil {
		logger.Error("ws marshal failed", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[playerID] {
		select {
		case c.send <- msg:
		default:
			// buffer full, drop
		}
	}
}

// Connections reports the number of players with at least one open socket.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
