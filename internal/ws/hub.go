package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"MerchantBot/entity"
)

// Event represents a WebSocket event sent to ops clients.
type Event struct {
	Type string      `json:"type"` // "outcome"
	Data interface{} `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts payment
// and payout outcome events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastOutcome sends an outcome event to all connected ops clients.
func (h *Hub) BroadcastOutcome(event entity.WebhookEvent) {
	h.broadcast <- &Event{
		Type: "outcome",
		Data: event,
	}
}
