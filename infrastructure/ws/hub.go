package ws

import (
	"chat-relay/domain"
	"chat-relay/domain/event"
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub tracks open connections and room group subscriptions, and routes
// outbound frames. It implements contract.Transport.
//
// Sends are fire-and-forget: the frame is marshaled once and enqueued on
// each target's buffered send channel; a saturated connection loses the
// frame rather than blocking the engine.
type Hub struct {
	mu      sync.RWMutex
	log     *slog.Logger
	clients map[domain.ConnID]*Client
	groups  map[string]map[domain.ConnID]struct{}
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[domain.ConnID]*Client),
		groups:  make(map[string]map[domain.ConnID]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	h.log.Debug("Connection registered", "conn", c.id, "total", len(h.clients))
}

// unregister drops the connection and every group entry pointing at it.
func (h *Hub) unregister(conn domain.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, conn)
	for roomID, members := range h.groups {
		delete(members, conn)
		if len(members) == 0 {
			delete(h.groups, roomID)
		}
	}
	h.log.Debug("Connection unregistered", "conn", conn, "total", len(h.clients))
}

func (h *Hub) Subscribe(conn domain.ConnID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.groups[roomID]; !ok {
		h.groups[roomID] = make(map[domain.ConnID]struct{})
	}
	h.groups[roomID][conn] = struct{}{}
}

func (h *Hub) Unsubscribe(conn domain.ConnID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.groups[roomID]; ok {
		delete(members, conn)
		if len(members) == 0 {
			delete(h.groups, roomID)
		}
	}
}

func (h *Hub) SendTo(conn domain.ConnID, name event.Name, payload any) {
	data, err := marshalFrame(name, payload)
	if err != nil {
		h.log.Error("Failed to marshal outbound frame", "event", name, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[conn]; ok {
		h.enqueue(c, name, data)
	}
}

func (h *Hub) SendToRoom(roomID string, name event.Name, payload any, exclude domain.ConnID) {
	data, err := marshalFrame(name, payload)
	if err != nil {
		h.log.Error("Failed to marshal outbound frame", "event", name, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.groups[roomID] {
		if exclude != "" && conn == exclude {
			continue
		}
		if c, ok := h.clients[conn]; ok {
			h.enqueue(c, name, data)
		}
	}
}

func (h *Hub) BroadcastAll(name event.Name, payload any) {
	data, err := marshalFrame(name, payload)
	if err != nil {
		h.log.Error("Failed to marshal outbound frame", "event", name, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		h.enqueue(c, name, data)
	}
}

func (h *Hub) enqueue(c *Client, name event.Name, data []byte) {
	select {
	case c.send <- data:
	default:
		h.log.Warn("Send buffer full, dropping frame", "conn", c.id, "event", name)
	}
}

func marshalFrame(name event.Name, payload any) ([]byte, error) {
	return json.Marshal(OutboundFrame{Event: name, Data: payload})
}
