package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"gutvbooker/internal/logger"
)

const sendBuffer = 32

// Event is the message written to every subscriber.
type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data"`
	At   time.Time `json:"at"`
}

type client struct {
	userID int64
	send   chan []byte
}

// Hub fans booking events out to connected admin sockets. Publish never
// blocks: a subscriber whose buffer is full misses the event.
type Hub struct {
	clients map[*client]struct{}
	mutex   sync.RWMutex
	now     func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		now:     time.Now,
	}
}

func (h *Hub) register(userID int64) *client {
	c := &client{userID: userID, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[c] = struct{}{}
	h.mutex.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) Publish(eventType string, payload any) {
	msg, err := json.Marshal(Event{Type: eventType, Data: payload, At: h.now().UTC()})
	if err != nil {
		logger.Warn("realtime: cannot encode event", "type", eventType, "error", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			logger.Warn("realtime: subscriber too slow, event dropped", "user_id", c.userID, "type", eventType)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
