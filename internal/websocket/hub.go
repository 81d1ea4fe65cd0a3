package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"robi-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the redis channel instances use to relay events to each other.
const DefaultChannel = "robi:events:stream"

// Hub fans serialized events out to every connected websocket client.
type Hub struct {
	clients map[*Client]struct{}
	mu      sync.RWMutex

	// Redis connection for cross-instance communication, optional
	rdb        redis.UniversalClient
	channel    string
	instanceID string

	logger logger.ILogger
}

type relayPayload struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

func NewHub(rdb redis.UniversalClient, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		rdb:        rdb,
		channel:    DefaultChannel,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run relays events published by other instances until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	<-ctx.Done()

	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.Send)
	}
	h.mu.Unlock()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("HUB", "Client registered", map[string]interface{}{"client_id": c.ID, "clients": n})
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
	}
	h.mu.Unlock()
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends data to all local clients and, when redis is configured, to the
// clients of every other instance.
func (h *Hub) Broadcast(data []byte) {
	h.deliver(data)

	if h.rdb == nil {
		return
	}
	payload, err := json.Marshal(relayPayload{Origin: h.instanceID, Message: data})
	if err != nil {
		return
	}
	if err := h.rdb.Publish(context.Background(), h.channel, payload).Err(); err != nil {
		h.logger.Warn("HUB", "Failed to relay event", map[string]interface{}{"error": err.Error()})
	}
}

// deliver drops clients whose send buffer is full.
func (h *Hub) deliver(data []byte) {
	var slow []*Client

	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.Send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("HUB", "Client send buffer full, disconnecting", map[string]interface{}{"client_id": c.ID})
		h.unregister(c)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, h.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload relayPayload
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("HUB", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			// Already delivered locally by Broadcast.
			if payload.Origin == h.instanceID {
				continue
			}
			h.deliver(payload.Message)
		}
	}
}
