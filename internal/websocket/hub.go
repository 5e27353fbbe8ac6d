package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/raneshrk02/regulations-chat/internal/pkg/logger"
	"github.com/raneshrk02/regulations-chat/internal/service"
)

const clusterChannel = "regchat_cluster_events"

// Hub tracks active chat connections. Sessions are independent; the hub only
// exists for lifecycle bookkeeping and broadcast notifications (e.g. fresh
// ingestion batches).
type Hub struct {
	// Registered clients by session id.
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance broadcast; nil for single instance.
	rdb *redis.Client

	// instanceID filters out our own redis echoes.
	instanceID string

	chatService service.IChatService

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(chatService service.IChatService, rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		clients:     make(map[uuid.UUID]*Client),
		rdb:         rdb,
		instanceID:  uuid.NewString(),
		chatService: chatService,
		logger:      log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = client
			client.setState(StateOpen)
			h.mu.Unlock()
			h.logger.Info("Hub", "Session opened", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.SessionID]; ok {
				delete(h.clients, client.SessionID)
				close(client.Send)
				h.logger.Info("Hub", "Session closed", map[string]interface{}{"session_id": client.SessionID})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a payload to every connected client, and to peer instances
// when redis is configured. Implements service.Broadcaster.
func (h *Hub) Broadcast(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal broadcast payload", map[string]interface{}{"error": err.Error()})
		return
	}

	h.broadcastLocal(data)

	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"origin":  h.instanceID,
			"message": json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), clusterChannel, envelope)
	}
}

// SessionCount reports how many sessions are currently registered.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.State() != StateOpen {
			continue
		}
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping broadcast", map[string]interface{}{
				"session_id": client.SessionID,
			})
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope struct {
			Origin  string          `json:"origin"`
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "Malformed cluster event", map[string]interface{}{"error": err.Error()})
			continue
		}
		if envelope.Origin == h.instanceID {
			continue // already delivered locally
		}
		h.broadcastLocal(envelope.Message)
	}
}
