package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "brandlink:activity"

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client
	mu      sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// instance id, so we skip our own messages coming back from Redis
	origin string

	logger logger.ILogger
}

type clusterEnvelope struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID][]*Client),
		rdb:     rdb,
		origin:  uuid.NewString(),
		logger:  log,
	}
}

// Run relays messages published by other instances until ctx ends, then
// disconnects every local client.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		h.subscribeToRedis(ctx)
	} else {
		<-ctx.Done()
	}

	h.mu.Lock()
	for uid, clients := range h.clients {
		for _, c := range clients {
			close(c.Send)
		}
		delete(h.clients, uid)
	}
	h.mu.Unlock()
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.UserID] = append(h.clients[client.UserID], client)
	h.mu.Unlock()
	h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})
}

// Unregister is idempotent; the Send channel is closed exactly once.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
		h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
	}
}

func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send pushes an activity message to every device of the user, here and on other instances.
func (h *Hub) Send(userID uuid.UUID, activity dto.ActivityMessage) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "activity",
		"data": activity,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode activity", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(userID, data)

	if h.rdb != nil {
		payload, err := h.encodeForCluster(userID, data)
		if err != nil {
			h.logger.Error("Hub", "Failed to encode cluster envelope", map[string]interface{}{"error": err.Error()})
			return
		}
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish to cluster", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (h *Hub) encodeForCluster(userID uuid.UUID, data []byte) ([]byte, error) {
	return json.Marshal(clusterEnvelope{
		Origin:       h.origin,
		TargetUserID: userID.String(),
		Message:      data,
	})
}

func (h *Hub) deliverLocal(userID uuid.UUID, data []byte) {
	var slow []*Client

	h.mu.RLock()
	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"user_id": userID})
		h.Unregister(client)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
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
			var env clusterEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if env.Origin == h.origin {
				continue
			}
			uid, err := uuid.Parse(env.TargetUserID)
			if err != nil {
				continue
			}
			h.deliverLocal(uid, env.Message)
		}
	}
}
