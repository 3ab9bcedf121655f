package websocket

import (
	"log/slog"
	"sync"
)

// Hub - tracks live connections and the per-game rooms they joined.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]struct{}),
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

// unregister - removes the connection from the hub and every room.
func (that *Hub) unregister(connectionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	c, ok := that.clients[connectionID]
	if !ok {
		return
	}

	delete(that.clients, connectionID)
	c.close()

	for room, members := range that.rooms {
		delete(members, connectionID)
		if len(members) == 0 {
			delete(that.rooms, room)
		}
	}
}

// Join - adds a live connection to a room, unknown connections are ignored.
func (that *Hub) Join(connectionID, room string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.clients[connectionID]; !ok {
		return
	}

	members, ok := that.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		that.rooms[room] = members
	}

	members[connectionID] = struct{}{}
}

func (that *Hub) Send(connectionID, event string, payload any) {
	message, err := newMessage(event, payload)
	if err != nil {
		that.logger.Error("failed to encode message", "event", event, "error", err)
		return
	}

	that.mu.RLock()
	c, ok := that.clients[connectionID]
	that.mu.RUnlock()

	if !ok {
		that.logger.Debug("message to a closed connection dropped", "connectionID", connectionID, "event", event)
		return
	}

	that.deliver(c, event, message)
}

func (that *Hub) Broadcast(room, event string, payload any) {
	message, err := newMessage(event, payload)
	if err != nil {
		that.logger.Error("failed to encode message", "event", event, "error", err)
		return
	}

	that.mu.RLock()
	members := make([]*client, 0, len(that.rooms[room]))
	for connectionID := range that.rooms[room] {
		if c, ok := that.clients[connectionID]; ok {
			members = append(members, c)
		}
	}
	that.mu.RUnlock()

	for _, c := range members {
		that.deliver(c, event, message)
	}
}

func (that *Hub) deliver(c *client, event string, message []byte) {
	if !c.enqueue(message) {
		that.logger.Warn("send buffer full, message dropped", "connectionID", c.id, "event", event)
	}
}
