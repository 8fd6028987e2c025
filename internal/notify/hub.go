package notify

import (
	"context"
	"sync"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Client is one open SSE stream. A user may hold several.
type Client struct {
	UserID uuid.UUID
	Ch     chan entity.Notification
}

func NewClient(userID uuid.UUID) *Client {
	return &Client{
		UserID: userID,
		Ch:     make(chan entity.Notification, 16),
	}
}

// Hub fans notifications out to the streams of their recipient.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan entity.Notification
	done       chan struct{}
	users      map[uuid.UUID]map[*Client]struct{}
	mu         sync.RWMutex
	stopOnce   sync.Once
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan entity.Notification, 64),
		done:       make(chan struct{}),
		users:      make(map[uuid.UUID]map[*Client]struct{}),
	}
}

// The channel operations below return immediately once Run has exited.

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(n entity.Notification) {
	select {
	case h.broadcast <- n:
	case <-h.done:
	}
}

// Run serves registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case n := <-h.broadcast:
			h.broadcastToUser(n)
		}
	}
}

// ClientCount reports how many streams userID has open.
func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[client.UserID] == nil {
		h.users[client.UserID] = make(map[*Client]struct{})
	}
	h.users[client.UserID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.users[client.UserID]
	if clients == nil {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.users, client.UserID)
	}
}

func (h *Hub) broadcastToUser(n entity.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.users[n.UserID] {
		select {
		case client.Ch <- n:
		default:
			// Drop if the client is too slow.
		}
	}
}
