package ws

import (
	"context"
	"sync"

	"dataitjobs/internal/pkg/logger"

	"go.uber.org/zap"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
	logger     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger.OrNop(log),
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every client, including ones still queued for registration. Register and
// Unregister stop blocking once Run has returned.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stop()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Debug("ws connected", zap.Int("total_clients", total))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Debug("ws disconnected", zap.Int("total_clients", total))

		case message := <-h.broadcast:
			h.mutex.Lock()
			total := len(h.clients)
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mutex.Unlock()
			h.logger.Debug("ws broadcast", zap.Int("clients", total))
		}
	}
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.mutex.Lock()
		defer h.mutex.Unlock()
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
		for {
			select {
			case c := <-h.register:
				if c != nil {
					close(c.send)
				}
			default:
				return
			}
		}
	})
}

// Register queues client for broadcasts. It reports false when the hub has
// stopped; the caller then owns the connection.
func (h *Hub) Register(client *Client) bool {
	if h == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("ws broadcast dropped", zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
