package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/babyduj/shower-api/internal/config"
	"github.com/babyduj/shower-api/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512

	defaultPingInterval = 30 * time.Second
)

// Hub fans change events out to every connected websocket client. Only the
// Run goroutine touches the client set.
type Hub struct {
	upgrader     websocket.Upgrader
	clientBuffer int
	pingInterval time.Duration

	clients    map[*client]struct{}
	broadcast  chan domain.Event
	register   chan *client
	unregister chan *client
	done       chan struct{}

	mu    sync.RWMutex
	count int
}

// NewHub builds a hub. checkOrigin decides which browser origins may connect;
// nil accepts any origin. A non-positive ping interval falls back to 30s.
func NewHub(conf *config.EventsConfig, checkOrigin func(r *http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}

	pingInterval := conf.PingInterval
	if pingInterval <= 0 {
		pingInterval = defaultPingInterval
	}

	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		clientBuffer: conf.ClientBuffer,
		pingInterval: pingInterval,
		clients:      make(map[*client]struct{}),
		broadcast:    make(chan domain.Event, conf.BroadcastBuffer),
		register:     make(chan *client),
		unregister:   make(chan *client),
		done:         make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.setCount(len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}

		case event := <-h.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				zap.L().Error("failed to encode event", zap.Error(err))
				continue
			}

			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					// Slow consumer, it will reconnect and re-fetch.
					h.drop(c)
				}
			}
		}
	}
}

// Publish queues event for broadcast. It never blocks; when the queue is full
// the event is dropped.
func (h *Hub) Publish(event domain.Event) {
	select {
	case h.broadcast <- event:
	default:
		zap.L().Warn("event queue full, dropping event", zap.String("type", string(event.Type)), zap.Uint("id", event.ID))
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.count
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("h.upgrader.Upgrade -> %w", err)
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.clientBuffer),
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return nil
	}

	go c.writePump()
	go c.readPump()

	return nil
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.setCount(len(h.clients))
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}
