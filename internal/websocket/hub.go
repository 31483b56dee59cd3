package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"bpmsclient/internal/infrastructure"
	"bpmsclient/pkg/contracts/domain"
)

// sendBufferSize is the number of frames queued per client before it is dropped
const sendBufferSize = 64

// delivery is one outbound frame and the reply channel for its recipient count
type delivery struct {
	userID  string
	payload []byte
	reply   chan int
}

// Hub fans notifications out to connected browsers. A single goroutine owns the
// client set; every other method talks to it over channels.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	quit       chan struct{}
	done       chan struct{}

	clients map[*Client]struct{}
	count   atomic.Int64
	running atomic.Bool

	startOnce sync.Once
	stopOnce  sync.Once

	metrics *infrastructure.ShellMetrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewHub creates a hub. Call Start before registering clients.
func NewHub(metrics *infrastructure.ShellMetrics, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if metrics == nil {
		metrics, _ = infrastructure.NewShellMetrics(nil)
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
		metrics:    metrics,
		logger:     infrastructure.WithComponent(logger, "websocket.hub"),
		now:        time.Now,
	}
}

// Start launches the hub loop. Calling it more than once has no effect.
func (h *Hub) Start() {
	h.startOnce.Do(func() {
		h.running.Store(true)
		go h.run()
		h.logger.Info("websocket hub started")
	})
}

// Stop closes every client and waits for the hub loop to exit
func (h *Hub) Stop() {
	if !h.running.Load() {
		return
	}
	h.stopOnce.Do(func() { close(h.quit) })
	<-h.done
}

// ClientCount reports the number of registered clients
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Register adds c to the hub. It returns false when the hub is not running.
func (h *Hub) Register(c *Client) bool {
	if !h.running.Load() {
		return false
	}
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes c from the hub and closes its send queue
func (h *Hub) Unregister(c *Client) {
	if !h.running.Load() {
		return
	}
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Notify sends msg as a notification envelope. Messages with a user id reach only
// that user's sockets. It returns the number of sockets the frame was queued on.
func (h *Hub) Notify(msg domain.NotificationMessage) int {
	if !h.running.Load() {
		return 0
	}

	payload, err := json.Marshal(domain.WebSocketMessage{
		Type:      domain.MessageTypeNotification,
		Payload:   msg,
		Timestamp: msg.Timestamp,
	})
	if err != nil {
		h.logger.Error("failed to encode notification",
			slog.String("notification_id", msg.ID),
			slog.String("error", err.Error()))
		return 0
	}

	d := delivery{userID: msg.UserID, payload: payload, reply: make(chan int, 1)}
	select {
	case h.deliver <- d:
	case <-h.done:
		return 0
	}
	select {
	case n := <-d.reply:
		return n
	case <-h.done:
		return 0
	}
}

func (h *Hub) run() {
	defer close(h.done)
	ctx := context.Background()

	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Add(1)
			h.metrics.WebSocketConnections.Add(ctx, 1)
			h.greet(c)
			h.logger.Debug("client registered",
				slog.String("client_id", c.id),
				slog.String("user_id", c.userID),
				slog.Int("clients", len(h.clients)))

		case c := <-h.unregister:
			if h.drop(ctx, c) {
				h.logger.Debug("client unregistered",
					slog.String("client_id", c.id),
					slog.Int("clients", len(h.clients)))
			}

		case d := <-h.deliver:
			n := 0
			for c := range h.clients {
				if d.userID != "" && c.userID != d.userID {
					continue
				}
				select {
				case c.send <- d.payload:
					n++
				default:
					h.logger.Warn("dropping slow client", slog.String("client_id", c.id))
					h.drop(ctx, c)
				}
			}
			d.reply <- n

		case <-h.quit:
			for c := range h.clients {
				h.drop(ctx, c)
			}
			h.running.Store(false)
			h.logger.Info("websocket hub stopped")
			return
		}
	}
}

// drop removes c and closes its queue. Only the hub loop calls it.
func (h *Hub) drop(ctx context.Context, c *Client) bool {
	if _, ok := h.clients[c]; !ok {
		return false
	}
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
	h.metrics.WebSocketConnections.Add(ctx, -1)
	return true
}

// greet queues the connected frame for a new client
func (h *Hub) greet(c *Client) {
	payload, err := json.Marshal(domain.WebSocketMessage{
		Type:      domain.MessageTypeConnected,
		Payload:   map[string]string{"clientId": c.id},
		Timestamp: h.now().UTC(),
	})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
