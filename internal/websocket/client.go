package websocket

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"bpmsclient/internal/config"
	"bpmsclient/internal/infrastructure"
	"bpmsclient/pkg/contracts/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Maximum message size allowed from the browser
	maxMessageSize = 512
)

// Client is a middleman between one browser socket and the hub
type Client struct {
	hub  *Hub
	conn Connection

	// send is owned by the hub, which closes it on unregister
	send chan []byte
	// pong is signalled by the read pump when the browser sends a heartbeat
	pong chan struct{}

	id          string
	userID      string
	remoteAddr  string
	connectedAt time.Time

	pingPeriod time.Duration
	pongWait   time.Duration

	logger *slog.Logger
}

// NewClient creates a client for conn. userID scopes targeted notifications and may be empty.
func NewClient(hub *Hub, conn Connection, userID string, cfg config.WebSocketConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	pongWait := cfg.PongWait
	if pongWait <= 0 {
		pongWait = config.WebSocketPongWait
	}
	pingPeriod := cfg.PingPeriod
	if pingPeriod <= 0 {
		pingPeriod = config.WebSocketPingPeriod
	}
	// pings must arrive before the peer's read deadline
	if pingPeriod >= pongWait {
		pingPeriod = (pongWait * 9) / 10
	}

	id := uuid.NewString()
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		pong:        make(chan struct{}, 1),
		id:          id,
		userID:      userID,
		remoteAddr:  conn.RemoteAddr(),
		connectedAt: time.Now(),
		pingPeriod:  pingPeriod,
		pongWait:    pongWait,
		logger: infrastructure.WithComponent(logger, "websocket.client").With(
			slog.String("client_id", id),
		),
	}
}

// ID returns the generated client id
func (c *Client) ID() string { return c.id }

// ReadPump reads browser frames until the socket fails, then unregisters the client.
// The shell only understands heartbeat frames; anything else is ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
		c.logger.Info("websocket client disconnected",
			slog.String("remote_addr", c.remoteAddr),
			slog.Duration("connection_duration", time.Since(c.connectedAt)))
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("unexpected websocket close", slog.String("error", err.Error()))
			}
			return
		}

		var frame struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(message, &frame) != nil {
			continue
		}
		if frame.Type == "ping" || frame.Type == "heartbeat" {
			c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
			select {
			case c.pong <- struct{}{}:
			default:
			}
		}
	}
}

// WritePump writes queued frames and keepalive pings until the hub closes the queue
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Error("failed to write websocket message", slog.String("error", err.Error()))
				return
			}

		case <-c.pong:
			payload, err := json.Marshal(domain.WebSocketMessage{
				Type:      domain.MessageTypePong,
				Timestamp: time.Now().UTC(),
			})
			if err != nil {
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("failed to send ping", slog.String("error", err.Error()))
				return
			}
		}
	}
}
