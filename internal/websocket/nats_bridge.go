package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"bpmsclient/internal/infrastructure"
	"bpmsclient/pkg/contracts/domain"
)

// Deliverer validates and fans out one notification
type Deliverer interface {
	Deliver(ctx context.Context, msg domain.NotificationMessage) (domain.NotificationMessage, int, error)
}

// NATSBridge subscribes to a NATS subject and forwards decoded notifications to
// the hub through a Deliverer.
type NATSBridge struct {
	conn    *nats.Conn
	sub     *nats.Subscription
	subject string
	sink    Deliverer
	logger  *slog.Logger
}

// NewNATSBridge connects to natsURL. The connection retries in the background
// after the initial dial succeeds.
func NewNATSBridge(natsURL, subject string, sink Deliverer, logger *slog.Logger) (*NATSBridge, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = infrastructure.WithComponent(logger, "websocket.nats")

	nc, err := nats.Connect(natsURL,
		nats.Name("bpms-client-shell"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSBridge{conn: nc, subject: subject, sink: sink, logger: logger}, nil
}

// Subscribe starts forwarding messages published on the bridge subject
func (b *NATSBridge) Subscribe() error {
	sub, err := b.conn.Subscribe(b.subject, func(msg *nats.Msg) {
		b.handle(context.Background(), msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("nats subscribe %q: %w", b.subject, err)
	}
	b.sub = sub
	b.logger.Info("nats bridge subscribed", slog.String("subject", b.subject))
	return nil
}

// Connected reports whether the NATS connection is up
func (b *NATSBridge) Connected() bool {
	return b != nil && b.conn != nil && b.conn.IsConnected()
}

// Close drains the subscription and the connection
func (b *NATSBridge) Close() {
	if b == nil || b.conn == nil {
		return
	}
	if err := b.conn.Drain(); err != nil {
		b.logger.Warn("nats drain failed", slog.String("error", err.Error()))
	}
}

// handle decodes one message and delivers it. Bad messages are logged and dropped.
func (b *NATSBridge) handle(ctx context.Context, subject string, data []byte) {
	msg, err := decodeNotification(subject, data)
	if err != nil {
		b.logger.Warn("dropping nats message",
			slog.String("subject", subject),
			slog.String("error", err.Error()))
		return
	}
	if _, _, err := b.sink.Deliver(ctx, msg); err != nil {
		b.logger.Warn("nats notification rejected",
			slog.String("subject", subject),
			slog.String("error", err.Error()))
	}
}

// decodeNotification parses a payload published on bpms.notifications.<target>
func decodeNotification(subject string, data []byte) (domain.NotificationMessage, error) {
	var msg domain.NotificationMessage
	if len(data) == 0 {
		return msg, errors.New("empty payload")
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("decode payload: %w", err)
	}
	target, err := targetFromSubject(subject)
	if err != nil {
		return msg, err
	}
	msg.UserID = target
	return msg, nil
}

// targetFromSubject returns the user id in the last subject token. Broadcast
// tokens yield an empty id.
func targetFromSubject(subject string) (string, error) {
	parts := strings.Split(subject, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("subject %q has no target token", subject)
	}
	last := parts[len(parts)-1]
	switch strings.ToLower(last) {
	case "":
		return "", fmt.Errorf("subject %q has an empty target token", subject)
	case "*", "all", "broadcast":
		return "", nil
	}
	return last, nil
}
