package websocket

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bpmsclient/internal/config"
	"bpmsclient/internal/infrastructure"
	"bpmsclient/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return infrastructure.NewLoggerWithWriter(&bytes.Buffer{}, "debug")
}

func startedHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, testLogger())
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func newTestClient(hub *Hub, userID string) (*Client, *mockConn) {
	conn := newMockConn()
	return NewClient(hub, conn, userID, config.WebSocketConfig{}, testLogger()), conn
}

func decodeFrame(t *testing.T, data []byte) domain.WebSocketMessage {
	t.Helper()
	var msg domain.WebSocketMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// drain reads the connected greeting queued on registration
func drain(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		assert.Equal(t, domain.MessageTypeConnected, decodeFrame(t, data).Type)
	case <-time.After(time.Second):
		t.Fatal("no connected frame")
	}
}

func TestHubNotRunning(t *testing.T) {
	hub := NewHub(nil, testLogger())
	c, _ := newTestClient(hub, "")

	assert.False(t, hub.Register(c))
	assert.Equal(t, 0, hub.Notify(domain.NotificationMessage{Title: "x"}))
	hub.Unregister(c)
	hub.Stop()
}

func TestHubStartStopIdempotent(t *testing.T) {
	hub := NewHub(nil, testLogger())
	hub.Start()
	hub.Start()
	hub.Stop()
	hub.Stop()

	c, _ := newTestClient(hub, "")
	assert.False(t, hub.Register(c))
}

func TestHubRegisterGreetsClient(t *testing.T) {
	hub := startedHub(t)
	c, _ := newTestClient(hub, "u1")

	require.True(t, hub.Register(c))
	drain(t, c)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestHubNotifyTargeting(t *testing.T) {
	hub := startedHub(t)
	alice, _ := newTestClient(hub, "alice")
	bob, _ := newTestClient(hub, "bob")
	anon, _ := newTestClient(hub, "")
	for _, c := range []*Client{alice, bob, anon} {
		require.True(t, hub.Register(c))
		drain(t, c)
	}

	tests := []struct {
		name     string
		userID   string
		expected int
	}{
		{"broadcast reaches every socket", "", 3},
		{"targeted reaches one user", "alice", 1},
		{"unknown user reaches nobody", "carol", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := domain.NotificationMessage{
				ID:        "n-1",
				Type:      domain.NotificationInfo,
				Title:     "Task assigned",
				Message:   "Review invoice",
				Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
				UserID:    tt.userID,
			}
			assert.Equal(t, tt.expected, hub.Notify(msg))

			received := 0
			for _, c := range []*Client{alice, bob, anon} {
				select {
				case data := <-c.send:
					received++
					frame := decodeFrame(t, data)
					assert.Equal(t, domain.MessageTypeNotification, frame.Type)
					payload, ok := frame.Payload.(map[string]any)
					require.True(t, ok)
					assert.Equal(t, "Task assigned", payload["title"])
				default:
				}
			}
			assert.Equal(t, tt.expected, received)
		})
	}
}

func TestHubUnregisterClosesQueue(t *testing.T) {
	hub := startedHub(t)
	c, _ := newTestClient(hub, "")
	require.True(t, hub.Register(c))
	drain(t, c)

	hub.Unregister(c)
	_, ok := <-c.send
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())

	// second unregister is a no-op
	hub.Unregister(c)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := startedHub(t)
	c, _ := newTestClient(hub, "")
	require.True(t, hub.Register(c))

	// greeting plus a full queue
	for i := 0; i < sendBufferSize-1; i++ {
		require.Equal(t, 1, hub.Notify(domain.NotificationMessage{Title: "fill"}))
	}
	assert.Equal(t, 0, hub.Notify(domain.NotificationMessage{Title: "overflow"}))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub(nil, testLogger())
	hub.Start()
	c, _ := newTestClient(hub, "")
	require.True(t, hub.Register(c))
	drain(t, c)

	hub.Stop()
	_, ok := <-c.send
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())
	assert.Equal(t, 0, hub.Notify(domain.NotificationMessage{Title: "late"}))
}

func TestClientPumps(t *testing.T) {
	hub := startedHub(t)
	c, conn := newTestClient(hub, "alice")
	require.True(t, hub.Register(c))

	go c.WritePump()
	readDone := make(chan struct{})
	go func() {
		c.ReadPump()
		close(readDone)
	}()

	conn.push(`{"type":"ping"}`)
	conn.push(`not json`)
	hub.Notify(domain.NotificationMessage{Title: "hello", UserID: "alice"})

	var types []string
	require.Eventually(t, func() bool {
		types = types[:0]
		for _, f := range conn.frames() {
			types = append(types, decodeFrame(t, f.Data).Type)
		}
		return len(types) == 3
	}, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []string{
		domain.MessageTypeConnected,
		domain.MessageTypePong,
		domain.MessageTypeNotification,
	}, types)

	conn.Close()
	select {
	case <-readDone:
	case <-time.After(time.Second):
		t.Fatal("read pump did not exit")
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, conn.isClosed())
}

func TestNewClientKeepaliveDefaults(t *testing.T) {
	hub := NewHub(nil, testLogger())

	c, _ := newTestClient(hub, "")
	assert.Equal(t, config.WebSocketPongWait, c.pongWait)
	assert.Equal(t, config.WebSocketPingPeriod, c.pingPeriod)

	c = NewClient(hub, newMockConn(), "", config.WebSocketConfig{PongWait: 20 * time.Second}, testLogger())
	assert.Equal(t, 18*time.Second, c.pingPeriod, "default ping period is clamped below pong wait")

	c = NewClient(hub, newMockConn(), "", config.WebSocketConfig{
		PingPeriod: 90 * time.Second,
		PongWait:   30 * time.Second,
	}, testLogger())
	assert.Equal(t, 27*time.Second, c.pingPeriod)
	assert.NotEmpty(t, c.ID())
}
