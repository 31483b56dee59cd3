package websocket

import (
	"errors"
	"sync"
	"time"
)

type mockFrame struct {
	Type int
	Data []byte
}

// mockConn is an in-memory Connection. Reads block until a frame is pushed or the
// connection is closed.
type mockConn struct {
	mu      sync.Mutex
	written []mockFrame
	closed  bool

	reads chan mockFrame
	done  chan struct{}
	once  sync.Once
}

func newMockConn() *mockConn {
	return &mockConn{
		reads: make(chan mockFrame, 16),
		done:  make(chan struct{}),
	}
}

func (m *mockConn) push(data string) {
	m.reads <- mockFrame{Type: 1, Data: []byte(data)}
}

func (m *mockConn) ReadMessage() (int, []byte, error) {
	select {
	case f := <-m.reads:
		return f.Type, f.Data, nil
	case <-m.done:
		return 0, nil, errors.New("connection closed")
	}
}

func (m *mockConn) WriteMessage(messageType int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errors.New("connection closed")
	}
	m.written = append(m.written, mockFrame{Type: messageType, Data: data})
	return nil
}

func (m *mockConn) Close() error {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		close(m.done)
	})
	return nil
}

func (m *mockConn) frames() []mockFrame {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mockFrame, len(m.written))
	copy(out, m.written)
	return out
}

func (m *mockConn) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *mockConn) SetReadDeadline(time.Time) error   { return nil }
func (m *mockConn) SetWriteDeadline(time.Time) error  { return nil }
func (m *mockConn) SetReadLimit(int64)                {}
func (m *mockConn) SetPongHandler(func(string) error) {}
func (m *mockConn) RemoteAddr() string                { return "127.0.0.1:50000" }
