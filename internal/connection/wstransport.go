package connection

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsTransport adapts a server-side gorilla/websocket connection to the
// Transport interface.
type wsTransport struct {
	cfg  TransportConfig
	conn *websocket.Conn

	// Write serialization
	writeMu sync.Mutex

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewWSTransport wraps an upgraded WebSocket connection. It installs a pong
// handler that extends the read deadline and starts a keepalive goroutine
// that pings the client every PingInterval; a client that stops answering
// fails the pending Receive once PongTimeout elapses.
func NewWSTransport(conn *websocket.Conn, cfg TransportConfig) Transport {
	t := &wsTransport{
		cfg:  cfg,
		conn: conn,
		done: make(chan struct{}),
	}

	if cfg.MaxMessageBytes > 0 {
		conn.SetReadLimit(cfg.MaxMessageBytes)
	}
	if cfg.PongTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
		})
	}
	if cfg.PingInterval > 0 {
		go t.keepaliveLoop()
	}

	return t
}

// Send writes one text message to the client.
func (t *wsTransport) Send(msg string) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	t.mu.Unlock()

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	t.conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout))
	return t.conn.WriteMessage(websocket.TextMessage, []byte(msg))
}

// Receive blocks for the next inbound text message.
func (t *wsTransport) Receive() (string, error) {
	_, data, err := t.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err,
			websocket.CloseNormalClosure,
			websocket.CloseGoingAway,
			websocket.CloseNoStatusReceived,
		) {
			return "", ErrPeerClosed
		}
		return "", err
	}
	return string(data), nil
}

// Close performs the close handshake and tears down the connection.
// Subsequent calls are no-ops.
func (t *wsTransport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	close(t.done)

	t.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	return t.conn.Close()
}

// keepaliveLoop pings the client until the transport is closed.
func (t *wsTransport) keepaliveLoop() {
	ticker := time.NewTicker(t.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(t.cfg.WriteTimeout)
			t.conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline)
		}
	}
}
