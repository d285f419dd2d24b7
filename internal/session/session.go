package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/driftlab/wsrelay/internal/broadcast"
	"github.com/driftlab/wsrelay/internal/connection"
)

// ErrRejectedShutdown is returned when a connection arrives after draining
// has started. The caller should close the socket with a going-away status.
var ErrRejectedShutdown = errors.New("connection rejected: server shutting down")

const relayTimestampFormat = "2006-01-02 15:04:05"

// Sender fans a message out to the other clients.
type Sender interface {
	Broadcast(msg broadcast.Message) []string
}

// ShutdownQuery reports whether draining has started.
type ShutdownQuery interface {
	ShutdownStarted() bool
}

// Session owns one connection from accept to final cleanup.
type Session struct {
	conn     *connection.Conn
	registry *connection.Registry
	sender   Sender
	shutdown ShutdownQuery
	logger   *slog.Logger
}

// New creates a session for an accepted connection.
func New(conn *connection.Conn, registry *connection.Registry, sender Sender, shutdown ShutdownQuery, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		conn:     conn,
		registry: registry,
		sender:   sender,
		shutdown: shutdown,
		logger:   logger.With("component", "session", "client_id", conn.ID),
	}
}

// Run drives the connection until the peer disconnects, the transport
// fails, or shutdown closes the socket out from under it. Per-connection
// failures are contained here: the only errors Run returns are
// ErrRejectedShutdown and connection.ErrDuplicateClient, both of which mean
// the connection was never registered.
func (s *Session) Run() error {
	if s.shutdown.ShutdownStarted() {
		s.logger.Warn("rejected connection during shutdown")
		return ErrRejectedShutdown
	}

	if err := s.registry.Add(s.conn); err != nil {
		s.logger.Warn("registration failed", "error", err)
		return err
	}
	defer s.cleanup()

	s.conn.Transport.Send(fmt.Sprintf("Welcome, %s! You are connected.", s.conn.ID))
	s.sender.Broadcast(broadcast.Message{
		Payload:   fmt.Sprintf("Client %s joined. Active connections: %d", s.conn.ID, s.registry.Len()),
		Origin:    s.conn.ID,
		Broadcast: true,
	})

	s.relayLoop()
	return nil
}

// relayLoop receives inbound messages and fans them out until the
// transport reports an exit condition.
func (s *Session) relayLoop() {
	for {
		data, err := s.conn.Transport.Receive()
		if err != nil {
			if errors.Is(err, connection.ErrPeerClosed) {
				s.logger.Info("peer disconnected")
			} else {
				// Transport failures are ordinary disconnects, not faults.
				s.logger.Info("connection lost", "error", err)
			}
			return
		}

		s.logger.Debug("message received", "bytes", len(data))

		s.conn.Transport.Send(fmt.Sprintf("Message received: %s", data))
		s.sender.Broadcast(broadcast.Message{
			Payload:   fmt.Sprintf("[%s] %s: %s", time.Now().Format(relayTimestampFormat), s.conn.ID, data),
			Origin:    s.conn.ID,
			Broadcast: true,
		})
	}
}

// cleanup runs on every exit path once the connection was registered.
// Deregistration is idempotent, so racing the broadcaster's eviction or a
// forced close is harmless.
func (s *Session) cleanup() {
	s.conn.MarkClosed()
	s.conn.Transport.Close()
	s.registry.Remove(s.conn.ID)

	if s.registry.Len() > 0 {
		s.sender.Broadcast(broadcast.Message{
			Payload:   fmt.Sprintf("Client %s left. Active connections: %d", s.conn.ID, s.registry.Len()),
			Broadcast: true,
		})
	}
}
