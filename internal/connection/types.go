package connection

import (
	"errors"
	"time"
)

// Errors
var (
	ErrDuplicateClient = errors.New("client id already registered")
	ErrPeerClosed      = errors.New("peer closed connection")
	ErrClosed          = errors.New("transport closed")
)

// State is the lifecycle state of a connection. Transitions are monotonic:
// Active -> Closing -> Closed, never backward.
type State int32

const (
	StateActive State = iota
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Transport is a bidirectional text-message channel to one client.
//
// Send and Close may be called from any goroutine; Receive must only be
// called by the owning session. Closing the transport unblocks a pending
// Receive with an error.
type Transport interface {
	// Send writes one text message to the client.
	Send(msg string) error

	// Receive blocks for the next inbound message. A clean close by the
	// peer returns ErrPeerClosed; any other error is a transport failure.
	Receive() (string, error)

	// Close closes the underlying channel. Safe to call more than once.
	Close() error
}

// TransportConfig configures a WebSocket transport.
type TransportConfig struct {
	WriteTimeout    time.Duration // Write deadline for sends
	PingInterval    time.Duration // How often to ping the client
	PongTimeout     time.Duration // Max time without a pong before the read fails
	MaxMessageBytes int64         // Read limit for inbound messages
}

// DefaultTransportConfig returns sensible defaults.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		WriteTimeout:    5 * time.Second,
		PingInterval:    15 * time.Second,
		PongTimeout:     60 * time.Second,
		MaxMessageBytes: 64 * 1024,
	}
}
