package connection

import (
	"sync"
	"time"
)

// Conn is the tracked state for one connected client.
//
// A Conn is owned by the session that created it. The Registry holds a
// non-owning reference used for lookup, broadcast, and forced close. The
// state field is advanced either by the owning session (normal exit) or by
// ForceClose during shutdown; both paths go through advance, which is
// idempotent and never moves backward.
type Conn struct {
	ID            string
	Transport     Transport
	EstablishedAt time.Time

	mu    sync.Mutex
	state State
}

// NewConn wraps a transport for a newly accepted client.
func NewConn(id string, t Transport) *Conn {
	return &Conn{
		ID:            id,
		Transport:     t,
		EstablishedAt: time.Now(),
		state:         StateActive,
	}
}

// State returns the current lifecycle state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// advance moves the state forward. Backward transitions are ignored.
// Returns true if the state changed.
func (c *Conn) advance(s State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s <= c.state {
		return false
	}
	c.state = s
	return true
}

// MarkClosing flags the connection as winding down.
func (c *Conn) MarkClosing() {
	c.advance(StateClosing)
}

// MarkClosed flags the connection as fully closed.
func (c *Conn) MarkClosed() {
	c.advance(StateClosed)
}

// ForceClose advances the state to Closed and closes the transport.
// Used by the registry during forced shutdown; safe to call concurrently
// with the owning session's own close path.
func (c *Conn) ForceClose() error {
	if !c.advance(StateClosed) {
		return nil
	}
	return c.Transport.Close()
}
