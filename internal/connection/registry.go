package connection

import (
	"log/slog"
	"sync"
)

// Registry tracks all currently connected clients.
//
// All map access happens under a single mutex. The lock is held only for
// map mutation and copying, never across network I/O: callers that need to
// iterate take a Snapshot and work on the copy.
type Registry struct {
	logger *slog.Logger

	mu    sync.Mutex
	conns map[string]*Conn
}

// CloseResult is the per-connection outcome of ForceCloseAll.
type CloseResult struct {
	ID  string
	Err error
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger: logger.With("component", "registry"),
		conns:  make(map[string]*Conn),
	}
}

// Add registers a connection. A second connection with the id of a live
// entry is rejected with ErrDuplicateClient; the existing entry is untouched.
func (r *Registry) Add(c *Conn) error {
	r.mu.Lock()
	if _, exists := r.conns[c.ID]; exists {
		r.mu.Unlock()
		return ErrDuplicateClient
	}
	r.conns[c.ID] = c
	total := len(r.conns)
	r.mu.Unlock()

	r.logger.Info("client connected", "client_id", c.ID, "active", total)
	return nil
}

// Remove deregisters a connection by id. Removing an id that is not
// present is a no-op and returns false.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	_, exists := r.conns[id]
	if exists {
		delete(r.conns, id)
	}
	remaining := len(r.conns)
	r.mu.Unlock()

	if exists {
		r.logger.Info("client disconnected", "client_id", id, "active", remaining)
	}
	return exists
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// Snapshot returns a point-in-time copy of the registered connections,
// safe to iterate without holding the registry lock.
func (r *Registry) Snapshot() []*Conn {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Conn, 0, len(r.conns))
	for _, c := range r.conns {
		out = append(out, c)
	}
	return out
}

// ForceCloseAll closes the transport of every registered connection and
// reports the per-id outcome. Entries are not removed here: each session's
// cleanup path deregisters itself when its read loop observes the closed
// transport, so removal stays single-writer.
func (r *Registry) ForceCloseAll() []CloseResult {
	snapshot := r.Snapshot()

	results := make([]CloseResult, 0, len(snapshot))
	for _, c := range snapshot {
		err := c.ForceClose()
		if err != nil {
			r.logger.Error("failed to close connection", "client_id", c.ID, "error", err)
		}
		results = append(results, CloseResult{ID: c.ID, Err: err})
	}
	return results
}
