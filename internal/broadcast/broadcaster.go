package broadcast

import (
	"log/slog"

	"github.com/driftlab/wsrelay/internal/connection"
)

// Message is a single payload to deliver.
type Message struct {
	Payload   string // Message text
	Origin    string // Originating client id, excluded from fan-out ("" for server messages)
	Broadcast bool   // Fan-out to all clients vs point-to-point
}

// Broadcaster fans messages out to every registered connection.
type Broadcaster struct {
	registry *connection.Registry
	logger   *slog.Logger
}

// New creates a Broadcaster over the given registry.
func New(registry *connection.Registry, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		registry: registry,
		logger:   logger.With("component", "broadcaster"),
	}
}

// Broadcast delivers msg to every connection in the current snapshot,
// skipping the origin. Each recipient is attempted independently; failed
// ids are returned. A failed send means a dead transport, so failed
// connections are closed and removed from the registry.
func (b *Broadcaster) Broadcast(msg Message) []string {
	snapshot := b.registry.Snapshot()

	var failed []string
	for _, c := range snapshot {
		if msg.Origin != "" && c.ID == msg.Origin {
			continue
		}
		if err := c.Transport.Send(msg.Payload); err != nil {
			b.logger.Warn("send failed", "client_id", c.ID, "error", err)
			failed = append(failed, c.ID)
		}
	}

	for _, id := range failed {
		b.evict(id, snapshot)
	}
	return failed
}

// evict closes and deregisters a connection whose transport failed.
// The session's own cleanup may race with this; both paths are idempotent.
func (b *Broadcaster) evict(id string, snapshot []*connection.Conn) {
	for _, c := range snapshot {
		if c.ID == id {
			c.ForceClose()
			break
		}
	}
	b.registry.Remove(id)
}
