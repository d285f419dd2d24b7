package announce

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/driftlab/wsrelay/internal/broadcast"
	"github.com/driftlab/wsrelay/internal/connection"
)

const timestampFormat = "2006-01-02 15:04:05"

// Sender fans the announcement out to all clients.
type Sender interface {
	Broadcast(msg broadcast.Message) []string
}

// Announcer broadcasts a status message at a fixed interval until shutdown
// is signaled. The shutdown signal wins over a pending interval: no final
// broadcast is emitted.
type Announcer struct {
	interval time.Duration
	registry *connection.Registry
	sender   Sender
	signaled <-chan struct{}
	logger   *slog.Logger

	wg sync.WaitGroup
}

// New creates an Announcer. signaled is the shutdown coordinator's signal
// channel; it stops the announcer without affecting in-flight sessions.
func New(interval time.Duration, registry *connection.Registry, sender Sender, signaled <-chan struct{}, logger *slog.Logger) *Announcer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Announcer{
		interval: interval,
		registry: registry,
		sender:   sender,
		signaled: signaled,
		logger:   logger.With("component", "announcer"),
	}
}

// Start launches the announce loop in the background.
func (a *Announcer) Start(ctx context.Context) error {
	a.wg.Add(1)
	go a.run(ctx)
	a.logger.Info("periodic announcer started", "interval", a.interval)
	return nil
}

// Stop waits for the loop to exit.
func (a *Announcer) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Announcer) run(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.signaled:
			a.logger.Info("periodic announcer stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.announce()
		}
	}
}

func (a *Announcer) announce() {
	active := a.registry.Len()
	if active == 0 {
		return
	}

	failed := a.sender.Broadcast(broadcast.Message{
		Payload:   fmt.Sprintf("Periodic broadcast [%s]: active clients: %d", time.Now().Format(timestampFormat), active),
		Broadcast: true,
	})

	a.logger.Debug("periodic broadcast sent", "active", active, "failed", len(failed))
}
