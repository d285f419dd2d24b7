package shutdown

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/driftlab/wsrelay/internal/broadcast"
	"github.com/driftlab/wsrelay/internal/connection"
)

// State is the coordinator's lifecycle state. Transitions are strictly
// monotonic: Running -> Draining -> (ForcingClose ->) Terminated.
type State int32

const (
	StateRunning State = iota
	StateDraining
	StateForcingClose
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateForcingClose:
		return "forcing_close"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// WarningMessage is broadcast to all clients when draining begins.
const WarningMessage = "NOTICE: the server is shutting down. " +
	"Please finish your work and disconnect; remaining connections will be closed when the drain timeout expires."

// Config holds drain timing.
type Config struct {
	Timeout     time.Duration // Max drain duration before forced close (default: 30m)
	DrainTick   time.Duration // Occupancy poll interval (default: 1s)
	LogInterval time.Duration // Progress log interval (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:     30 * time.Minute,
		DrainTick:   time.Second,
		LogInterval: 10 * time.Second,
	}
}

// Broadcaster delivers the shutdown warning.
type Broadcaster interface {
	Broadcast(msg broadcast.Message) []string
}

// Coordinator turns a termination signal into a bounded drain.
type Coordinator struct {
	cfg         Config
	registry    *connection.Registry
	broadcaster Broadcaster
	logger      *slog.Logger

	state    atomic.Int32
	sigOnce  sync.Once
	signaled chan struct{}
	done     chan struct{}
}

// NewCoordinator creates a Coordinator. It does nothing until Start.
func NewCoordinator(cfg Config, registry *connection.Registry, broadcaster Broadcaster, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DrainTick <= 0 {
		cfg.DrainTick = time.Second
	}
	return &Coordinator{
		cfg:         cfg,
		registry:    registry,
		broadcaster: broadcaster,
		logger:      logger.With("component", "shutdown"),
		signaled:    make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start launches the drain loop in the background.
func (c *Coordinator) Start(ctx context.Context) error {
	go c.run(ctx)
	return nil
}

// Signal raises the termination signal. The first call flips the state to
// Draining; every later call is ignored.
func (c *Coordinator) Signal() {
	raised := false
	c.sigOnce.Do(func() {
		raised = true
		close(c.signaled)
	})
	if !raised {
		c.logger.Warn("repeated shutdown signal ignored", "state", c.State())
	}
}

// Signaled returns a channel closed once the termination signal is raised.
func (c *Coordinator) Signaled() <-chan struct{} {
	return c.signaled
}

// ShutdownStarted reports whether the termination signal has been raised.
func (c *Coordinator) ShutdownStarted() bool {
	select {
	case <-c.signaled:
		return true
	default:
		return false
	}
}

// Done returns a channel closed once the coordinator reaches Terminated.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// advance moves the state forward; backward transitions are ignored.
func (c *Coordinator) advance(s State) {
	for {
		cur := c.state.Load()
		if State(cur) >= s {
			return
		}
		if c.state.CompareAndSwap(cur, int32(s)) {
			return
		}
	}
}

// run waits for the signal and drives the drain.
func (c *Coordinator) run(ctx context.Context) {
	select {
	case <-c.signaled:
	case <-ctx.Done():
		// Context cancellation maps to the same signal event.
		c.Signal()
		<-c.signaled
	}

	c.advance(StateDraining)
	start := time.Now()

	// Fast path: nothing to drain.
	if c.registry.Len() == 0 {
		c.logger.Info("no active connections, terminating immediately")
		c.terminate()
		return
	}

	active := c.registry.Len()
	c.logger.Info("drain started",
		"active", active,
		"timeout", c.cfg.Timeout,
	)

	// Best effort: a failed send means the client is already gone.
	c.broadcaster.Broadcast(broadcast.Message{Payload: WarningMessage, Broadcast: true})

	ticker := time.NewTicker(c.cfg.DrainTick)
	defer ticker.Stop()

	lastLog := start
	for {
		<-ticker.C

		if c.registry.Len() == 0 {
			c.logger.Info("all clients disconnected", "elapsed", time.Since(start))
			c.terminate()
			return
		}

		elapsed := time.Since(start)
		if elapsed >= c.cfg.Timeout {
			c.forceClose(elapsed)
			c.terminate()
			return
		}

		if time.Since(lastLog) >= c.cfg.LogInterval {
			c.logger.Info("draining",
				"active", c.registry.Len(),
				"elapsed", elapsed.Round(time.Second),
				"remaining", (c.cfg.Timeout - elapsed).Round(time.Second),
			)
			lastLog = time.Now()
		}
	}
}

// forceClose closes every remaining connection after the drain timeout.
func (c *Coordinator) forceClose(elapsed time.Duration) {
	c.advance(StateForcingClose)

	results := c.registry.ForceCloseAll()
	var failures int
	for _, res := range results {
		if res.Err != nil {
			failures++
		}
	}

	c.logger.Warn("drain timeout reached, forced close",
		"timeout", c.cfg.Timeout,
		"elapsed", elapsed.Round(time.Second),
		"remaining", len(results),
		"close_failures", failures,
	)
}

// terminate marks the coordinator final. The process is now safe to exit.
func (c *Coordinator) terminate() {
	c.advance(StateTerminated)
	c.logger.Info("shutdown complete")
	close(c.done)
}
