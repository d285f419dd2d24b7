package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr is required")
	}

	if c.Shutdown.Timeout <= 0 {
		return fmt.Errorf("shutdown.timeout must be positive, got %v", c.Shutdown.Timeout)
	}
	if c.Shutdown.DrainTick <= 0 {
		return fmt.Errorf("shutdown.drain_tick must be positive, got %v", c.Shutdown.DrainTick)
	}
	if c.Shutdown.LogInterval <= 0 {
		return fmt.Errorf("shutdown.log_interval must be positive, got %v", c.Shutdown.LogInterval)
	}
	if c.Shutdown.DrainTick > c.Shutdown.Timeout {
		return fmt.Errorf("shutdown.drain_tick (%v) exceeds shutdown.timeout (%v)", c.Shutdown.DrainTick, c.Shutdown.Timeout)
	}

	if c.Broadcast.Interval <= 0 {
		return fmt.Errorf("broadcast.interval must be positive, got %v", c.Broadcast.Interval)
	}

	if c.Connection.WriteTimeout <= 0 {
		return fmt.Errorf("connection.write_timeout must be positive, got %v", c.Connection.WriteTimeout)
	}
	if c.Connection.PingInterval <= 0 {
		return fmt.Errorf("connection.ping_interval must be positive, got %v", c.Connection.PingInterval)
	}
	if c.Connection.PongTimeout <= c.Connection.PingInterval {
		return fmt.Errorf("connection.pong_timeout (%v) must exceed connection.ping_interval (%v)",
			c.Connection.PongTimeout, c.Connection.PingInterval)
	}
	if c.Connection.MaxMessageBytes <= 0 {
		return fmt.Errorf("connection.max_message_bytes must be positive, got %d", c.Connection.MaxMessageBytes)
	}

	return nil
}
