package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultListenAddr        = ":8000"
	DefaultShutdownTimeout   = 30 * time.Minute
	DefaultDrainTick         = 1 * time.Second
	DefaultLogInterval       = 10 * time.Second
	DefaultBroadcastInterval = 10 * time.Second
	DefaultWriteTimeout      = 5 * time.Second
	DefaultPingInterval      = 15 * time.Second
	DefaultPongTimeout       = 60 * time.Second
	DefaultMaxMessageBytes   = 64 * 1024
)

// Default returns a fully defaulted configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}

	if c.Shutdown.Timeout == 0 {
		c.Shutdown.Timeout = DefaultShutdownTimeout
	}
	if c.Shutdown.DrainTick == 0 {
		c.Shutdown.DrainTick = DefaultDrainTick
	}
	if c.Shutdown.LogInterval == 0 {
		c.Shutdown.LogInterval = DefaultLogInterval
	}

	if c.Broadcast.Interval == 0 {
		c.Broadcast.Interval = DefaultBroadcastInterval
	}

	if c.Connection.WriteTimeout == 0 {
		c.Connection.WriteTimeout = DefaultWriteTimeout
	}
	if c.Connection.PingInterval == 0 {
		c.Connection.PingInterval = DefaultPingInterval
	}
	if c.Connection.PongTimeout == 0 {
		c.Connection.PongTimeout = DefaultPongTimeout
	}
	if c.Connection.MaxMessageBytes == 0 {
		c.Connection.MaxMessageBytes = DefaultMaxMessageBytes
	}
}
