package config

import "time"

// Config is the root configuration for a relayd instance.
type Config struct {
	ListenAddr string          `yaml:"listen_addr"`
	Shutdown   ShutdownConfig  `yaml:"shutdown"`
	Broadcast  BroadcastConfig `yaml:"broadcast"`
	Connection ConnConfig      `yaml:"connection"`
}

// ShutdownConfig holds drain timing.
type ShutdownConfig struct {
	Timeout     time.Duration `yaml:"timeout"`      // Max drain duration before forced close
	DrainTick   time.Duration `yaml:"drain_tick"`   // Occupancy poll interval
	LogInterval time.Duration `yaml:"log_interval"` // Drain progress log interval
}

// BroadcastConfig holds periodic announcer settings.
type BroadcastConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// ConnConfig holds per-connection transport settings.
type ConnConfig struct {
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	PingInterval    time.Duration `yaml:"ping_interval"`
	PongTimeout     time.Duration `yaml:"pong_timeout"`
	MaxMessageBytes int64         `yaml:"max_message_bytes"`
}
