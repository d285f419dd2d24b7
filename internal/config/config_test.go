package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relayd.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
listen_addr: ":9100"
connection:
  max_message_bytes: 4096
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":9100" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9100")
	}
	if cfg.Connection.MaxMessageBytes != 4096 {
		t.Errorf("MaxMessageBytes = %d, want 4096", cfg.Connection.MaxMessageBytes)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("RELAYD_ADDR", ":7777")

	yaml := `
listen_addr: "${RELAYD_ADDR}"
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":7777" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":7777")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, `listen_addr: ":9100"`)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Shutdown.Timeout != DefaultShutdownTimeout {
		t.Errorf("Shutdown.Timeout = %v, want %v", cfg.Shutdown.Timeout, DefaultShutdownTimeout)
	}
	if cfg.Shutdown.DrainTick != DefaultDrainTick {
		t.Errorf("Shutdown.DrainTick = %v, want %v", cfg.Shutdown.DrainTick, DefaultDrainTick)
	}
	if cfg.Broadcast.Interval != DefaultBroadcastInterval {
		t.Errorf("Broadcast.Interval = %v, want %v", cfg.Broadcast.Interval, DefaultBroadcastInterval)
	}
	if cfg.Connection.PongTimeout != DefaultPongTimeout {
		t.Errorf("Connection.PongTimeout = %v, want %v", cfg.Connection.PongTimeout, DefaultPongTimeout)
	}
	// Explicit values survive defaulting.
	if cfg.ListenAddr != ":9100" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9100")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, DefaultListenAddr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing listen addr",
			mutate:  func(c *Config) { c.ListenAddr = "" },
			wantErr: "listen_addr",
		},
		{
			name:    "negative shutdown timeout",
			mutate:  func(c *Config) { c.Shutdown.Timeout = -time.Second },
			wantErr: "shutdown.timeout",
		},
		{
			name: "drain tick exceeds timeout",
			mutate: func(c *Config) {
				c.Shutdown.Timeout = time.Second
				c.Shutdown.DrainTick = 2 * time.Second
			},
			wantErr: "drain_tick",
		},
		{
			name:    "zero broadcast interval",
			mutate:  func(c *Config) { c.Broadcast.Interval = 0 },
			wantErr: "broadcast.interval",
		},
		{
			name: "pong timeout below ping interval",
			mutate: func(c *Config) {
				c.Connection.PingInterval = time.Minute
				c.Connection.PongTimeout = time.Second
			},
			wantErr: "pong_timeout",
		},
		{
			name:    "zero max message bytes",
			mutate:  func(c *Config) { c.Connection.MaxMessageBytes = -1 },
			wantErr: "max_message_bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
