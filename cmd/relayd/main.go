package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driftlab/wsrelay/internal/announce"
	"github.com/driftlab/wsrelay/internal/api"
	"github.com/driftlab/wsrelay/internal/broadcast"
	"github.com/driftlab/wsrelay/internal/config"
	"github.com/driftlab/wsrelay/internal/connection"
	"github.com/driftlab/wsrelay/internal/shutdown"
	"github.com/driftlab/wsrelay/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// Set up structured logging
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting relayd",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadAndValidate(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Core components: one registry and one coordinator per process.
	registry := connection.NewRegistry(logger)
	broadcaster := broadcast.New(registry, logger)

	coordinator := shutdown.NewCoordinator(shutdown.Config{
		Timeout:     cfg.Shutdown.Timeout,
		DrainTick:   cfg.Shutdown.DrainTick,
		LogInterval: cfg.Shutdown.LogInterval,
	}, registry, broadcaster, logger)
	coordinator.Start(ctx)

	announcer := announce.New(cfg.Broadcast.Interval, registry, broadcaster, coordinator.Signaled(), logger)
	announcer.Start(ctx)

	handler := api.NewHandler(registry, broadcaster, coordinator, connection.TransportConfig{
		WriteTimeout:    cfg.Connection.WriteTimeout,
		PingInterval:    cfg.Connection.PingInterval,
		PongTimeout:     cfg.Connection.PongTimeout,
		MaxMessageBytes: cfg.Connection.MaxMessageBytes,
	}, logger)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.Routes(handler),
	}

	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			coordinator.Signal()
		}
	}()

	// SIGINT and SIGTERM both map to the same shutdown signal; repeats are
	// consumed and ignored by the coordinator.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for sig := range sigCh {
			logger.Info("received shutdown signal", "signal", sig)
			coordinator.Signal()
		}
	}()

	// The coordinator owns termination: it drains connected clients and
	// forces closure once the timeout elapses.
	<-coordinator.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", "error", err)
	}
	if err := announcer.Stop(shutdownCtx); err != nil {
		logger.Warn("announcer shutdown", "error", err)
	}

	logger.Info("relayd stopped")
}
