package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/driftlab/wsrelay/internal/broadcast"
	"github.com/driftlab/wsrelay/internal/connection"
	"github.com/driftlab/wsrelay/internal/shutdown"
)

// Handler holds the shared components the HTTP surface reads from.
type Handler struct {
	Registry    *connection.Registry
	Broadcaster *broadcast.Broadcaster
	Shutdown    *shutdown.Coordinator
	Transport   connection.TransportConfig
	Logger      *slog.Logger
}

// NewHandler wires the HTTP surface.
func NewHandler(registry *connection.Registry, broadcaster *broadcast.Broadcaster, coordinator *shutdown.Coordinator, transport connection.TransportConfig, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Registry:    registry,
		Broadcaster: broadcaster,
		Shutdown:    coordinator,
		Transport:   transport,
		Logger:      logger.With("component", "api"),
	}
}

// healthResponse is the read-only status report.
type healthResponse struct {
	Status             string `json:"status"`
	ActiveConnections  int    `json:"active_connections"`
	ShutdownInProgress bool   `json:"shutdown_in_progress"`
	Timestamp          string `json:"timestamp"`
}

// HandleHealth reports registry occupancy and shutdown progress.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:             "healthy",
		ActiveConnections:  h.Registry.Len(),
		ShutdownInProgress: h.Shutdown.ShutdownStarted(),
		Timestamp:          time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleIndex serves the embedded test client.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}
