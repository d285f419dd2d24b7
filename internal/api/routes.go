package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the chi router for the relay.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", h.HandleIndex)
	r.Get("/health", h.HandleHealth)
	r.Get("/ws", h.HandleWS)
	r.Get("/ws/{clientID}", h.HandleWS)

	return r
}
