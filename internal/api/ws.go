package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/driftlab/wsrelay/internal/connection"
	"github.com/driftlab/wsrelay/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and runs the connection's session to
// completion. The client id comes from the URL, or is assigned when the
// client connects to the bare /ws endpoint.
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", "client_id", clientID, "error", err)
		return
	}

	transport := connection.NewWSTransport(wsConn, h.Transport)
	conn := connection.NewConn(clientID, transport)

	sess := session.New(conn, h.Registry, h.Broadcaster, h.Shutdown, h.Logger)
	err = sess.Run()

	switch {
	case errors.Is(err, session.ErrRejectedShutdown):
		closeWithStatus(wsConn, websocket.CloseGoingAway, "server shutting down")
	case errors.Is(err, connection.ErrDuplicateClient):
		closeWithStatus(wsConn, websocket.ClosePolicyViolation, "client id already in use")
	}
	transport.Close()
}

// closeWithStatus sends a close frame with a specific status before the
// transport is torn down, so rejected clients can tell why.
func closeWithStatus(conn *websocket.Conn, code int, reason string) {
	conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(time.Second),
	)
}
