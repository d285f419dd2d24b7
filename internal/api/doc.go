// Package api implements the HTTP surface of the relay.
//
// Routes:
//   - GET /            embedded HTML test client
//   - GET /health      read-only status report
//   - GET /ws          WebSocket endpoint, server-assigned client id
//   - GET /ws/{clientID} WebSocket endpoint, caller-supplied client id
package api
