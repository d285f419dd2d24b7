// Package connection implements connection tracking for the relay.
//
// The package provides:
//   - Transport: the bidirectional message channel a client talks over
//   - Conn: per-client state, owned by exactly one session
//   - Registry: the single source of truth for who is connected
//   - a gorilla/websocket Transport adapter
package connection
