// Package session implements the per-connection control loop.
//
// A Session:
//   - rejects the connection outright once shutdown has been signaled
//   - registers the connection, greets the client, announces the join
//   - relays inbound messages to every other client
//   - deregisters exactly once on every exit path, then announces the leave
package session
