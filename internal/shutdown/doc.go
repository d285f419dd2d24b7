// Package shutdown implements the coordinated drain-then-terminate protocol.
//
// The Coordinator:
//   - consumes a single termination signal (idempotent, raised once)
//   - warns connected clients, then waits for them to disconnect
//   - forces closure of whatever remains once the drain timeout elapses
//   - exposes the signal and terminal states to the rest of the process
package shutdown
