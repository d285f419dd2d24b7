// Package broadcast implements best-effort message fan-out.
//
// The Broadcaster:
//   - takes a registry snapshot, then sends with no lock held
//   - isolates per-recipient failures; one dead client never blocks the rest
//   - evicts clients whose transport rejected the send
package broadcast
