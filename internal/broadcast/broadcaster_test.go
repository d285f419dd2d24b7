package broadcast

import (
	"errors"
	"sync"
	"testing"

	"github.com/driftlab/wsrelay/internal/connection"
)

// fakeTransport records sends and can be made to fail.
type fakeTransport struct {
	mu      sync.Mutex
	sent    []string
	sendErr error
	closed  bool
}

func (f *fakeTransport) Send(msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeTransport) Receive() (string, error) {
	return "", connection.ErrPeerClosed
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeTransport) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeTransport) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestBroadcaster_DeliversToAll(t *testing.T) {
	registry := connection.NewRegistry(nil)
	b := New(registry, nil)

	transports := map[string]*fakeTransport{}
	for _, id := range []string{"a", "b", "c"} {
		ft := &fakeTransport{}
		transports[id] = ft
		if err := registry.Add(connection.NewConn(id, ft)); err != nil {
			t.Fatalf("Add(%q) failed: %v", id, err)
		}
	}

	failed := b.Broadcast(Message{Payload: "hi", Broadcast: true})
	if len(failed) != 0 {
		t.Errorf("failed = %v, want none", failed)
	}

	for id, ft := range transports {
		got := ft.messages()
		if len(got) != 1 || got[0] != "hi" {
			t.Errorf("client %q received %v, want [hi]", id, got)
		}
	}

	if got := registry.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestBroadcaster_SkipsOrigin(t *testing.T) {
	registry := connection.NewRegistry(nil)
	b := New(registry, nil)

	origin := &fakeTransport{}
	other := &fakeTransport{}
	registry.Add(connection.NewConn("origin", origin))
	registry.Add(connection.NewConn("other", other))

	b.Broadcast(Message{Payload: "relay", Origin: "origin", Broadcast: true})

	if got := origin.messages(); len(got) != 0 {
		t.Errorf("origin received %v, want none", got)
	}
	if got := other.messages(); len(got) != 1 || got[0] != "relay" {
		t.Errorf("other received %v, want [relay]", got)
	}
}

func TestBroadcaster_EvictsFailedClients(t *testing.T) {
	registry := connection.NewRegistry(nil)
	b := New(registry, nil)

	healthy := &fakeTransport{}
	dead := &fakeTransport{sendErr: errors.New("broken pipe")}
	registry.Add(connection.NewConn("healthy", healthy))
	registry.Add(connection.NewConn("dead", dead))

	failed := b.Broadcast(Message{Payload: "hi", Broadcast: true})

	if len(failed) != 1 || failed[0] != "dead" {
		t.Fatalf("failed = %v, want [dead]", failed)
	}

	// The healthy client still got the message.
	if got := healthy.messages(); len(got) != 1 {
		t.Errorf("healthy received %v, want one message", got)
	}

	// The dead client is closed and gone from the registry.
	if !dead.isClosed() {
		t.Error("dead transport not closed")
	}
	if got := registry.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}

	// Later broadcasts no longer attempt the evicted client.
	failed = b.Broadcast(Message{Payload: "again", Broadcast: true})
	if len(failed) != 0 {
		t.Errorf("failed = %v, want none", failed)
	}
}

func TestBroadcaster_EmptyRegistry(t *testing.T) {
	registry := connection.NewRegistry(nil)
	b := New(registry, nil)

	if failed := b.Broadcast(Message{Payload: "hi", Broadcast: true}); len(failed) != 0 {
		t.Errorf("failed = %v, want none", failed)
	}
}
