package transport

import (
	"context"
	"testing"
	"time"

	"github.com/Bigsy/mcpkit/comm"
)

// startCat spawns `cat`, which echoes every frame back, giving a
// loopback over real child pipes.
func startCat(t *testing.T) (*StdioTransport, comm.ClientEnd) {
	t.Helper()

	tr := NewStdio(StdioConfig{Command: "cat"})
	clientEnd, transportEnd := comm.New()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if err := tr.Start(ctx, transportEnd); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { _ = tr.Close() })
	return tr, clientEnd
}

func recvWithTimeout(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("channel closed unexpectedly")
		}
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
		return ""
	}
}

func TestStdio_RoundTrip(t *testing.T) {
	_, clientEnd := startCat(t)

	clientEnd.C2S <- `{"jsonrpc":"2.0","id":1,"method":"ping"}`
	got := recvWithTimeout(t, clientEnd.S2C)
	if got != `{"jsonrpc":"2.0","id":1,"method":"ping"}` {
		t.Errorf("unexpected echo: %q", got)
	}
}

func TestStdio_PreservesFrameOrder(t *testing.T) {
	_, clientEnd := startCat(t)

	frames := []string{`{"id":1}`, `{"id":2}`, `{"id":3}`}
	for _, f := range frames {
		clientEnd.C2S <- f
	}
	for i, want := range frames {
		if got := recvWithTimeout(t, clientEnd.S2C); got != want {
			t.Errorf("frame %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestStdio_CloseTerminatesStreams(t *testing.T) {
	tr, clientEnd := startCat(t)

	if err := tr.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// The child is dead, so the inbound S2C channel must terminate.
	deadline := time.After(5 * time.Second)
	for open := true; open; {
		select {
		case _, ok := <-clientEnd.S2C:
			open = ok
		case <-deadline:
			t.Fatal("S2C did not close after Close")
		}
	}

	if err := tr.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

func TestStdio_SpawnFailure(t *testing.T) {
	tr := NewStdio(StdioConfig{Command: "/nonexistent-binary-for-test"})
	_, transportEnd := comm.New()

	if err := tr.Start(context.Background(), transportEnd); err == nil {
		t.Fatal("expected spawn failure")
	}
}
