// Package mcptest provides shared helpers for exercising the client
// against the in-process fake server without spawning a child.
package mcptest

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/Bigsy/mcpkit/comm"
	"github.com/Bigsy/mcpkit/internal/mcptest/fakeserver"
)

// PipeTransport satisfies the transport start contract while running
// fakeserver.Serve over in-memory pipes. The Done channel reports the
// server loop's exit error.
type PipeTransport struct {
	cfg  fakeserver.Config
	Done chan error

	mu      sync.Mutex
	closers []io.Closer
	cancel  context.CancelFunc
	closed  bool
}

// NewPipeTransport returns an unstarted pipe transport backed by the
// given fake server config.
func NewPipeTransport(cfg fakeserver.Config) *PipeTransport {
	return &PipeTransport{cfg: cfg, Done: make(chan error, 1)}
}

// Start wires the fabric to the fake server.
func (t *PipeTransport) Start(ctx context.Context, end comm.TransportEnd) error {
	// Client frames -> serverReader; server frames -> clientReader.
	serverReader, clientWriter := io.Pipe()
	clientReader, serverWriter := io.Pipe()

	runCtx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	t.cancel = cancel
	t.closers = []io.Closer{serverReader, clientWriter, clientReader, serverWriter}
	t.mu.Unlock()

	go func() {
		t.Done <- fakeserver.Serve(runCtx, serverReader, serverWriter, t.cfg)
		_ = serverWriter.Close()
	}()

	// Inbound: server output lines -> S2C.
	go func() {
		defer close(end.S2C)
		defer close(end.Aux)
		reader := bufio.NewReader(clientReader)
		for {
			line, err := reader.ReadString('\n')
			if len(line) > 0 && line != "\n" {
				trimmed := line
				for len(trimmed) > 0 && (trimmed[len(trimmed)-1] == '\n' || trimmed[len(trimmed)-1] == '\r') {
					trimmed = trimmed[:len(trimmed)-1]
				}
				select {
				case end.S2C <- trimmed:
				case <-runCtx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	// Outbound: C2S -> server input.
	go func() {
		defer clientWriter.Close()
		for {
			select {
			case frame, ok := <-end.C2S:
				if !ok {
					return
				}
				if _, err := io.WriteString(clientWriter, frame+"\n"); err != nil {
					return
				}
			case <-runCtx.Done():
				return
			}
		}
	}()

	return nil
}

// Close tears down the pipes and stops the server loop.
func (t *PipeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.cancel != nil {
		t.cancel()
	}
	for _, c := range t.closers {
		_ = c.Close()
	}
	return nil
}
