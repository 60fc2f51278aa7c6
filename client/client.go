// Package client implements the MCP client core: the pending-reply
// correlation table, the inbound demultiplexer, the initialize
// handshake, typed request/notification sends, and routing of
// server-initiated sampling requests to a registered handler.
package client

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Bigsy/mcpkit/comm"
	"github.com/Bigsy/mcpkit/mcp"
	"github.com/Bigsy/mcpkit/transport"
)

type connState int

const (
	stateFresh connState = iota
	stateConnected
	stateClosed
)

// Client is an MCP client. It is safe to share across goroutines; all
// methods may be called concurrently once Connect has returned.
//
// A client connects exactly once. Closing it terminates the session
// (killing a stdio child if any) and releases every pending waiter
// with ErrTransportClosed; a closed client is discarded.
type Client struct {
	name    string
	version string
	caps    mcp.ClientCapabilities
	log     zerolog.Logger

	mu        sync.Mutex
	state     connState
	transport transport.Transport
	out       chan<- string
	cancel    context.CancelFunc

	// pending maps in-flight request ids to their one-shot reply
	// channels. Many senders insert; the inbound demultiplexer
	// removes.
	pending sync.Map // mcp.RequestID -> chan mcp.Message

	sampling   atomic.Pointer[SamplingHandler]
	serverReqs chan *mcp.Request

	done     chan struct{}
	doneOnce sync.Once

	serverInfo      mcp.Implementation
	serverCaps      mcp.ServerCapabilities
	protocolVersion string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for connection diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// WithCapabilities sets the capabilities advertised during the
// handshake. Registering a sampling handler before Connect implies the
// sampling capability regardless.
func WithCapabilities(caps mcp.ClientCapabilities) Option {
	return func(c *Client) { c.caps = caps }
}

// New creates a client identifying itself with the given name and
// version during the initialize handshake.
func New(name, version string, opts ...Option) *Client {
	c := &Client{
		name:       name,
		version:    version,
		log:        log.Logger,
		serverReqs: make(chan *mcp.Request, comm.BufferSize),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the client name sent in clientInfo.
func (c *Client) Name() string { return c.name }

// Version returns the client version sent in clientInfo.
func (c *Client) Version() string { return c.version }

// ServerInfo returns the server identity recorded at Connect.
func (c *Client) ServerInfo() mcp.Implementation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverInfo
}

// ServerCapabilities returns the capabilities the server advertised.
func (c *Client) ServerCapabilities() mcp.ServerCapabilities {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverCaps
}

// ProtocolVersion returns the protocol version the server confirmed.
func (c *Client) ProtocolVersion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.protocolVersion
}

// Connect starts the transport, launches the demultiplexer tasks, and
// performs the initialize handshake. The returned result carries the
// server's identity, capabilities, and protocol version.
//
// Sending notifications/initialized afterwards is the caller's
// responsibility; NotifyInitialized is the one-line helper for it.
func (c *Client) Connect(ctx context.Context, tr transport.Transport) (*mcp.InitializeResult, error) {
	c.mu.Lock()
	if c.state != stateFresh {
		c.mu.Unlock()
		return nil, ErrAlreadyConnected
	}

	clientEnd, transportEnd := comm.New()

	runCtx, cancel := context.WithCancel(context.Background())
	if err := tr.Start(runCtx, transportEnd); err != nil {
		cancel()
		c.mu.Unlock()
		return nil, err
	}

	c.state = stateConnected
	c.transport = tr
	c.out = clientEnd.C2S
	c.cancel = cancel

	if c.sampling.Load() != nil {
		c.caps.Sampling = true
	}
	initParams := mcp.InitializeParams{
		ProtocolVersion: mcp.LatestProtocolVersion,
		Capabilities:    c.caps,
		ClientInfo:      mcp.Implementation{Name: c.name, Version: c.version},
	}
	c.mu.Unlock()

	go c.readInbound(clientEnd.S2C)
	go c.consumeServerRequests(runCtx)
	go c.drainAux(clientEnd.Aux)

	res, err := Call(ctx, c, mcp.Initialize, initParams)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.mu.Lock()
	c.serverInfo = res.ServerInfo
	c.serverCaps = res.Capabilities
	c.protocolVersion = res.ProtocolVersion
	c.mu.Unlock()

	c.log.Debug().
		Str("server", res.ServerInfo.Name).
		Str("protocol_version", res.ProtocolVersion).
		Msg("connected")
	return res, nil
}

// Close terminates the session. It is idempotent and safe to call
// from any goroutine.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.state == stateClosed {
		c.mu.Unlock()
		return nil
	}
	prev := c.state
	c.state = stateClosed
	tr := c.transport
	cancel := c.cancel
	c.mu.Unlock()

	if prev != stateConnected {
		c.terminate()
		return nil
	}

	if cancel != nil {
		cancel()
	}
	var err error
	if tr != nil {
		err = tr.Close()
	}
	c.terminate()
	return err
}

// terminate releases every waiter: outstanding pending entries are
// drained and complete with ErrTransportClosed (their channels close
// without a value).
func (c *Client) terminate() {
	c.doneOnce.Do(func() {
		c.mu.Lock()
		c.state = stateClosed
		c.mu.Unlock()

		close(c.done)
		c.pending.Range(func(key, value any) bool {
			if _, loaded := c.pending.LoadAndDelete(key); loaded {
				close(value.(chan mcp.Message))
			}
			return true
		})
	})
}

// readInbound is the inbound demultiplexer: it decodes each frame from
// the server-to-client channel and dispatches by variant. A decode
// failure drops the frame and keeps the stream alive. When the channel
// closes, all pending waiters are released.
func (c *Client) readInbound(s2c <-chan string) {
	defer c.terminate()

	for frame := range s2c {
		msg, err := mcp.ParseMessage([]byte(frame))
		if err != nil {
			c.log.Warn().
				Err(err).
				Str("payload", mcp.Truncate(frame, 256)).
				Msg("dropping undecodable frame")
			continue
		}

		switch m := msg.(type) {
		case *mcp.Response:
			c.deliver(m.ID, m)
		case *mcp.ErrorReply:
			c.deliver(m.ID, m)
		case *mcp.Request:
			select {
			case c.serverReqs <- m:
			case <-c.done:
				return
			}
		case *mcp.Notification:
			c.log.Info().
				Str("method", m.Method).
				Str("payload", mcp.Truncate(string(m.Params), 256)).
				Msg("server notification")
		}
	}
}

// deliver completes the pending entry for id with msg. A stale or
// duplicate id produces one diagnostic and is discarded.
func (c *Client) deliver(id mcp.RequestID, msg mcp.Message) {
	value, ok := c.pending.LoadAndDelete(id)
	if !ok {
		excerpt := ""
		if raw, err := mcp.EncodeMessage(msg); err == nil {
			excerpt = mcp.Truncate(string(raw), 256)
		}
		c.log.Warn().
			Stringer("id", id).
			Str("payload", excerpt).
			Msg("no pending request for inbound reply")
		return
	}

	ch := value.(chan mcp.Message)
	// One-shot, buffered: the send cannot block, and a waiter that
	// gave up simply never reads it.
	ch <- msg
}

// consumeServerRequests runs the server-initiated request pipeline.
func (c *Client) consumeServerRequests(ctx context.Context) {
	for {
		select {
		case req := <-c.serverReqs:
			c.handleServerRequest(ctx, req)
		case <-c.done:
			return
		}
	}
}

// drainAux forwards transport diagnostics (typically the child's
// stderr) to the logger.
func (c *Client) drainAux(aux <-chan string) {
	for line := range aux {
		c.log.Info().Str("source", "server-stderr").Msg(line)
	}
}

// send writes an encoded frame to the client-to-server channel.
func (c *Client) send(ctx context.Context, frame string) error {
	c.mu.Lock()
	state := c.state
	out := c.out
	c.mu.Unlock()

	switch state {
	case stateFresh:
		return ErrNotConnected
	case stateClosed:
		return ErrTransportClosed
	}

	select {
	case out <- frame:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrTransportClosed
	}
}
