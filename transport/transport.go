// Package transport implements the pluggable byte movers that connect
// a client to an MCP server: a child-process stdio transport and a
// streaming HTTP transport. Transports never parse MCP semantics; they
// shuttle UTF-8 frames between the communication fabric and the
// server.
package transport

import (
	"context"

	"github.com/Bigsy/mcpkit/comm"
)

// Transport is the uniform start contract. Start must return once
// setup succeeds; the transport owns its own goroutines for the
// duration of the connection. Close releases them and, for stdio,
// kills the child process. Close is idempotent.
type Transport interface {
	Start(ctx context.Context, end comm.TransportEnd) error
	Close() error
}
