package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Bigsy/mcpkit/mcp"
)

// SamplingHandler performs LLM sampling on the server's behalf. It is
// called from the client's single server-request goroutine, one
// request at a time; a handler that blocks delays later server
// requests.
type SamplingHandler func(ctx context.Context, params *mcp.CreateMessageParams) (*mcp.CreateMessageResult, error)

// RegisterSamplingHandler installs the handler invoked for
// sampling/createMessage requests. Only one handler is installed at a
// time; a later registration replaces the earlier one without
// affecting in-flight invocations. Registering before Connect also
// advertises the sampling capability in the handshake.
func (c *Client) RegisterSamplingHandler(h SamplingHandler) {
	c.sampling.Store(&h)
}

// handleServerRequest answers one server-initiated request. Only
// sampling/createMessage is routed to the handler; anything else gets
// a method-not-found reply. Handler failures become error replies to
// the server, never client-visible errors.
func (c *Client) handleServerRequest(ctx context.Context, req *mcp.Request) {
	reply := func(send func() error) {
		if err := send(); err != nil {
			c.log.Warn().Err(err).Stringer("id", req.ID).Msg("failed to send server-request reply")
		}
	}

	if req.Method != mcp.CreateMessage.Name() {
		c.log.Warn().Str("method", req.Method).Stringer("id", req.ID).Msg("unsupported server request")
		reply(func() error {
			return c.SendErrorReply(ctx, req.ID, mcp.CodeMethodNotFound,
				fmt.Sprintf("method %q is not supported by this client", req.Method))
		})
		return
	}

	var params mcp.CreateMessageParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		reply(func() error {
			return c.SendErrorReply(ctx, req.ID, mcp.CodeInvalidParams,
				fmt.Sprintf("invalid sampling/createMessage params: %v", err))
		})
		return
	}

	handler := c.sampling.Load()
	if handler == nil {
		reply(func() error {
			return c.SendErrorReply(ctx, req.ID, mcp.CodeMethodNotFound,
				"no sampling handler registered")
		})
		return
	}

	result, err := (*handler)(ctx, &params)
	if err != nil {
		reply(func() error {
			return c.SendErrorReply(ctx, req.ID, mcp.CodeInternalError, err.Error())
		})
		return
	}

	reply(func() error {
		return c.SendResponse(ctx, req.ID, result)
	})
}
