package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Bigsy/mcpkit/mcp"
)

// Call sends a typed request and awaits its typed result. The method
// binding supplies both the wire method name and the result shape, so
// the call is fully type-checked: a fresh id is generated, a one-shot
// continuation is parked in the pending table before the frame is
// written, and the correlated reply is decoded into R.
//
// An error reply from the server surfaces as *ProtocolError. The
// returned id-bearing helpers (CallWithID) exist for callers that want
// to issue notifications/cancelled for an in-flight request.
func Call[P, R any](ctx context.Context, c *Client, method mcp.Method[P, R], params P) (*R, error) {
	res, _, err := CallWithID(ctx, c, method, params)
	return res, err
}

// CallWithID is Call, additionally returning the generated request id.
// After cancellation the continuation may still complete; it is
// discarded, not consumed, and the table entry is removed here.
func CallWithID[P, R any](ctx context.Context, c *Client, method mcp.Method[P, R], params P) (*R, mcp.RequestID, error) {
	id := mcp.NewRequestID()

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, id, fmt.Errorf("client: marshal %s params: %w", method.Name(), err)
	}

	frame, err := mcp.EncodeMessage(&mcp.Request{ID: id, Method: method.Name(), Params: raw})
	if err != nil {
		return nil, id, fmt.Errorf("client: encode %s request: %w", method.Name(), err)
	}

	ch := make(chan mcp.Message, 1)
	c.pending.Store(id, ch)

	if err := c.send(ctx, string(frame)); err != nil {
		c.pending.LoadAndDelete(id)
		return nil, id, err
	}

	select {
	case msg, ok := <-ch:
		if !ok {
			return nil, id, ErrTransportClosed
		}
		res, err := interpretReply[R](msg)
		return res, id, err

	case <-ctx.Done():
		c.pending.LoadAndDelete(id)
		return nil, id, ctx.Err()

	case <-c.done:
		return nil, id, ErrTransportClosed
	}
}

// interpretReply decodes the correlated message as a typed result.
func interpretReply[R any](msg mcp.Message) (*R, error) {
	switch m := msg.(type) {
	case *mcp.Response:
		var result R
		if err := json.Unmarshal(m.Result, &result); err != nil {
			return nil, &mcp.DecodeError{TypeName: fmt.Sprintf("%T", result), Err: err}
		}
		return &result, nil

	case *mcp.ErrorReply:
		return nil, &ProtocolError{Code: m.Err.Code, Message: m.Err.Message, Data: m.Err.Data}

	default:
		return nil, &mcp.MismatchedError{Actual: mcp.VariantName(msg), Target: "Response"}
	}
}

// Notify sends a typed notification. No reply is awaited.
func Notify[P any](ctx context.Context, c *Client, method mcp.NotificationMethod[P], params P) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("client: marshal %s params: %w", method.Name(), err)
	}
	frame, err := mcp.EncodeMessage(&mcp.Notification{Method: method.Name(), Params: raw})
	if err != nil {
		return fmt.Errorf("client: encode %s notification: %w", method.Name(), err)
	}
	return c.send(ctx, string(frame))
}

// SendResponse sends a pre-built success response, used when answering
// a server-initiated request. No reply is awaited.
func (c *Client) SendResponse(ctx context.Context, id mcp.RequestID, result any) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("client: marshal response result: %w", err)
	}
	frame, err := mcp.EncodeMessage(&mcp.Response{ID: id, Result: raw})
	if err != nil {
		return fmt.Errorf("client: encode response: %w", err)
	}
	return c.send(ctx, string(frame))
}

// SendErrorReply sends an error reply to a server-initiated request.
func (c *Client) SendErrorReply(ctx context.Context, id mcp.RequestID, code int, message string) error {
	frame, err := mcp.EncodeMessage(&mcp.ErrorReply{
		ID:  id,
		Err: mcp.ErrorObject{Code: code, Message: message},
	})
	if err != nil {
		return fmt.Errorf("client: encode error reply: %w", err)
	}
	return c.send(ctx, string(frame))
}

// Typed convenience wrappers over the method catalog.

// Ping checks the server is alive.
func (c *Client) Ping(ctx context.Context) error {
	_, err := Call(ctx, c, mcp.Ping, mcp.PingParams{})
	return err
}

// ListTools retrieves one page of the server's tool list.
func (c *Client) ListTools(ctx context.Context, params mcp.ListToolsParams) (*mcp.ListToolsResult, error) {
	return Call(ctx, c, mcp.ListTools, params)
}

// CallTool invokes a tool on the server.
func (c *Client) CallTool(ctx context.Context, params mcp.CallToolParams) (*mcp.CallToolResult, error) {
	return Call(ctx, c, mcp.CallTool, params)
}

// ListPrompts retrieves one page of the server's prompt list.
func (c *Client) ListPrompts(ctx context.Context, params mcp.ListPromptsParams) (*mcp.ListPromptsResult, error) {
	return Call(ctx, c, mcp.ListPrompts, params)
}

// GetPrompt fetches a prompt, optionally templated.
func (c *Client) GetPrompt(ctx context.Context, params mcp.GetPromptParams) (*mcp.GetPromptResult, error) {
	return Call(ctx, c, mcp.GetPrompt, params)
}

// ListResources retrieves one page of the server's resource list.
func (c *Client) ListResources(ctx context.Context, params mcp.ListResourcesParams) (*mcp.ListResourcesResult, error) {
	return Call(ctx, c, mcp.ListResources, params)
}

// ListResourceTemplates retrieves one page of the resource template
// list.
func (c *Client) ListResourceTemplates(ctx context.Context, params mcp.ListResourceTemplatesParams) (*mcp.ListResourceTemplatesResult, error) {
	return Call(ctx, c, mcp.ListResourceTemplates, params)
}

// ReadResource reads a resource by URI.
func (c *Client) ReadResource(ctx context.Context, params mcp.ReadResourceParams) (*mcp.ReadResourceResult, error) {
	return Call(ctx, c, mcp.ReadResource, params)
}

// Subscribe requests update notifications for a resource URI.
func (c *Client) Subscribe(ctx context.Context, uri string) error {
	_, err := Call(ctx, c, mcp.Subscribe, mcp.SubscribeParams{URI: uri})
	return err
}

// Unsubscribe cancels a resource subscription.
func (c *Client) Unsubscribe(ctx context.Context, uri string) error {
	_, err := Call(ctx, c, mcp.Unsubscribe, mcp.UnsubscribeParams{URI: uri})
	return err
}

// Complete asks the server for completion options.
func (c *Client) Complete(ctx context.Context, params mcp.CompleteParams) (*mcp.CompleteResult, error) {
	return Call(ctx, c, mcp.Complete, params)
}

// SetLogLevel adjusts the server's log notification level.
func (c *Client) SetLogLevel(ctx context.Context, level mcp.LoggingLevel) error {
	_, err := Call(ctx, c, mcp.SetLevel, mcp.SetLevelParams{Level: level})
	return err
}

// NotifyInitialized sends notifications/initialized, completing the
// handshake after Connect.
func (c *Client) NotifyInitialized(ctx context.Context) error {
	return Notify(ctx, c, mcp.Initialized, mcp.InitializedParams{})
}

// CancelRequest sends notifications/cancelled for an in-flight request
// id (as returned by CallWithID). The local waiter is not released
// pre-emptively; the caller abandons it via its own context.
func (c *Client) CancelRequest(ctx context.Context, id mcp.RequestID, reason string) error {
	return Notify(ctx, c, mcp.Cancelled, mcp.CancelledParams{RequestID: id, Reason: reason})
}

// NotifyProgress sends an out-of-band progress update.
func (c *Client) NotifyProgress(ctx context.Context, params mcp.ProgressParams) error {
	return Notify(ctx, c, mcp.Progress, params)
}

// NotifyRootsListChanged informs the server the client's roots
// changed.
func (c *Client) NotifyRootsListChanged(ctx context.Context) error {
	return Notify(ctx, c, mcp.RootsListChanged, mcp.ListChangedParams{})
}
