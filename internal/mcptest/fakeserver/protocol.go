// Package fakeserver provides a scripted in-process MCP server for
// testing. It speaks newline-delimited JSON-RPC over an io.Reader and
// io.Writer pair and covers the client-facing method set, including a
// sampling callback flow triggered by the sampleLLM tool.
package fakeserver

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Config controls the fake server's behavior.
type Config struct {
	// ServerName and ServerVersion are reported in the initialize
	// reply. Defaults: "example-servers/everything", "1.0.0".
	ServerName    string
	ServerVersion string

	// Tools returned from tools/list. Nil means EverythingTools().
	Tools []Tool

	// Prompts returned from prompts/list.
	Prompts []Prompt

	// Resources returned from resources/list.
	Resources []Resource

	// Delays adds a per-method pause before responding.
	// NOTE: keep these short (10-50ms) so the suite stays fast.
	Delays map[string]time.Duration

	// Errors forces a JSON-RPC error reply for a method.
	Errors map[string]JSONRPCError

	// GarbageBeforeResponse writes a non-JSON line before each
	// response, exercising the client's decode fault tolerance.
	GarbageBeforeResponse bool

	// SendNotificationBeforeResponse interleaves a notification
	// before each response.
	SendNotificationBeforeResponse bool

	// SendMismatchedIDFirst sends a response with an unknown id
	// before the real one.
	SendMismatchedIDFirst bool
}

// Tool is a tool definition served from tools/list.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	InputSchema any    `json:"inputSchema,omitempty"`
}

// Prompt is a prompt definition served from prompts/list.
type Prompt struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Resource is a resource definition served from resources/list.
type Resource struct {
	URI      string `json:"uri"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"-"`
}

// JSONRPCError is a JSON-RPC 2.0 error payload.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// frame is the generic inbound/outbound JSON-RPC object.
type frame struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// EverythingTools mirrors the tool set of the reference
// "example-servers/everything" server, in its listing order.
func EverythingTools() []Tool {
	names := []string{
		"echo", "add", "printEnv", "longRunningOperation",
		"sampleLLM", "getTinyImage", "annotatedMessage", "getResourceReference",
	}
	tools := make([]Tool, len(names))
	for i, name := range names {
		tools[i] = Tool{
			Name:        name,
			Description: fmt.Sprintf("The %s tool", name),
			InputSchema: map[string]any{"type": "object"},
		}
	}
	return tools
}

func writeFrame(out io.Writer, f frame) error {
	f.JSONRPC = "2.0"
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	_, err = out.Write([]byte("\n"))
	return err
}

func (s *session) writeResult(id json.RawMessage, result any) error {
	s.preamble()
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return writeFrame(s.out, frame{ID: id, Result: raw})
}

func (s *session) writeError(id json.RawMessage, rpcErr JSONRPCError) error {
	s.preamble()
	return writeFrame(s.out, frame{ID: id, Error: &rpcErr})
}

// preamble emits the configured stream-realism noise before a
// response.
func (s *session) preamble() {
	if s.cfg.GarbageBeforeResponse {
		_, _ = s.out.Write([]byte("not-json\n"))
	}
	if s.cfg.SendNotificationBeforeResponse {
		_ = writeFrame(s.out, frame{Method: "test/noise"})
	}
	if s.cfg.SendMismatchedIDFirst {
		_ = writeFrame(s.out, frame{ID: json.RawMessage(`99999`), Result: json.RawMessage(`{}`)})
	}
}
