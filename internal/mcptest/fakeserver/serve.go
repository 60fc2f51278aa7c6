package fakeserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

type session struct {
	cfg Config
	out io.Writer

	// pendingSampling maps the id of an outstanding
	// sampling/createMessage request (as raw JSON) to the id of the
	// tools/call that triggered it.
	pendingSampling map[string]json.RawMessage
	samplingSeq     int
}

// Serve runs the fake server until in is exhausted or ctx is done.
// Requests are answered in arrival order; a tools/call of sampleLLM
// issues a sampling/createMessage to the client and defers its reply
// until the client's sampling response arrives.
func Serve(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	if cfg.ServerName == "" {
		cfg.ServerName = "example-servers/everything"
	}
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "1.0.0"
	}
	if cfg.Tools == nil {
		cfg.Tools = EverythingTools()
	}

	s := &session{
		cfg:             cfg,
		out:             out,
		pendingSampling: make(map[string]json.RawMessage),
	}

	reader := bufio.NewReader(in)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := reader.ReadBytes('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		var f frame
		if err := json.Unmarshal(bytes.TrimSpace(line), &f); err != nil {
			return err
		}

		switch {
		case f.Method == "" && (f.Result != nil || f.Error != nil):
			s.handleClientReply(f)
		case f.ID == nil || string(f.ID) == "null":
			// Notifications need no reply.
		default:
			if err := s.handleRequest(f); err != nil {
				return err
			}
		}
	}
}

func (s *session) handleRequest(f frame) error {
	if delay, ok := s.cfg.Delays[f.Method]; ok {
		time.Sleep(delay)
	}
	if rpcErr, ok := s.cfg.Errors[f.Method]; ok {
		return s.writeError(f.ID, rpcErr)
	}

	switch f.Method {
	case "initialize":
		return s.writeResult(f.ID, map[string]any{
			"protocolVersion": "2025-03-26",
			"serverInfo": map[string]string{
				"name":    s.cfg.ServerName,
				"version": s.cfg.ServerVersion,
			},
			"capabilities": map[string]any{
				"logging":   map[string]any{},
				"prompts":   map[string]any{"listChanged": true},
				"resources": map[string]any{"subscribe": true},
				"tools":     map[string]any{"listChanged": true},
			},
		})

	case "ping", "logging/setLevel", "resources/subscribe", "resources/unsubscribe":
		return s.writeResult(f.ID, map[string]any{})

	case "tools/list":
		return s.writeResult(f.ID, map[string]any{"tools": s.cfg.Tools})

	case "tools/call":
		return s.handleToolCall(f)

	case "prompts/list":
		prompts := s.cfg.Prompts
		if prompts == nil {
			prompts = []Prompt{}
		}
		return s.writeResult(f.ID, map[string]any{"prompts": prompts})

	case "prompts/get":
		return s.handleGetPrompt(f)

	case "resources/list":
		resources := s.cfg.Resources
		if resources == nil {
			resources = []Resource{}
		}
		return s.writeResult(f.ID, map[string]any{"resources": resources})

	case "resources/templates/list":
		return s.writeResult(f.ID, map[string]any{"resourceTemplates": []any{}})

	case "resources/read":
		return s.handleReadResource(f)

	case "completion/complete":
		return s.writeResult(f.ID, map[string]any{
			"completion": map[string]any{"values": []string{}},
		})

	default:
		return s.writeError(f.ID, JSONRPCError{Code: -32601, Message: "Method not found"})
	}
}

func (s *session) handleToolCall(f frame) error {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(f.Params, &params); err != nil {
		return s.writeError(f.ID, JSONRPCError{Code: -32602, Message: "Invalid params"})
	}

	switch params.Name {
	case "echo":
		msg, _ := params.Arguments["message"].(string)
		return s.writeResult(f.ID, textResult("Echo: "+msg))

	case "add":
		a, _ := params.Arguments["a"].(float64)
		b, _ := params.Arguments["b"].(float64)
		text := fmt.Sprintf("The sum of %v and %v is %v.", a, b, a+b)
		return s.writeResult(f.ID, textResult(text))

	case "sampleLLM":
		return s.startSampling(f, params.Arguments)

	default:
		return s.writeResult(f.ID, textResult("Called "+params.Name))
	}
}

// startSampling issues sampling/createMessage to the client and parks
// the tools/call until the client replies.
func (s *session) startSampling(f frame, args map[string]any) error {
	prompt, _ := args["prompt"].(string)

	s.samplingSeq++
	samplingID := json.RawMessage(fmt.Sprintf(`"sampling-%d"`, s.samplingSeq))
	s.pendingSampling[string(samplingID)] = f.ID

	params := map[string]any{
		"messages": []map[string]any{
			{"role": "user", "content": map[string]any{"type": "text", "text": prompt}},
		},
		"maxTokens": 100,
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return writeFrame(s.out, frame{
		ID:     samplingID,
		Method: "sampling/createMessage",
		Params: raw,
	})
}

// handleClientReply resolves a parked tools/call with the client's
// sampling result.
func (s *session) handleClientReply(f frame) {
	origID, ok := s.pendingSampling[string(f.ID)]
	if !ok {
		return
	}
	delete(s.pendingSampling, string(f.ID))

	if f.Error != nil {
		_ = s.writeError(origID, JSONRPCError{
			Code:    -32603,
			Message: "sampling failed: " + f.Error.Message,
		})
		return
	}

	var result struct {
		Model   string `json:"model"`
		Content struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	_ = json.Unmarshal(f.Result, &result)
	text := fmt.Sprintf("LLM sampling result: %s", result.Content.Text)
	_ = s.writeResult(origID, textResult(text))
}

func (s *session) handleGetPrompt(f frame) error {
	var params struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(f.Params, &params)
	return s.writeResult(f.ID, map[string]any{
		"description": "Prompt " + params.Name,
		"messages": []map[string]any{
			{"role": "user", "content": map[string]any{"type": "text", "text": "This is " + params.Name}},
		},
	})
}

func (s *session) handleReadResource(f frame) error {
	var params struct {
		URI string `json:"uri"`
	}
	_ = json.Unmarshal(f.Params, &params)

	for _, res := range s.cfg.Resources {
		if res.URI == params.URI {
			return s.writeResult(f.ID, map[string]any{
				"contents": []map[string]any{
					{"uri": res.URI, "mimeType": res.MimeType, "text": res.Text},
				},
			})
		}
	}
	return s.writeError(f.ID, JSONRPCError{Code: -32002, Message: "Resource not found: " + params.URI})
}

func textResult(text string) map[string]any {
	return map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	}
}
