package client

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Bigsy/mcpkit/comm"
	"github.com/Bigsy/mcpkit/mcp"
)

// scriptedTransport records outbound frames and answers every request
// with a canned initialize result, exposing the raw handshake bytes.
type scriptedTransport struct {
	frames chan string
}

func newScriptedTransport() *scriptedTransport {
	return &scriptedTransport{frames: make(chan string, 8)}
}

func (t *scriptedTransport) Start(ctx context.Context, end comm.TransportEnd) error {
	go func() {
		defer close(end.S2C)
		defer close(end.Aux)
		for {
			select {
			case frame, ok := <-end.C2S:
				if !ok {
					return
				}
				t.frames <- frame

				msg, err := mcp.ParseMessage([]byte(frame))
				if err != nil {
					continue
				}
				req, ok := msg.(*mcp.Request)
				if !ok {
					continue
				}
				reply, _ := mcp.EncodeMessage(&mcp.Response{
					ID: req.ID,
					Result: json.RawMessage(`{
						"protocolVersion": "2025-03-26",
						"capabilities": {},
						"serverInfo": {"name": "scripted", "version": "0.0.1"}
					}`),
				})
				select {
				case end.S2C <- string(reply):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (t *scriptedTransport) Close() error { return nil }

func TestConnect_FirstFrameIsInitialize(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr := newScriptedTransport()
	c := New("Demo Client", "0.1.0")
	if _, err := c.Connect(ctx, tr); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Close()

	var first string
	select {
	case first = <-tr.frames:
	case <-time.After(time.Second):
		t.Fatal("no outbound frame recorded")
	}

	var frame struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Method  string          `json:"method"`
		Params  struct {
			ProtocolVersion string `json:"protocolVersion"`
			ClientInfo      struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"clientInfo"`
		} `json:"params"`
	}
	if err := json.Unmarshal([]byte(first), &frame); err != nil {
		t.Fatalf("unmarshal first frame: %v", err)
	}

	if frame.JSONRPC != "2.0" {
		t.Errorf("expected jsonrpc 2.0, got %q", frame.JSONRPC)
	}
	if frame.Method != "initialize" {
		t.Errorf("expected method initialize, got %q", frame.Method)
	}
	if len(frame.ID) == 0 || string(frame.ID) == "null" {
		t.Error("initialize request must carry an id")
	}
	if frame.Params.ProtocolVersion != "2025-03-26" {
		t.Errorf("expected protocolVersion 2025-03-26, got %q", frame.Params.ProtocolVersion)
	}
	if frame.Params.ClientInfo.Name != "Demo Client" || frame.Params.ClientInfo.Version != "0.1.0" {
		t.Errorf("unexpected clientInfo: %+v", frame.Params.ClientInfo)
	}
}
