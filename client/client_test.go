package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Bigsy/mcpkit/internal/mcptest"
	"github.com/Bigsy/mcpkit/internal/mcptest/fakeserver"
	"github.com/Bigsy/mcpkit/mcp"
)

func newConnectedClient(t *testing.T, cfg fakeserver.Config, opts ...Option) (*Client, *mcp.InitializeResult) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	c := New("Demo Client", "0.1.0", opts...)
	res, err := c.Connect(ctx, mcptest.NewPipeTransport(cfg))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, res
}

func TestConnect_Handshake(t *testing.T) {
	c, res := newConnectedClient(t, fakeserver.Config{})

	if res.ServerInfo.Name != "example-servers/everything" {
		t.Errorf("expected server name example-servers/everything, got %q", res.ServerInfo.Name)
	}
	if res.ProtocolVersion != mcp.LatestProtocolVersion {
		t.Errorf("expected protocol version %s, got %s", mcp.LatestProtocolVersion, res.ProtocolVersion)
	}
	if !res.Capabilities.Logging {
		t.Error("expected logging capability")
	}
	if c.ServerInfo().Name != res.ServerInfo.Name {
		t.Error("server info not recorded on client")
	}

	if err := c.NotifyInitialized(context.Background()); err != nil {
		t.Errorf("NotifyInitialized failed: %v", err)
	}
}

func TestConnect_Twice(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{})

	_, err := c.Connect(context.Background(), mcptest.NewPipeTransport(fakeserver.Config{}))
	if !errors.Is(err, ErrAlreadyConnected) {
		t.Fatalf("expected ErrAlreadyConnected, got %v", err)
	}
}

func TestCall_BeforeConnect(t *testing.T) {
	c := New("Demo Client", "0.1.0")

	err := c.Ping(context.Background())
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestListTools_EverythingFixture(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{})

	res, err := c.ListTools(context.Background(), mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}

	want := []string{
		"echo", "add", "printEnv", "longRunningOperation",
		"sampleLLM", "getTinyImage", "annotatedMessage", "getResourceReference",
	}
	if len(res.Tools) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(res.Tools))
	}
	for i, name := range want {
		if res.Tools[i].Name != name {
			t.Errorf("tool %d: expected %q, got %q", i, name, res.Tools[i].Name)
		}
	}
}

func TestListTools_Empty(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{Tools: []fakeserver.Tool{}})

	res, err := c.ListTools(context.Background(), mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}
	if len(res.Tools) != 0 {
		t.Errorf("expected 0 tools, got %d", len(res.Tools))
	}
}

func TestCallTool_Add(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{})

	res, err := c.CallTool(context.Background(),
		mcp.NewCallToolParams("add").WithArgument("a", 1).WithArgument("b", 2.5))
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("expected content")
	}
	text, ok := res.Content[0].AsText()
	if !ok {
		t.Fatal("expected text content")
	}
	if text != "The sum of 1 and 2.5 is 3.5." {
		t.Errorf("unexpected tool output: %q", text)
	}
}

func TestCall_ServerErrorBecomesProtocolError(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{
		Errors: map[string]fakeserver.JSONRPCError{
			"tools/list": {Code: -32601, Message: "Method not found"},
		},
	})

	_, err := c.ListTools(context.Background(), mcp.ListToolsParams{})
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected *ProtocolError, got %v", err)
	}
	if protoErr.Code != -32601 {
		t.Errorf("expected code -32601, got %d", protoErr.Code)
	}
}

func TestCall_GarbageLineTolerated(t *testing.T) {
	// Every response is preceded by a non-JSON line; each one must
	// produce a warning, not a failure, and the correlated reply must
	// still complete exactly once.
	c, _ := newConnectedClient(t, fakeserver.Config{GarbageBeforeResponse: true})

	res, err := c.ListTools(context.Background(), mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}
	if len(res.Tools) == 0 {
		t.Error("expected tools despite garbage lines")
	}
}

func TestCall_UnmatchedResponseDiscarded(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{SendMismatchedIDFirst: true})

	// The stray id=99999 response is logged and dropped; the real
	// reply still lands.
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestCall_NotificationBeforeResponse(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{SendNotificationBeforeResponse: true})

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestCall_ConcurrentRequestsCorrelate(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{
		Delays: map[string]time.Duration{"tools/list": 20 * time.Millisecond},
	})

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.ListTools(context.Background(), mcp.ListToolsParams{}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent call failed: %v", err)
	}
}

func TestClose_ReleasesPendingWaiters(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{
		Delays: map[string]time.Duration{"tools/list": 5 * time.Second},
	})

	result := make(chan error, 1)
	go func() {
		_, err := c.ListTools(context.Background(), mcp.ListToolsParams{})
		result <- err
	}()

	// Let the request get parked in the pending table first.
	time.Sleep(50 * time.Millisecond)
	_ = c.Close()

	select {
	case err := <-result:
		if !errors.Is(err, ErrTransportClosed) {
			t.Errorf("expected ErrTransportClosed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiter was not released on close")
	}
}

func TestClose_Idempotent(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{})

	if err := c.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	err := c.Ping(context.Background())
	if !errors.Is(err, ErrTransportClosed) {
		t.Errorf("expected ErrTransportClosed after close, got %v", err)
	}
}

func TestCancelRequest_OtherWaiterUnaffected(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{
		Delays: map[string]time.Duration{"prompts/get": 200 * time.Millisecond},
	})

	// Waiter A is cancelled locally after notifying the server;
	// waiter B must complete normally.
	ctxA, cancelA := context.WithCancel(context.Background())
	resultA := make(chan error, 1)
	go func() {
		_, id, err := CallWithID(ctxA, c, mcp.GetPrompt, mcp.NewGetPromptParams("slow_prompt"))
		if err != nil {
			_ = c.CancelRequest(context.Background(), id, "caller gave up")
		}
		resultA <- err
	}()

	resultB := make(chan error, 1)
	go func() {
		_, err := c.GetPrompt(context.Background(), mcp.NewGetPromptParams("other_prompt"))
		resultB <- err
	}()

	time.Sleep(30 * time.Millisecond)
	cancelA()

	if err := <-resultA; !errors.Is(err, context.Canceled) {
		t.Errorf("waiter A: expected context.Canceled, got %v", err)
	}
	if err := <-resultB; err != nil {
		t.Errorf("waiter B: expected success, got %v", err)
	}
}

func TestReadResource(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{
		Resources: []fakeserver.Resource{
			{URI: "test://static/resource/1", Name: "Resource 1", MimeType: "text/plain", Text: "resource body"},
		},
	})

	res, err := c.ReadResource(context.Background(), mcp.ReadResourceParams{URI: "test://static/resource/1"})
	if err != nil {
		t.Fatalf("ReadResource failed: %v", err)
	}
	if len(res.Contents) != 1 || res.Contents[0].Text != "resource body" {
		t.Errorf("unexpected contents: %#v", res.Contents)
	}
}

func TestGetPrompt(t *testing.T) {
	c, _ := newConnectedClient(t, fakeserver.Config{})

	res, err := c.GetPrompt(context.Background(), mcp.NewGetPromptParams("simple_prompt"))
	if err != nil {
		t.Fatalf("GetPrompt failed: %v", err)
	}
	if len(res.Messages) == 0 {
		t.Fatal("expected prompt messages")
	}
	if res.Messages[0].Role != mcp.RoleUser {
		t.Errorf("expected user role, got %s", res.Messages[0].Role)
	}
}
