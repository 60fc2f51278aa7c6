package client

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Bigsy/mcpkit/internal/mcptest"
	"github.com/Bigsy/mcpkit/internal/mcptest/fakeserver"
	"github.com/Bigsy/mcpkit/mcp"
)

const skyAnswer = "The sky appears red, especially at sunrise or sunset, " +
	"because sunlight passes through more of the Earth's atmosphere, " +
	"scattering shorter blue wavelengths and allowing longer red wavelengths to dominate."

func TestSampling_RoundTrip(t *testing.T) {
	c := New("Demo Client", "0.1.0")

	var sawPrompt atomic.Value
	c.RegisterSamplingHandler(func(ctx context.Context, params *mcp.CreateMessageParams) (*mcp.CreateMessageResult, error) {
		if len(params.Messages) > 0 {
			if text, ok := params.Messages[0].Content.AsText(); ok {
				sawPrompt.Store(text)
			}
		}
		return mcp.NewAssistantText(skyAnswer, "mock-model-xp"), nil
	})

	connectPipe(t, c, fakeserver.Config{})

	res, err := c.CallTool(context.Background(),
		mcp.NewCallToolParams("sampleLLM").WithArgument("prompt", "Why is the sky red?"))
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}

	text, ok := res.Content[0].AsText()
	if !ok {
		t.Fatal("expected text content")
	}
	if !strings.Contains(text, skyAnswer) {
		t.Errorf("tool response does not carry the sampled message: %q", text)
	}
	if got, _ := sawPrompt.Load().(string); got != "Why is the sky red?" {
		t.Errorf("handler saw prompt %q", got)
	}
}

func TestSampling_NoHandlerRegistered(t *testing.T) {
	c := New("Demo Client", "0.1.0")
	connectPipe(t, c, fakeserver.Config{})

	// Without a handler the client answers method-not-found, which
	// the fake server converts into a tools/call error.
	_, err := c.CallTool(context.Background(),
		mcp.NewCallToolParams("sampleLLM").WithArgument("prompt", "anything"))

	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected *ProtocolError, got %v", err)
	}
	if !strings.Contains(protoErr.Message, "sampling failed") {
		t.Errorf("unexpected error message: %q", protoErr.Message)
	}
}

func TestSampling_HandlerFailureBecomesErrorReply(t *testing.T) {
	c := New("Demo Client", "0.1.0")
	c.RegisterSamplingHandler(func(ctx context.Context, params *mcp.CreateMessageParams) (*mcp.CreateMessageResult, error) {
		return nil, errors.New("model unavailable")
	})
	connectPipe(t, c, fakeserver.Config{})

	_, err := c.CallTool(context.Background(),
		mcp.NewCallToolParams("sampleLLM").WithArgument("prompt", "anything"))

	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected *ProtocolError, got %v", err)
	}
	if !strings.Contains(protoErr.Message, "model unavailable") {
		t.Errorf("handler message not propagated: %q", protoErr.Message)
	}
}

func TestSampling_ReplacementWins(t *testing.T) {
	c := New("Demo Client", "0.1.0")

	c.RegisterSamplingHandler(func(ctx context.Context, params *mcp.CreateMessageParams) (*mcp.CreateMessageResult, error) {
		return mcp.NewAssistantText("first", "model-a"), nil
	})
	c.RegisterSamplingHandler(func(ctx context.Context, params *mcp.CreateMessageParams) (*mcp.CreateMessageResult, error) {
		return mcp.NewAssistantText("second", "model-b"), nil
	})

	connectPipe(t, c, fakeserver.Config{})

	res, err := c.CallTool(context.Background(),
		mcp.NewCallToolParams("sampleLLM").WithArgument("prompt", "which handler?"))
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	text, _ := res.Content[0].AsText()
	if !strings.Contains(text, "second") {
		t.Errorf("expected the replacement handler's answer, got %q", text)
	}
}

func TestSampling_AdvertisesCapability(t *testing.T) {
	c := New("Demo Client", "0.1.0")
	c.RegisterSamplingHandler(func(ctx context.Context, params *mcp.CreateMessageParams) (*mcp.CreateMessageResult, error) {
		return mcp.NewAssistantText("ok", "m"), nil
	})
	connectPipe(t, c, fakeserver.Config{})

	// Registration before Connect switches the advertised sampling
	// capability on.
	c.mu.Lock()
	sampling := c.caps.Sampling
	c.mu.Unlock()
	if !sampling {
		t.Error("expected sampling capability after registration")
	}
}

func connectPipe(t *testing.T, c *Client, cfg fakeserver.Config) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	if _, err := c.Connect(ctx, mcptest.NewPipeTransport(cfg)); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
}
