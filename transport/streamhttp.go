package transport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Bigsy/mcpkit/comm"
	"github.com/Bigsy/mcpkit/mcp"
)

const (
	// maxSSEEventSize caps a single SSE event at 1MB.
	maxSSEEventSize = 1024 * 1024

	// connectTimeout bounds dial/TLS/header phases without imposing a
	// deadline on long-lived SSE bodies.
	connectTimeout = 30 * time.Second

	// sessionHeader carries the MCP session id across POSTs.
	sessionHeader = "Mcp-Session-Id"
)

// HTTPConfig configures a streamable HTTP transport.
type HTTPConfig struct {
	// URL is the POST target of the MCP server.
	URL string
	// Headers are static headers added to every request (e.g. a
	// bearer Authorization header).
	Headers map[string]string
	// Client is the HTTP client to use; nil means a default with no
	// overall timeout (SSE bodies stream indefinitely).
	Client *http.Client
	// Logger overrides the package logger.
	Logger *zerolog.Logger
}

// HTTPTransport POSTs each outbound frame to the configured URL and
// interprets responses as either a single JSON body or an SSE stream
// whose event data fields each hold one frame. A session id returned
// by the server is adopted and echoed on subsequent requests.
//
// The Aux channel is reserved for future diagnostic events; this
// transport closes it unused.
type HTTPTransport struct {
	cfg    HTTPConfig
	client *http.Client
	log    zerolog.Logger

	mu        sync.Mutex
	sessionID string
	cancel    context.CancelFunc
	closed    bool
}

// NewStreamableHTTP returns an unstarted HTTP transport.
func NewStreamableHTTP(cfg HTTPConfig) *HTTPTransport {
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &HTTPTransport{
		cfg:    cfg,
		client: streamingClient(cfg.Client),
		log:    logger.With().Str("transport", "http").Str("url", cfg.URL).Logger(),
	}
}

// Start launches the driver goroutine that consumes outbound frames.
func (t *HTTPTransport) Start(ctx context.Context, end comm.TransportEnd) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return fmt.Errorf("transport closed")
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	go t.run(runCtx, end)
	return nil
}

func (t *HTTPTransport) run(ctx context.Context, end comm.TransportEnd) {
	defer close(end.S2C)
	defer close(end.Aux)

	for {
		select {
		case frame, ok := <-end.C2S:
			if !ok {
				return
			}
			if err := t.post(ctx, frame, end); err != nil {
				if ctx.Err() != nil {
					return
				}
				t.log.Error().Err(err).Str("payload", mcp.Truncate(frame, 256)).Msg("post message")
			}
		case <-ctx.Done():
			return
		}
	}
}

// post sends one frame and forwards whatever the server streams back.
func (t *HTTPTransport) post(ctx context.Context, frame string, end comm.TransportEnd) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.URL, strings.NewReader(frame))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream, application/json")
	for k, v := range t.cfg.Headers {
		req.Header.Set(k, v)
	}

	t.mu.Lock()
	heldSession := t.sessionID
	t.mu.Unlock()
	if heldSession != "" {
		req.Header.Set(sessionHeader, heldSession)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	// Session binding: adopt the first id the server hands out; a
	// different id on a later response is a fatal mismatch for this
	// request.
	if sid := resp.Header.Get(sessionHeader); sid != "" {
		switch {
		case heldSession == "":
			t.mu.Lock()
			t.sessionID = sid
			t.mu.Unlock()
			t.log.Debug().Str("session_id", sid).Msg("session adopted")
		case heldSession != sid:
			return fmt.Errorf("server returned mismatched session id %q (held %q)", sid, heldSession)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("request failed: %s - %s", resp.Status, string(body))
	}

	contentType := resp.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "text/event-stream"):
		return t.forwardSSE(ctx, resp.Body, end)

	// Some servers omit the content type on JSON error replies, so a
	// missing type is read as one JSON frame.
	case strings.HasPrefix(contentType, "application/json"), contentType == "":
		return t.forwardJSON(ctx, resp.Body, end)

	default:
		t.log.Warn().Str("content_type", contentType).Msg("unsupported response content type")
		return nil
	}
}

// forwardSSE forwards each event's data field verbatim, in event
// order. Events without data are skipped.
func (t *HTTPTransport) forwardSSE(ctx context.Context, body io.Reader, end comm.TransportEnd) error {
	scanner := newSSEScanner(body, maxSSEEventSize)
	for {
		event, err := scanner.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read SSE event: %w", err)
		}
		if len(event.Data) == 0 {
			continue
		}
		t.log.Debug().Str("payload", mcp.Truncate(string(event.Data), 64)).Msg("sse event received")
		select {
		case end.S2C <- string(event.Data):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// forwardJSON forwards the whole body as a single frame.
func (t *HTTPTransport) forwardJSON(ctx context.Context, body io.Reader, end comm.TransportEnd) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	select {
	case end.S2C <- string(data):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SessionID returns the currently held session id, if any.
func (t *HTTPTransport) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

// Close stops the driver goroutine.
func (t *HTTPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.cancel != nil {
		t.cancel()
	}
	return nil
}

// streamingClient clones base without an overall timeout. When the
// clone has no Transport of its own, it gets a copy of the default
// transport with a response-header timeout (and TLS/dial timeouts
// where unset) so a dead server cannot hang a request forever while
// SSE bodies remain free to stream. A caller-supplied Transport is
// used as is.
func streamingClient(base *http.Client) *http.Client {
	c := &http.Client{}
	if base != nil {
		*c = *base
	}
	c.Timeout = 0

	if c.Transport == nil {
		if dt, ok := http.DefaultTransport.(*http.Transport); ok {
			tr := dt.Clone()
			tr.ResponseHeaderTimeout = connectTimeout
			if tr.TLSHandshakeTimeout == 0 {
				tr.TLSHandshakeTimeout = connectTimeout
			}
			if tr.DialContext == nil {
				tr.DialContext = (&net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}).DialContext
			}
			c.Transport = tr
		}
	}
	return c
}

// sseEvent is a single Server-Sent Events event.
type sseEvent struct {
	ID    string
	Event string
	Data  []byte
}

// sseScanner incrementally parses SSE events from a stream.
type sseScanner struct {
	reader  *bufio.Reader
	maxSize int
}

func newSSEScanner(r io.Reader, maxSize int) *sseScanner {
	return &sseScanner{reader: bufio.NewReader(r), maxSize: maxSize}
}

// Next reads the next event. Multi-line data fields are joined with
// newlines; comment lines and unknown fields are ignored.
func (s *sseScanner) Next() (*sseEvent, error) {
	event := &sseEvent{}
	var dataLines [][]byte
	size := 0

	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF && len(dataLines) > 0 {
				// Incomplete event at EOF still dispatches.
				event.Data = bytes.Join(dataLines, []byte("\n"))
				return event, nil
			}
			return nil, err
		}

		size += len(line)
		if size > s.maxSize {
			return nil, fmt.Errorf("SSE event exceeds maximum size of %d bytes", s.maxSize)
		}

		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))

		// Blank line dispatches the accumulated event.
		if len(line) == 0 {
			if len(dataLines) > 0 || event.ID != "" || event.Event != "" {
				event.Data = bytes.Join(dataLines, []byte("\n"))
				return event, nil
			}
			continue
		}

		if line[0] == ':' {
			continue
		}

		var field, value []byte
		if idx := bytes.IndexByte(line, ':'); idx >= 0 {
			field = line[:idx]
			value = line[idx+1:]
			if len(value) > 0 && value[0] == ' ' {
				value = value[1:]
			}
		} else {
			field = line
		}

		switch string(field) {
		case "id":
			event.ID = string(value)
		case "event":
			event.Event = string(value)
		case "data":
			dataLines = append(dataLines, value)
		case "retry":
			// Reconnection is out of scope.
		}
	}
}
