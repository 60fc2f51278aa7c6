package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Bigsy/mcpkit/comm"
	"github.com/Bigsy/mcpkit/mcp"
)

// StdioConfig configures a child-process stdio transport.
type StdioConfig struct {
	// Command is the executable to spawn.
	Command string
	// Args is the argument vector.
	Args []string
	// Dir is the working directory; empty means inherit.
	Dir string
	// Logger overrides the package logger.
	Logger *zerolog.Logger
}

// StdioTransport speaks newline-delimited JSON over a child process's
// standard streams. The child's stdout lines are forwarded to S2C, its
// stderr lines to Aux, and C2S frames are written to its stdin. The
// transport owns the child: Close kills it.
type StdioTransport struct {
	cfg StdioConfig
	log zerolog.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	closed bool
}

// NewStdio returns an unstarted stdio transport.
func NewStdio(cfg StdioConfig) *StdioTransport {
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &StdioTransport{
		cfg: cfg,
		log: logger.With().Str("transport", "stdio").Str("command", cfg.Command).Logger(),
	}
}

// Start spawns the child and launches the reader, diagnostic, and
// writer goroutines.
func (t *StdioTransport) Start(ctx context.Context, end comm.TransportEnd) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return fmt.Errorf("transport closed")
	}
	if t.cmd != nil {
		return fmt.Errorf("transport already started")
	}

	cmd := exec.Command(t.cfg.Command, t.cfg.Args...)
	if t.cfg.Dir != "" {
		cmd.Dir = t.cfg.Dir
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start process: %w", err)
	}
	t.cmd = cmd
	t.log.Debug().Int("pid", cmd.Process.Pid).Msg("child started")

	go t.readStdout(ctx, stdout, end)
	go t.readStderr(stderr, end)
	go t.writeStdin(ctx, stdin, end)
	go func() {
		// Reap the child so it never lingers as a zombie.
		err := cmd.Wait()
		t.log.Debug().AnErr("exit", err).Msg("child exited")
	}()

	return nil
}

// readStdout forwards each complete stdout line as one inbound frame.
// Closing S2C on EOF is what lets the client drain and release its
// pending waiters.
func (t *StdioTransport) readStdout(ctx context.Context, stdout io.Reader, end comm.TransportEnd) {
	defer close(end.S2C)

	reader := bufio.NewReader(stdout)
	for {
		line, err := reader.ReadString('\n')
		if line = trimLine(line); line != "" {
			t.log.Debug().Str("payload", mcp.Truncate(line, 64)).Msg("message received")
			select {
			case end.S2C <- line:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				t.log.Warn().Err(err).Msg("read stdout line")
			}
			return
		}
	}
}

// readStderr forwards each diagnostic line over the aux channel.
func (t *StdioTransport) readStderr(stderr io.Reader, end comm.TransportEnd) {
	defer close(end.Aux)

	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		select {
		case end.Aux <- scanner.Text():
		default:
			// Diagnostics are best-effort; never stall on a slow
			// consumer.
		}
	}
}

// writeStdin consumes outbound frames and writes them newline-framed.
// Write errors are fatal to this goroutine.
func (t *StdioTransport) writeStdin(ctx context.Context, stdin io.WriteCloser, end comm.TransportEnd) {
	defer stdin.Close()

	writer := bufio.NewWriter(stdin)
	for {
		select {
		case frame, ok := <-end.C2S:
			if !ok {
				return
			}
			t.log.Debug().Str("payload", mcp.Truncate(frame, 64)).Msg("sending message")
			if err := writeFrame(writer, frame); err != nil {
				t.log.Error().Err(err).Str("payload", mcp.Truncate(frame, 256)).Msg("write to stdin")
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func writeFrame(w *bufio.Writer, frame string) error {
	if _, err := w.WriteString(frame); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func trimLine(line string) string {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// Close kills the child, which unblocks the stream goroutines.
func (t *StdioTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true

	if t.cmd != nil && t.cmd.Process != nil {
		if err := t.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("kill child: %w", err)
		}
	}
	return nil
}
