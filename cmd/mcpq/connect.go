package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Bigsy/mcpkit/client"
)

const connectTimeout = 30 * time.Second

// dial connects to the selected server and completes the handshake.
// The returned cleanup closes the client (killing a stdio child).
func dial(ctx context.Context) (*client.Client, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	srv, name, err := cfg.pickServer(serverName)
	if err != nil {
		return nil, nil, err
	}
	tr, err := srv.newTransport()
	if err != nil {
		return nil, nil, fmt.Errorf("server %q: %w", name, err)
	}

	c := client.New("mcpq", version, client.WithLogger(log.Logger))

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	res, err := c.Connect(connectCtx, tr)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %q: %w", name, err)
	}
	if err := c.NotifyInitialized(connectCtx); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("initialized notification: %w", err)
	}

	log.Debug().
		Str("server", res.ServerInfo.Name).
		Str("version", res.ServerInfo.Version).
		Msg("handshake complete")

	return c, func() { _ = c.Close() }, nil
}
