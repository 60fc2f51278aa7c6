package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/Bigsy/mcpkit/transport"
)

const (
	configDir  = ".config/mcpq"
	configFile = "config.yaml"
)

// ServerConfig declares how to reach one MCP server: either a command
// to spawn (stdio) or a URL to POST to (streamable HTTP).
type ServerConfig struct {
	Command string            `yaml:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty"`
	Cwd     string            `yaml:"cwd,omitempty"`
	URL     string            `yaml:"url,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

// Config is the mcpq configuration file.
type Config struct {
	Servers map[string]ServerConfig `yaml:"servers"`
}

// defaultConfigPath returns ~/.config/mcpq/config.yaml.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, configDir, configFile), nil
}

// loadConfig reads the configuration, honoring the --config flag.
func loadConfig() (*Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.Servers) == 0 {
		return nil, fmt.Errorf("config %s declares no servers", path)
	}
	return &cfg, nil
}

// pickServer resolves the --server flag against the config. With one
// configured server the flag may be omitted.
func (c *Config) pickServer(name string) (ServerConfig, string, error) {
	if name != "" {
		srv, ok := c.Servers[name]
		if !ok {
			return ServerConfig{}, "", fmt.Errorf("server %q is not configured (known: %v)", name, c.serverNames())
		}
		return srv, name, nil
	}
	if len(c.Servers) == 1 {
		for n, srv := range c.Servers {
			return srv, n, nil
		}
	}
	return ServerConfig{}, "", fmt.Errorf("multiple servers configured, pick one with --server (known: %v)", c.serverNames())
}

func (c *Config) serverNames() []string {
	names := make([]string, 0, len(c.Servers))
	for n := range c.Servers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// newTransport builds the transport matching the server declaration.
func (s ServerConfig) newTransport() (transport.Transport, error) {
	switch {
	case s.URL != "":
		return transport.NewStreamableHTTP(transport.HTTPConfig{
			URL:     s.URL,
			Headers: s.Headers,
		}), nil
	case s.Command != "":
		return transport.NewStdio(transport.StdioConfig{
			Command: s.Command,
			Args:    s.Args,
			Dir:     s.Cwd,
		}), nil
	default:
		return nil, fmt.Errorf("server declares neither command nor url")
	}
}
