package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version information (set at build time via ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

var (
	configPath string
	serverName string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "mcpq",
	Short: "Inspect and call MCP servers",
	Long: `mcpq connects to a Model Context Protocol server and lets you list
and call its tools, fetch prompts, and read resources.

Servers are declared in ~/.config/mcpq/config.yaml. Pick one with
--server; with a single configured server the flag can be omitted.`,
	Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

func init() {
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: ~/.config/mcpq/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&serverName, "server", "s", "",
		"Name of the configured server to connect to")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Log level (trace, debug, info, warn, error)")
}

func setupLogging() error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
