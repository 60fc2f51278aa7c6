package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the server is alive",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := dial(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		start := time.Now()
		if err := c.Ping(cmd.Context()); err != nil {
			return err
		}
		info := c.ServerInfo()
		fmt.Printf("%s %s: ok (%s)\n", info.Name, info.Version, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
