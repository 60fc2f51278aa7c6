package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Bigsy/mcpkit/client"
	"github.com/Bigsy/mcpkit/mcp"
)

var toolsJSON bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the server's tools",
	RunE:  runTools,
}

func init() {
	toolsCmd.Flags().BoolVar(&toolsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	c, cleanup, err := dial(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	tools, err := listAllTools(cmd.Context(), c)
	if err != nil {
		return err
	}

	if toolsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tools)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, tool := range tools {
		fmt.Fprintf(w, "%s\t%s\n", tool.Name, tool.Description)
	}
	return w.Flush()
}

// listAllTools follows pagination cursors until the list is complete.
func listAllTools(ctx context.Context, c *client.Client) ([]mcp.Tool, error) {
	var tools []mcp.Tool
	cursor := ""
	for {
		res, err := c.ListTools(ctx, mcp.ListToolsParams{Cursor: cursor})
		if err != nil {
			return nil, err
		}
		tools = append(tools, res.Tools...)
		if res.NextCursor == "" {
			return tools, nil
		}
		cursor = res.NextCursor
	}
}
