package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Bigsy/mcpkit/mcp"
)

var promptArgs []string

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List the server's prompts",
	RunE:  runPrompts,
}

var promptGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Fetch a prompt, optionally templated",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptGet,
}

func init() {
	promptGetCmd.Flags().StringArrayVar(&promptArgs, "arg", nil, "Template argument as name=value (repeatable)")
	promptsCmd.AddCommand(promptGetCmd)
	rootCmd.AddCommand(promptsCmd)
}

func runPrompts(cmd *cobra.Command, args []string) error {
	c, cleanup, err := dial(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := c.ListPrompts(cmd.Context(), mcp.ListPromptsParams{})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, prompt := range res.Prompts {
		argNames := make([]string, len(prompt.Arguments))
		for i, arg := range prompt.Arguments {
			argNames[i] = arg.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", prompt.Name, prompt.Description, strings.Join(argNames, ","))
	}
	return w.Flush()
}

func runPromptGet(cmd *cobra.Command, args []string) error {
	c, cleanup, err := dial(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	params := mcp.NewGetPromptParams(args[0])
	if len(promptArgs) > 0 {
		params.Arguments = make(map[string]string, len(promptArgs))
		for _, pair := range promptArgs {
			name, value, found := strings.Cut(pair, "=")
			if !found {
				return fmt.Errorf("invalid --arg %q, expected name=value", pair)
			}
			params.Arguments[name] = value
		}
	}

	res, err := c.GetPrompt(cmd.Context(), params)
	if err != nil {
		return err
	}

	if res.Description != "" {
		fmt.Printf("# %s\n\n", res.Description)
	}
	for _, msg := range res.Messages {
		fmt.Printf("[%s]\n", msg.Role)
		printContent(msg.Content)
		fmt.Println()
	}
	return nil
}
