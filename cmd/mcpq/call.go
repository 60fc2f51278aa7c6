package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Bigsy/mcpkit/client"
	"github.com/Bigsy/mcpkit/mcp"
)

var (
	callArgs        []string
	callJSONArgs    string
	callInteractive bool
)

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Call a tool on the server",
	Long: `Call a tool on the server.

Arguments are given as repeated --arg name=value pairs (values are
parsed as JSON where possible, strings otherwise), as a single --json
object, or interactively with --interactive, which builds a form from
the tool's input schema.

Examples:
  mcpq call echo --arg message="Hello"
  mcpq call add --arg a=1 --arg b=2.5
  mcpq call add --json '{"a":1,"b":2.5}'
  mcpq call annotatedMessage --interactive`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringArrayVar(&callArgs, "arg", nil, "Tool argument as name=value (repeatable)")
	callCmd.Flags().StringVar(&callJSONArgs, "json", "", "Tool arguments as a JSON object")
	callCmd.Flags().BoolVarP(&callInteractive, "interactive", "i", false, "Prompt for arguments from the tool's input schema")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	toolName := args[0]

	c, cleanup, err := dial(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	arguments, err := collectArguments(cmd, c, toolName)
	if err != nil {
		return err
	}

	params := mcp.CallToolParams{Name: toolName, Arguments: arguments}
	res, err := c.CallTool(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("call %s: %w", toolName, err)
	}

	if res.IsError {
		fmt.Fprintln(os.Stderr, "tool reported an error:")
	}
	for _, content := range res.Content {
		printContent(content)
	}
	return nil
}

func collectArguments(cmd *cobra.Command, c *client.Client, toolName string) (map[string]any, error) {
	if callJSONArgs != "" {
		var arguments map[string]any
		if err := json.Unmarshal([]byte(callJSONArgs), &arguments); err != nil {
			return nil, fmt.Errorf("parse --json: %w", err)
		}
		return arguments, nil
	}

	arguments := make(map[string]any)
	for _, pair := range callArgs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid --arg %q, expected name=value", pair)
		}
		arguments[name] = parseArgValue(value)
	}

	if callInteractive {
		if err := promptForArguments(cmd, c, toolName, arguments); err != nil {
			return nil, err
		}
	}
	return arguments, nil
}

// parseArgValue decodes the value as JSON when possible so numbers and
// booleans keep their type; anything else stays a string.
func parseArgValue(value string) any {
	var parsed any
	if err := json.Unmarshal([]byte(value), &parsed); err == nil {
		return parsed
	}
	return value
}

// promptForArguments builds a huh form from the tool's input schema
// and fills missing arguments from the answers.
func promptForArguments(cmd *cobra.Command, c *client.Client, toolName string, arguments map[string]any) error {
	res, err := c.ListTools(cmd.Context(), mcp.ListToolsParams{})
	if err != nil {
		return err
	}

	var tool *mcp.Tool
	for i := range res.Tools {
		if res.Tools[i].Name == toolName {
			tool = &res.Tools[i]
			break
		}
	}
	if tool == nil {
		return fmt.Errorf("tool %q not found on server", toolName)
	}
	if len(tool.InputSchema.Properties) == 0 {
		return nil
	}

	required := make(map[string]bool, len(tool.InputSchema.Required))
	for _, name := range tool.InputSchema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(tool.InputSchema.Properties))
	for name := range tool.InputSchema.Properties {
		if _, already := arguments[name]; !already {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil
	}

	answers := make(map[string]*string, len(names))
	fields := make([]huh.Field, 0, len(names))
	for _, name := range names {
		value := new(string)
		answers[name] = value

		input := huh.NewInput().Title(name).Value(value)
		if desc := propertyDescription(tool.InputSchema.Properties[name]); desc != "" {
			input = input.Description(desc)
		}
		if required[name] {
			input = input.Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("%s is required", name)
				}
				return nil
			})
		}
		fields = append(fields, input)
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase())
	if err := form.Run(); err != nil {
		return err
	}

	for name, value := range answers {
		if *value == "" && !required[name] {
			continue
		}
		arguments[name] = parseArgValue(*value)
	}
	return nil
}

func propertyDescription(prop any) string {
	obj, ok := prop.(map[string]any)
	if !ok {
		return ""
	}
	desc, _ := obj["description"].(string)
	return desc
}

func printContent(content mcp.Content) {
	switch content.Type {
	case mcp.ContentTypeText:
		fmt.Println(content.Text)
	case mcp.ContentTypeImage, mcp.ContentTypeAudio:
		fmt.Printf("[%s %s, %d bytes base64]\n%s\n",
			content.Type, content.MimeType, len(content.Data),
			base64.StdEncoding.EncodeToString(content.Data))
	case mcp.ContentTypeResource:
		if content.Resource != nil {
			fmt.Printf("[resource %s]\n%s\n", content.Resource.URI, content.Resource.Text)
		}
	default:
		raw, _ := json.Marshal(content)
		fmt.Println(string(raw))
	}
}
