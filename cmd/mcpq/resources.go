package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Bigsy/mcpkit/mcp"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the server's resources",
	RunE:  runResources,
}

var resourceReadCmd = &cobra.Command{
	Use:   "read <uri>",
	Short: "Read a resource by URI",
	Args:  cobra.ExactArgs(1),
	RunE:  runResourceRead,
}

var resourceTemplatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the server's resource templates",
	RunE:  runResourceTemplates,
}

func init() {
	resourcesCmd.AddCommand(resourceReadCmd)
	resourcesCmd.AddCommand(resourceTemplatesCmd)
	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, args []string) error {
	c, cleanup, err := dial(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := c.ListResources(cmd.Context(), mcp.ListResourcesParams{})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, resource := range res.Resources {
		fmt.Fprintf(w, "%s\t%s\t%s\n", resource.URI, resource.Name, resource.MimeType)
	}
	return w.Flush()
}

func runResourceRead(cmd *cobra.Command, args []string) error {
	c, cleanup, err := dial(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := c.ReadResource(cmd.Context(), mcp.ReadResourceParams{URI: args[0]})
	if err != nil {
		return err
	}

	for _, contents := range res.Contents {
		if contents.Text != "" {
			fmt.Println(contents.Text)
			continue
		}
		fmt.Printf("[%s, %d bytes]\n", contents.MimeType, len(contents.Blob))
	}
	return nil
}

func runResourceTemplates(cmd *cobra.Command, args []string) error {
	c, cleanup, err := dial(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := c.ListResourceTemplates(cmd.Context(), mcp.ListResourceTemplatesParams{})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, tmpl := range res.ResourceTemplates {
		fmt.Fprintf(w, "%s\t%s\t%s\n", tmpl.URITemplate, tmpl.Name, tmpl.MimeType)
	}
	return w.Flush()
}
