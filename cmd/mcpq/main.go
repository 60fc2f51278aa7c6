// mcpq is a small MCP inspector: it connects to a configured server
// over stdio or streamable HTTP and exposes its tools, prompts, and
// resources from the command line.
package main

func main() {
	Execute()
}
