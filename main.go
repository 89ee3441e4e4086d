// Command flamecat parses and renders profiler traces from the command
// line, or serves the same capability over MCP for AI assistants.
package main

import "github.com/doom-fish/flamecat/cmd"

func main() {
	cmd.Execute()
}
