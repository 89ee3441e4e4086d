package cmd

import (
	"fmt"

	mcpserver "github.com/doom-fish/flamecat/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI tool integration",
	Long: `Starts the Model Context Protocol (MCP) server that exposes the
profile-visualization engine as tools for AI assistants like Claude.

The server communicates over stdio and provides the following tools:
- parse_profile: Parse a profile file and return an opaque handle
- get_profile_metadata: Get a parsed profile's top-level metadata
- get_frame_count: Get the total span count
- get_span_info: Look up one span by id
- get_content_bounds: Get the profile's start/end time
- get_thread_list: List every thread group
- get_ranked_entries: Aggregate spans by name, sorted by self/total/count
- render_view: Run a view transform (time-order, left-heavy, sandwich, ranked)
- render_minimap: Render a compressed full-profile overview
- new_session / session_add_profile / session_bounds: align several profiles on a unified timeline`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	server := mcpserver.NewServer()

	// Serve blocks until stdin is closed
	if err := server.Serve(); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
