package cmd

import (
	"fmt"
	"os"

	"github.com/doom-fish/flamecat/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "flamecat [profile]",
	Version: version.Version,
	Args:    cobra.MaximumNArgs(1),
	Short:   "flamecat - a profile visualization engine for flame graphs, timelines and call trees",
	Long: `flamecat ingests profiler dumps from a dozen different tools, aligns them
onto a single canonical timeline, and turns them into renderer-agnostic
RenderCommand streams for flame graphs, timelines, call trees and minimaps.

Supported formats (auto-detected):
- Chrome Trace Event Format
- Collapsed/folded stacks
- V8 .cpuprofile
- Firefox Profiler (Gecko) exports
- Speedscope
- Tracy
- PIX timing captures
- pprof JSON
- React DevTools Profiler
- eBPF / perf-script

Running "flamecat <file>" with no subcommand is shorthand for "flamecat parse <file>".

flamecat also ships an MCP server ("flamecat mcp") exposing the same engine
as tools for Claude and other AI assistants.`,
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			return c.Help()
		}
		return runParse(c, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
