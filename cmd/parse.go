package cmd

import (
	"fmt"

	"github.com/doom-fish/flamecat/internal/engine"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a profile and print its metadata and thread list",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	eng := engine.New()

	handle, err := eng.ParseProfileFile(path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	meta, err := eng.GetProfileMetadata(handle)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	threads, err := eng.GetThreadList(handle)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	count, err := eng.GetFrameCount(handle)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	name := "(unnamed)"
	if meta.Name != nil {
		name = *meta.Name
	}
	fmt.Fprintf(out, "profile: %s\n", name)
	fmt.Fprintf(out, "source format: %s\n", meta.SourceFormat)
	fmt.Fprintf(out, "value unit: %s\n", meta.ValueUnit)
	fmt.Fprintf(out, "duration: %s\n", meta.ValueUnit.FormatValue(meta.EndTime-meta.StartTime))
	fmt.Fprintf(out, "total spans: %d\n", count)
	fmt.Fprintf(out, "threads:\n")
	for _, t := range threads {
		fmt.Fprintf(out, "  [%d] %-20s spans=%-6d max_depth=%d\n", t.ID, t.Name, t.SpanCount, t.MaxDepth)
	}

	return nil
}
