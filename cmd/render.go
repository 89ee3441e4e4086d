package cmd

import (
	"fmt"

	"github.com/doom-fish/flamecat/internal/engine"
	"github.com/doom-fish/flamecat/internal/render"
	"github.com/spf13/cobra"
)

var (
	renderView      string
	renderWidth     float64
	renderHeight    float64
	renderDpr       float64
	renderThreadID  uint32
	renderHasThread bool
	renderFrameID   uint64
	renderHasFrame  bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a view transform over a profile and print its RenderCommand stream as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderView, "view", "time-order", "View: time-order, left-heavy, sandwich, or ranked")
	renderCmd.Flags().Float64Var(&renderWidth, "width", 1280, "Viewport width in pixels")
	renderCmd.Flags().Float64Var(&renderHeight, "height", 720, "Viewport height in pixels")
	renderCmd.Flags().Float64Var(&renderDpr, "dpr", 1, "Device pixel ratio")
	renderCmd.Flags().Uint32Var(&renderThreadID, "thread-id", 0, "Restrict to one thread id")
	renderCmd.Flags().Uint64Var(&renderFrameID, "selected-frame-id", 0, "Span id to center the sandwich view on")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]
	eng := engine.New()

	handle, err := eng.ParseProfileFile(path)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	opts := engine.RenderOptions{RankedSort: render.RankedSortBySelf}
	if cmd.Flags().Changed("thread-id") {
		id := renderThreadID
		opts.ThreadID = &id
	}
	if cmd.Flags().Changed("selected-frame-id") {
		id := renderFrameID
		opts.SelectedFrameID = &id
	}

	viewport := render.Viewport{Width: renderWidth, Height: renderHeight, Dpr: renderDpr}
	cmds, err := eng.RenderView(handle, engine.ViewKind(renderView), viewport, opts)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	data, err := render.EncodeCommands(cmds)
	if err != nil {
		return fmt.Errorf("render %s: encode commands: %w", path, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
