package render

import (
	"testing"

	"github.com/doom-fish/flamecat/internal/ir"
)

func TestShowsCallersAndCallees(t *testing.T) {
	spans := []ir.Span{
		{ID: 0, Name: "main", Start: 0, End: 100, Depth: 0},
		{ID: 1, Name: "parse", Start: 0, End: 60, Depth: 1, Parent: ptr(uint64(0))},
		{ID: 2, Name: "tokenize", Start: 0, End: 30, Depth: 2, Parent: ptr(uint64(1))},
		{ID: 3, Name: "render", Start: 60, End: 100, Depth: 1, Parent: ptr(uint64(0))},
	}
	cmds := RenderSandwich(spans, "parse", Viewport{Width: 800})
	if len(cmds) == 0 {
		t.Fatal("expected commands for a matching selection")
	}

	var names []string
	for _, c := range cmds {
		if dt, ok := c.(DrawText); ok {
			names = append(names, dt.Text)
		}
	}
	hasCaller, hasCallee, hasSelected := false, false, false
	for _, n := range names {
		switch n {
		case "main":
			hasCaller = true
		case "tokenize":
			hasCallee = true
		case "parse":
			hasSelected = true
		}
	}
	if !hasCaller || !hasCallee || !hasSelected {
		t.Fatalf("expected caller, callee and selected frame labels, got %v", names)
	}
}

func TestRenderSandwichNoMatch(t *testing.T) {
	spans := []ir.Span{{ID: 0, Name: "main", Start: 0, End: 10, Depth: 0}}
	cmds := RenderSandwich(spans, "missing", Viewport{Width: 800})
	if cmds != nil {
		t.Fatalf("expected nil commands when selection has no occurrences, got %v", cmds)
	}
}
