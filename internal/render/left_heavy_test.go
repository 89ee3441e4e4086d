package render

import (
	"testing"

	"github.com/doom-fish/flamecat/internal/ir"
)

func TestMergesIdenticalStacks(t *testing.T) {
	spans := []ir.Span{
		{ID: 0, Name: "main", Start: 0, End: 100, Depth: 0},
		{ID: 1, Name: "work", Start: 0, End: 40, Depth: 1, Parent: ptr(uint64(0))},
		{ID: 2, Name: "work", Start: 40, End: 90, Depth: 1, Parent: ptr(uint64(0))},
	}
	roots, childrenOf := buildChildrenIndex(spans)
	merged := mergeChildren(roots, childrenOf, 0)

	if len(merged) != 1 {
		t.Fatalf("expected one merged root, got %d", len(merged))
	}
	if len(merged[0].Children) != 1 {
		t.Fatalf("expected identical 'work' siblings merged into one node, got %d", len(merged[0].Children))
	}
	if got := merged[0].Children[0].Total; got != 90 {
		t.Fatalf("merged 'work' total = %v, want 90", got)
	}
}

func TestRenderLeftHeavyHeaviestFirst(t *testing.T) {
	spans := []ir.Span{
		{ID: 0, Name: "light", Start: 0, End: 10, Depth: 0},
		{ID: 1, Name: "heavy", Start: 10, End: 90, Depth: 0},
	}
	cmds := RenderLeftHeavy(spans, Viewport{Width: 800})

	var firstRect *DrawRect
	for _, c := range cmds {
		if r, ok := c.(DrawRect); ok {
			firstRect = &r
			break
		}
	}
	if firstRect == nil {
		t.Fatal("expected at least one DrawRect")
	}
	if *firstRect.FrameID != 1 {
		t.Fatalf("expected heaviest span (id 1) laid out first, got frame id %d", *firstRect.FrameID)
	}
}

func TestRenderLeftHeavyEmpty(t *testing.T) {
	cmds := RenderLeftHeavy(nil, Viewport{Width: 800})
	if cmds != nil {
		t.Fatalf("expected nil commands for empty span list, got %v", cmds)
	}
}
