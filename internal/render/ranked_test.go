package render

import (
	"testing"

	"github.com/doom-fish/flamecat/internal/ir"
)

func TestAggregatesByName(t *testing.T) {
	spans := []ir.Span{
		{ID: 0, Name: "work", Start: 0, End: 10, SelfValue: 4},
		{ID: 1, Name: "work", Start: 10, End: 30, SelfValue: 20},
		{ID: 2, Name: "other", Start: 0, End: 5, SelfValue: 5},
	}
	entries := AggregateRanked(spans)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	byName := map[string]RankedEntry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	if byName["work"].Count != 2 {
		t.Fatalf("work count = %d, want 2", byName["work"].Count)
	}
	if byName["work"].Self != 24 {
		t.Fatalf("work self = %v, want 24", byName["work"].Self)
	}
	if byName["work"].Total != 30 {
		t.Fatalf("work total = %v, want 30", byName["work"].Total)
	}
}

func TestSortRankedBySelfDescending(t *testing.T) {
	entries := []RankedEntry{
		{Name: "a", Self: 5},
		{Name: "b", Self: 50},
		{Name: "c", Self: 1},
	}
	SortRanked(entries, RankedSortBySelf)
	if entries[0].Name != "b" || entries[2].Name != "c" {
		t.Fatalf("unexpected sort order: %+v", entries)
	}
}

func TestRenderRankedProducesHeaderAndRows(t *testing.T) {
	spans := []ir.Span{
		{ID: 0, Name: "a", Start: 0, End: 10, SelfValue: 10},
		{ID: 1, Name: "b", Start: 10, End: 20, SelfValue: 10},
	}
	cmds := RenderRanked(spans, RankedSortBySelf, Viewport{Width: 800})
	if len(cmds) == 0 {
		t.Fatal("expected non-empty command stream")
	}
}

func TestRenderRankedEmpty(t *testing.T) {
	cmds := RenderRanked(nil, RankedSortBySelf, Viewport{Width: 800})
	if cmds != nil {
		t.Fatalf("expected nil for empty input, got %v", cmds)
	}
}
