package render

import (
	"fmt"
	"sort"

	"github.com/doom-fish/flamecat/internal/ir"
)

// RankedSort selects the column the ranked table is ordered by.
type RankedSort string

const (
	RankedSortBySelf  RankedSort = "self"
	RankedSortByTotal RankedSort = "total"
	RankedSortByCount RankedSort = "count"
	RankedSortByName  RankedSort = "name"
)

// RankedEntry is one row of the ranked table: every span sharing a name
// folded into aggregate self time, total time and occurrence count.
type RankedEntry struct {
	Name  string
	Self  float64
	Total float64
	Count int
}

// AggregateRanked folds spans with identical names into one RankedEntry
// each, in first-seen order.
func AggregateRanked(spans []ir.Span) []RankedEntry {
	byName := map[string]*RankedEntry{}
	order := []string{}
	for _, s := range spans {
		e, ok := byName[s.Name]
		if !ok {
			e = &RankedEntry{Name: s.Name}
			byName[s.Name] = e
			order = append(order, s.Name)
		}
		e.Self += s.SelfValue
		e.Total += s.Duration()
		e.Count++
	}
	entries := make([]RankedEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, *byName[name])
	}
	return entries
}

// SortRanked orders entries in place by the requested column, descending
// for numeric columns and ascending for name.
func SortRanked(entries []RankedEntry, by RankedSort) {
	switch by {
	case RankedSortBySelf:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Self > entries[j].Self })
	case RankedSortByTotal:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Total > entries[j].Total })
	case RankedSortByCount:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	case RankedSortByName:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	}
}

const (
	rankedNameColX   = 0.0
	rankedNameColW   = 280.0
	rankedSelfColX   = rankedNameColX + rankedNameColW
	rankedSelfColW   = 90.0
	rankedTotalColX  = rankedSelfColX + rankedSelfColW
	rankedTotalColW  = 90.0
	rankedCountColX  = rankedTotalColX + rankedTotalColW
	rankedCountColW  = 60.0
	rankedBarColX    = rankedCountColX + rankedCountColW
	rankedHeaderRowH = RowHeight
)

// formatRankedTime renders a microsecond duration the way the ranked
// table's Self/Total columns display it.
func formatRankedTime(us float64) string {
	switch {
	case us < 1_000:
		return fmt.Sprintf("%.0fµs", us)
	case us < 1_000_000:
		return fmt.Sprintf("%.2fms", us/1_000)
	default:
		return fmt.Sprintf("%.2fs", us/1_000_000)
	}
}

// RenderRanked lays out spans aggregated by name as a sortable table: a
// header row, one row per name, and a proportional bar in the trailing
// column.
func RenderRanked(spans []ir.Span, by RankedSort, viewport Viewport) []Command {
	entries := AggregateRanked(spans)
	if len(entries) == 0 {
		return nil
	}
	SortRanked(entries, by)

	var maxSelf float64
	for _, e := range entries {
		if e.Self > maxSelf {
			maxSelf = e.Self
		}
	}
	barColW := viewport.Width - rankedBarColX
	pxPerUnit := 0.0
	if maxSelf > 0 && barColW > 0 {
		pxPerUnit = barColW / maxSelf
	}

	cmds := make([]Command, 0, len(entries)*6+8)
	cmds = append(cmds, DrawRect{
		Rect:  Rect{X: viewport.X, Y: viewport.Y, W: viewport.Width, H: rankedHeaderRowH},
		Color: ThemeTableHeaderBackground,
	})
	headers := []struct {
		text string
		x    float64
	}{
		{"Name", rankedNameColX}, {"Self", rankedSelfColX},
		{"Total", rankedTotalColX}, {"Count", rankedCountColX},
	}
	for _, h := range headers {
		cmds = append(cmds, DrawText{
			Position: Point{X: viewport.X + h.x + 4, Y: viewport.Y + rankedHeaderRowH/2},
			Text:     h.text,
			Color:    ThemeTextSecondary,
			FontSize: 11,
			Align:    TextAlignLeft,
		})
	}

	y := viewport.Y + rankedHeaderRowH
	for i, e := range entries {
		rowColor := ThemeTableRowEven
		if i%2 == 1 {
			rowColor = ThemeTableRowOdd
		}
		cmds = append(cmds, DrawRect{
			Rect:  Rect{X: viewport.X, Y: y, W: viewport.Width, H: RowHeight},
			Color: rowColor,
		})
		cmds = append(cmds,
			DrawText{Position: Point{X: viewport.X + rankedNameColX + 4, Y: y + RowHeight/2}, Text: e.Name, Color: ThemeTextPrimary, FontSize: 11, Align: TextAlignLeft},
			DrawText{Position: Point{X: viewport.X + rankedSelfColX + 4, Y: y + RowHeight/2}, Text: formatRankedTime(e.Self), Color: ThemeTextPrimary, FontSize: 11, Align: TextAlignLeft},
			DrawText{Position: Point{X: viewport.X + rankedTotalColX + 4, Y: y + RowHeight/2}, Text: formatRankedTime(e.Total), Color: ThemeTextPrimary, FontSize: 11, Align: TextAlignLeft},
			DrawText{Position: Point{X: viewport.X + rankedCountColX + 4, Y: y + RowHeight/2}, Text: fmt.Sprintf("%d", e.Count), Color: ThemeTextPrimary, FontSize: 11, Align: TextAlignLeft},
		)
		if pxPerUnit > 0 {
			cmds = append(cmds, DrawRect{
				Rect:  Rect{X: viewport.X + rankedBarColX, Y: y + 2, W: e.Self * pxPerUnit, H: RowHeight - 4},
				Color: ThemeBarFill,
			})
		}
		y += RowHeight
	}
	return cmds
}
