package render

import (
	"sort"

	"github.com/doom-fish/flamecat/internal/ir"
)

// SandwichEntry is one aggregated row of a caller or callee list: every
// span sharing a name is folded into a single entry.
type SandwichEntry struct {
	Name  string
	Total float64
	Count int
}

func sandwichIndex(spans []ir.Span) (byID map[uint64]ir.Span, childrenOf map[uint64][]ir.Span) {
	byID = make(map[uint64]ir.Span, len(spans))
	childrenOf = make(map[uint64][]ir.Span)
	for _, s := range spans {
		byID[s.ID] = s
		if s.Parent != nil {
			childrenOf[*s.Parent] = append(childrenOf[*s.Parent], s)
		}
	}
	return byID, childrenOf
}

// aggregateCallers walks up from each occurrence of the selected frame and
// credits every ancestor's name with that occurrence's full duration.
func aggregateCallers(byID map[uint64]ir.Span, occurrences []ir.Span) []SandwichEntry {
	totals := map[string]*SandwichEntry{}
	order := []string{}

	for _, occ := range occurrences {
		dur := occ.Duration()
		parentID := occ.Parent
		for parentID != nil {
			parent, ok := byID[*parentID]
			if !ok {
				break
			}
			e, seen := totals[parent.Name]
			if !seen {
				e = &SandwichEntry{Name: parent.Name}
				totals[parent.Name] = e
				order = append(order, parent.Name)
			}
			e.Total += dur
			e.Count++
			parentID = parent.Parent
		}
	}
	return sortedEntries(totals, order)
}

// aggregateCallees walks the subtree under each occurrence of the selected
// frame and credits every descendant's name with its own duration.
func aggregateCallees(childrenOf map[uint64][]ir.Span, occurrences []ir.Span) []SandwichEntry {
	totals := map[string]*SandwichEntry{}
	order := []string{}

	var visit func(id uint64)
	visit = func(id uint64) {
		for _, child := range childrenOf[id] {
			e, seen := totals[child.Name]
			if !seen {
				e = &SandwichEntry{Name: child.Name}
				totals[child.Name] = e
				order = append(order, child.Name)
			}
			e.Total += child.Duration()
			e.Count++
			visit(child.ID)
		}
	}
	for _, occ := range occurrences {
		visit(occ.ID)
	}
	return sortedEntries(totals, order)
}

func sortedEntries(totals map[string]*SandwichEntry, order []string) []SandwichEntry {
	entries := make([]SandwichEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, *totals[name])
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Total > entries[j].Total })
	return entries
}

// RenderSandwich shows, for a single selected frame name, every caller
// that led into it stacked above and every callee it led into stacked
// below, each aggregated across all occurrences.
func RenderSandwich(spans []ir.Span, selectedName string, viewport Viewport) []Command {
	byID, childrenOf := sandwichIndex(spans)

	var occurrences []ir.Span
	var selectedTotal float64
	for _, s := range spans {
		if s.Name == selectedName {
			occurrences = append(occurrences, s)
			selectedTotal += s.Duration()
		}
	}
	if len(occurrences) == 0 {
		return nil
	}

	callers := aggregateCallers(byID, occurrences)
	callees := aggregateCallees(childrenOf, occurrences)

	maxTotal := selectedTotal
	for _, e := range callers {
		if e.Total > maxTotal {
			maxTotal = e.Total
		}
	}
	for _, e := range callees {
		if e.Total > maxTotal {
			maxTotal = e.Total
		}
	}
	if maxTotal <= 0 {
		return nil
	}
	pxPerUnit := viewport.Width / maxTotal

	var cmds []Command
	y := viewport.Y
	y = renderSandwichGroup(&cmds, "callers", callers, viewport.X, y, pxPerUnit)

	cmds = append(cmds, DrawRect{
		Rect:  Rect{X: viewport.X, Y: y, W: selectedTotal * pxPerUnit, H: RowHeight},
		Color: ThemeSelectionHighlight,
	})
	cmds = append(cmds, DrawText{
		Position: Point{X: viewport.X + 2, Y: y + RowHeight/2},
		Text:     selectedName,
		Color:    ThemeTextPrimary,
		FontSize: 11,
		Align:    TextAlignLeft,
	})
	y += RowHeight

	renderSandwichGroup(&cmds, "callees", callees, viewport.X, y, pxPerUnit)
	return cmds
}

func renderSandwichGroup(cmds *[]Command, groupID string, entries []SandwichEntry, x, y, pxPerUnit float64) float64 {
	*cmds = append(*cmds, BeginGroup{ID: groupID})
	for _, e := range entries {
		width := e.Total * pxPerUnit
		*cmds = append(*cmds, DrawRect{
			Rect:  Rect{X: x, Y: y, W: width, H: RowHeight},
			Color: ThemeFlameNeutral,
		})
		if width >= MinLabelWidth {
			*cmds = append(*cmds, DrawText{
				Position: Point{X: x + 2, Y: y + RowHeight/2},
				Text:     e.Name,
				Color:    ThemeTextPrimary,
				FontSize: 11,
				Align:    TextAlignLeft,
			})
		}
		y += RowHeight
	}
	*cmds = append(*cmds, EndGroup{})
	return y
}
