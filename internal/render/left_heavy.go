package render

import (
	"sort"

	"github.com/doom-fish/flamecat/internal/ir"
)

// MergedNode is one node of the tree produced by merging same-named
// siblings together, the building block of the left-heavy view.
type MergedNode struct {
	Name     string
	Total    float64
	Depth    uint32
	SpanIDs  []uint64
	Children []*MergedNode
}

func buildChildrenIndex(spans []ir.Span) (roots []ir.Span, childrenOf map[uint64][]ir.Span) {
	childrenOf = make(map[uint64][]ir.Span)
	for _, s := range spans {
		if s.Parent == nil {
			roots = append(roots, s)
		} else {
			childrenOf[*s.Parent] = append(childrenOf[*s.Parent], s)
		}
	}
	return roots, childrenOf
}

// mergeChildren groups siblings with identical names into one MergedNode
// each, recursively re-merging their combined children (re_merge).
func mergeChildren(siblings []ir.Span, childrenOf map[uint64][]ir.Span, depth uint32) []*MergedNode {
	if len(siblings) == 0 {
		return nil
	}

	type group struct {
		node       *MergedNode
		childSpans []ir.Span
	}
	order := make([]string, 0, len(siblings))
	groups := make(map[string]*group)

	for _, s := range siblings {
		g, ok := groups[s.Name]
		if !ok {
			g = &group{node: &MergedNode{Name: s.Name, Depth: depth}}
			groups[s.Name] = g
			order = append(order, s.Name)
		}
		g.node.Total += s.Duration()
		g.node.SpanIDs = append(g.node.SpanIDs, s.ID)
		g.childSpans = append(g.childSpans, childrenOf[s.ID]...)
	}

	nodes := make([]*MergedNode, 0, len(order))
	for _, name := range order {
		g := groups[name]
		g.node.Children = mergeChildren(g.childSpans, childrenOf, depth+1)
		nodes = append(nodes, g.node)
	}

	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Total > nodes[j].Total })
	return nodes
}

// RenderLeftHeavy merges identical call paths together and lays them out
// heaviest-first, left to right, the classic "left-heavy" flame graph.
func RenderLeftHeavy(spans []ir.Span, viewport Viewport) []Command {
	roots, childrenOf := buildChildrenIndex(spans)
	merged := mergeChildren(roots, childrenOf, 0)
	if len(merged) == 0 {
		return nil
	}

	var total float64
	for _, n := range merged {
		total += n.Total
	}
	if total <= 0 {
		return nil
	}
	pxPerUnit := viewport.Width / total

	var cmds []Command
	layoutNodes(merged, viewport.X, viewport.Y, pxPerUnit, &cmds)
	return cmds
}

func layoutNodes(nodes []*MergedNode, x, y, pxPerUnit float64, cmds *[]Command) {
	cursor := x
	for _, n := range nodes {
		width := n.Total * pxPerUnit
		rect := Rect{X: cursor, Y: y, W: width, H: RowHeight}
		var spanID *uint64
		if len(n.SpanIDs) > 0 {
			id := n.SpanIDs[0]
			spanID = &id
		}
		*cmds = append(*cmds, DrawRect{
			Rect:    rect,
			Color:   colorForDepth(n.Depth),
			FrameID: spanID,
		})
		if width >= MinLabelWidth && n.Name != "" {
			*cmds = append(*cmds, DrawText{
				Position: Point{X: cursor + 2, Y: y + RowHeight/2},
				Text:     n.Name,
				Color:    ThemeTextPrimary,
				FontSize: 11,
				Align:    TextAlignLeft,
			})
		}
		if len(n.Children) > 0 {
			layoutNodes(n.Children, cursor, y+RowHeight, pxPerUnit, cmds)
		}
		cursor += width
	}
}
