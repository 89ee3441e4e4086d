package render

import "github.com/doom-fish/flamecat/internal/ir"

// MinimapRowHeight is the squashed row height used inside the minimap,
// far shorter than a normal flame row since the minimap only needs to
// convey shape, not readable labels.
const MinimapRowHeight = 3.0

// MinimapMaxDepth caps how many stack-depth rows the minimap draws; spans
// at this depth or deeper are not drawn, so the minimap never grows taller
// than this regardless of the profile's actual stack depth.
const MinimapMaxDepth = 8

// RenderMinimap draws a compressed overview of the full profile duration
// plus a highlight rect marking the window currently visible in the main
// view.
func RenderMinimap(spans []ir.Span, fullStart, fullEnd, visibleStart, visibleEnd float64, viewport Viewport) []Command {
	duration := fullEnd - fullStart
	if duration <= 0 {
		return nil
	}
	pxPerUnit := viewport.Width / duration

	var cmds []Command
	cmds = append(cmds, DrawRect{
		Rect:  Rect{X: viewport.X, Y: viewport.Y, W: viewport.Width, H: viewport.Height},
		Color: ThemeMinimapBackground,
	})

	for _, s := range spans {
		depth := s.Depth
		if depth >= MinimapMaxDepth {
			continue
		}
		start, end := s.Start, s.End
		if end < fullStart || start > fullEnd {
			continue
		}
		if start < fullStart {
			start = fullStart
		}
		if end > fullEnd {
			end = fullEnd
		}
		cmds = append(cmds, DrawRect{
			Rect: Rect{
				X: viewport.X + (start-fullStart)*pxPerUnit,
				Y: viewport.Y + float64(depth)*MinimapRowHeight,
				W: (end - start) * pxPerUnit,
				H: MinimapRowHeight,
			},
			Color: colorForDepth(depth),
		})
	}

	if visibleEnd > visibleStart {
		vStart := visibleStart
		if vStart < fullStart {
			vStart = fullStart
		}
		vEnd := visibleEnd
		if vEnd > fullEnd {
			vEnd = fullEnd
		}
		cmds = append(cmds, DrawRect{
			Rect: Rect{
				X: viewport.X + (vStart-fullStart)*pxPerUnit,
				Y: viewport.Y,
				W: (vEnd - vStart) * pxPerUnit,
				H: viewport.Height,
			},
			Color: ThemeMinimapViewport,
		})
	}

	return cmds
}
