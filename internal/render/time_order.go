package render

import "github.com/doom-fish/flamecat/internal/ir"

// RowHeight is the pixel height of one row in the time-order, left-heavy,
// sandwich and ranked views; the minimap uses MinimapRowHeight instead.
const RowHeight = 18.0

// MinLabelWidth is the smallest rect width, in pixels, that gets a text
// label drawn on top of it. Narrower rects are still drawn, just bare.
const MinLabelWidth = 20.0

// RenderTimeOrder lays a thread's spans out left-to-right by their actual
// start time, one row per stack depth. Spans entirely outside
// [visibleStart, visibleEnd] are culled before layout.
func RenderTimeOrder(spans []ir.Span, viewport Viewport, visibleStart, visibleEnd float64) []Command {
	visible := make([]ir.Span, 0, len(spans))
	for _, s := range spans {
		if s.End < visibleStart || s.Start > visibleEnd {
			continue
		}
		visible = append(visible, s)
	}
	if len(visible) == 0 {
		return nil
	}

	duration := visibleEnd - visibleStart
	if duration <= 0 {
		return nil
	}
	pxPerUnit := viewport.Width / duration

	cmds := make([]Command, 0, len(visible)*2)
	for _, s := range visible {
		start := s.Start
		if start < visibleStart {
			start = visibleStart
		}
		end := s.End
		if end > visibleEnd {
			end = visibleEnd
		}

		rect := Rect{
			X: viewport.X + (start-visibleStart)*pxPerUnit,
			Y: viewport.Y + float64(s.Depth)*RowHeight,
			W: (end - start) * pxPerUnit,
			H: RowHeight,
		}
		if rect.W < 0.5 {
			continue
		}
		frameID := s.ID
		cmds = append(cmds, DrawRect{
			Rect:    rect,
			Color:   colorForDepth(s.Depth),
			FrameID: &frameID,
		})
		if rect.W >= MinLabelWidth && s.Name != "" {
			cmds = append(cmds, DrawText{
				Position: Point{X: rect.X + 2, Y: rect.Y + RowHeight/2},
				Text:     s.Name,
				Color:    ThemeTextPrimary,
				FontSize: 11,
				Align:    TextAlignLeft,
			})
		}
	}
	return cmds
}
