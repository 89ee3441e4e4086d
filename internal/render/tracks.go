package render

import "github.com/doom-fish/flamecat/internal/ir"

// CounterTrackHeight is the pixel height allotted to one counter track lane.
const CounterTrackHeight = 32.0

// RenderCounterTrack draws a numeric series as a connected line, scaled
// to its own min/max within the visible window.
func RenderCounterTrack(series ir.CounterSeries, viewport Viewport, visibleStart, visibleEnd float64) []Command {
	samples := visibleCounterSamples(series.Samples, visibleStart, visibleEnd)
	if len(samples) == 0 {
		return nil
	}

	minV, maxV := samples[0].Value, samples[0].Value
	for _, s := range samples {
		if s.Value < minV {
			minV = s.Value
		}
		if s.Value > maxV {
			maxV = s.Value
		}
	}
	valueRange := maxV - minV
	if valueRange == 0 {
		valueRange = 1
	}

	duration := visibleEnd - visibleStart
	if duration <= 0 {
		return nil
	}
	pxPerUnit := viewport.Width / duration

	toPoint := func(s ir.CounterSample) Point {
		return Point{
			X: viewport.X + (s.T-visibleStart)*pxPerUnit,
			Y: viewport.Y + viewport.Height - (s.Value-minV)/valueRange*viewport.Height,
		}
	}

	cmds := []Command{BeginGroup{ID: "counter:" + series.Name}}
	for i := 1; i < len(samples); i++ {
		cmds = append(cmds, DrawLine{
			From:  toPoint(samples[i-1]),
			To:    toPoint(samples[i]),
			Color: ThemeFlameWarm,
			Width: 1.5,
		})
	}
	cmds = append(cmds, EndGroup{})
	return cmds
}

func visibleCounterSamples(samples []ir.CounterSample, start, end float64) []ir.CounterSample {
	var out []ir.CounterSample
	for _, s := range samples {
		if s.T >= start && s.T <= end {
			out = append(out, s)
		}
	}
	return out
}

// AsyncTrackRowHeight is the pixel height of one async-span lane.
const AsyncTrackRowHeight = 16.0

// RenderAsyncTrack lays out non-nesting spans (promises, fetches, GPU
// fences) by their explicit lane, since unlike call-stack spans they can
// overlap within the same logical row.
func RenderAsyncTrack(spans []ir.AsyncSpan, viewport Viewport, visibleStart, visibleEnd float64) []Command {
	duration := visibleEnd - visibleStart
	if duration <= 0 {
		return nil
	}
	pxPerUnit := viewport.Width / duration

	var cmds []Command
	for _, s := range spans {
		if s.End < visibleStart || s.Start > visibleEnd {
			continue
		}
		start, end := s.Start, s.End
		if start < visibleStart {
			start = visibleStart
		}
		if end > visibleEnd {
			end = visibleEnd
		}
		rect := Rect{
			X: viewport.X + (start-visibleStart)*pxPerUnit,
			Y: viewport.Y + float64(s.Lane)*AsyncTrackRowHeight,
			W: (end - start) * pxPerUnit,
			H: AsyncTrackRowHeight,
		}
		frameID := s.ID
		cmds = append(cmds, DrawRect{Rect: rect, Color: ThemeFlameCold, FrameID: &frameID})
		if rect.W >= MinLabelWidth && s.Name != "" {
			cmds = append(cmds, DrawText{
				Position: Point{X: rect.X + 2, Y: rect.Y + AsyncTrackRowHeight/2},
				Text:     s.Name,
				Color:    ThemeTextPrimary,
				FontSize: 10,
				Align:    TextAlignLeft,
			})
		}
	}
	return cmds
}

// MarkerTrackHeight is the pixel height of the single markers lane.
const MarkerTrackHeight = 14.0

// RenderMarkersTrack draws one small tick per marker, with a trailing
// bar for markers that carry an end time.
func RenderMarkersTrack(markers []ir.Marker, viewport Viewport, visibleStart, visibleEnd float64) []Command {
	duration := visibleEnd - visibleStart
	if duration <= 0 {
		return nil
	}
	pxPerUnit := viewport.Width / duration

	var cmds []Command
	for _, m := range markers {
		end := m.Start
		if m.End != nil {
			end = *m.End
		}
		if end < visibleStart || m.Start > visibleEnd {
			continue
		}
		start := m.Start
		if start < visibleStart {
			start = visibleStart
		}
		if end > visibleEnd {
			end = visibleEnd
		}
		width := (end - start) * pxPerUnit
		if width < 2 {
			width = 2
		}
		cmds = append(cmds, DrawRect{
			Rect:  Rect{X: viewport.X + (start-visibleStart)*pxPerUnit, Y: viewport.Y, W: width, H: MarkerTrackHeight},
			Color: ThemeSelectionHighlight,
		})
	}
	return cmds
}

// ObjectTrackRowHeight is the pixel height of one object's lifetime lane.
const ObjectTrackRowHeight = 12.0

// RenderObjectTrack draws one lifetime bar per tracked object, from
// creation to destruction (or to the visible window's end, for objects
// never freed within it).
func RenderObjectTrack(events []ir.ObjectEvent, viewport Viewport, visibleStart, visibleEnd float64) []Command {
	duration := visibleEnd - visibleStart
	if duration <= 0 {
		return nil
	}
	pxPerUnit := viewport.Width / duration

	var cmds []Command
	for i, e := range events {
		destroyedAt := visibleEnd
		if e.DestroyedAt != nil {
			destroyedAt = *e.DestroyedAt
		}
		if destroyedAt < visibleStart || e.CreatedAt > visibleEnd {
			continue
		}
		start := e.CreatedAt
		if start < visibleStart {
			start = visibleStart
		}
		end := destroyedAt
		if end > visibleEnd {
			end = visibleEnd
		}
		rect := Rect{
			X: viewport.X + (start-visibleStart)*pxPerUnit,
			Y: viewport.Y + float64(i)*ObjectTrackRowHeight,
			W: (end - start) * pxPerUnit,
			H: ObjectTrackRowHeight,
		}
		cmds = append(cmds, DrawRect{Rect: rect, Color: ThemeFlameNeutral})
		if rect.W >= MinLabelWidth && e.Name != "" {
			cmds = append(cmds, DrawText{
				Position: Point{X: rect.X + 2, Y: rect.Y + ObjectTrackRowHeight/2},
				Text:     e.Name,
				Color:    ThemeTextPrimary,
				FontSize: 9,
				Align:    TextAlignLeft,
			})
		}
	}
	return cmds
}

// CpuSampleTrackHeight is the pixel height of the CPU-samples density lane.
const CpuSampleTrackHeight = 20.0

// RenderCPUSamplesTrack draws one tick per raw sample, the density of
// ticks conveying sampling rate and gaps independently of the
// reconstructed span tree.
func RenderCPUSamplesTrack(samples []ir.CpuSample, viewport Viewport, visibleStart, visibleEnd float64) []Command {
	duration := visibleEnd - visibleStart
	if duration <= 0 {
		return nil
	}
	pxPerUnit := viewport.Width / duration

	var cmds []Command
	for _, s := range samples {
		if s.T < visibleStart || s.T > visibleEnd {
			continue
		}
		x := viewport.X + (s.T-visibleStart)*pxPerUnit
		cmds = append(cmds, DrawLine{
			From:  Point{X: x, Y: viewport.Y},
			To:    Point{X: x, Y: viewport.Y + CpuSampleTrackHeight},
			Color: ThemeFlameHot,
			Width: 1,
		})
	}
	return cmds
}
