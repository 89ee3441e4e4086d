package render

import (
	"fmt"
	"math"
)

// niceIntervalSteps are the per-decade multipliers considered when
// rounding a rough tick spacing up to a human-friendly one.
var niceIntervalSteps = []float64{1, 2, 5, 10}

// niceInterval rounds rough up to the smallest "nice" spacing (1/2/5 times
// a power of ten) that is no smaller than it, so axis ticks land on round
// numbers instead of arbitrary fractions.
func niceInterval(rough float64) float64 {
	if rough <= 0 {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(rough)))
	for _, step := range niceIntervalSteps {
		candidate := step * magnitude
		if candidate >= rough {
			return candidate
		}
	}
	return 10 * magnitude
}

// isAligned reports whether value falls on a multiple of interval, within
// floating-point tolerance.
func isAligned(value, interval float64) bool {
	if interval <= 0 {
		return false
	}
	remainder := math.Mod(value, interval)
	tolerance := interval * 1e-6
	return remainder < tolerance || interval-remainder < tolerance
}

// formatTimeAxisLabel renders a microsecond tick value the way the time
// axis's tick labels display it.
func formatTimeAxisLabel(us float64) string {
	switch {
	case math.Abs(us) < 1_000:
		return fmt.Sprintf("%gµs", us)
	case math.Abs(us) < 1_000_000:
		return fmt.Sprintf("%gms", us/1_000)
	default:
		return fmt.Sprintf("%gs", us/1_000_000)
	}
}

// RenderTimeAxis draws a tick ruler across the visible time window:
// one gridline plus one text label per nice interval.
func RenderTimeAxis(viewport Viewport, visibleStart, visibleEnd float64, targetTickCount int) []Command {
	duration := visibleEnd - visibleStart
	if duration <= 0 || targetTickCount <= 0 {
		return nil
	}
	interval := niceInterval(duration / float64(targetTickCount))
	pxPerUnit := viewport.Width / duration

	first := math.Ceil(visibleStart/interval) * interval

	var cmds []Command
	for tick := first; tick <= visibleEnd; tick += interval {
		x := viewport.X + (tick-visibleStart)*pxPerUnit
		cmds = append(cmds,
			DrawLine{
				From:  Point{X: x, Y: viewport.Y},
				To:    Point{X: x, Y: viewport.Y + viewport.Height},
				Color: ThemeLaneBorder,
				Width: 1,
			},
			DrawText{
				Position: Point{X: x + 2, Y: viewport.Y + 10},
				Text:     formatTimeAxisLabel(tick),
				Color:    ThemeTextMuted,
				FontSize: 10,
				Align:    TextAlignLeft,
			},
		)
	}
	return cmds
}
