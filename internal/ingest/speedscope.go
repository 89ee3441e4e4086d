package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/doom-fish/flamecat/internal/ir"
)

type speedscopeFrame struct {
	Name string `json:"name"`
}

type speedscopeEvent struct {
	Type  string  `json:"type"`
	At    float64 `json:"at"`
	Frame int     `json:"frame"`
}

type speedscopeProfile struct {
	Type    string            `json:"type"`
	Name    string            `json:"name"`
	Unit    string            `json:"unit"`
	Events  []speedscopeEvent `json:"events"`
	Samples [][]int           `json:"samples"`
	Weights []float64         `json:"weights"`
}

type speedscopeFile struct {
	Schema string `json:"$schema"`
	Shared struct {
		Frames []speedscopeFrame `json:"frames"`
	} `json:"shared"`
	Profiles []speedscopeProfile `json:"profiles"`
}

func speedscopeUnit(unit string) ir.ValueUnit {
	switch unit {
	case "nanoseconds":
		return ir.ValueUnitNanoseconds
	case "microseconds":
		return ir.ValueUnitMicroseconds
	case "milliseconds":
		return ir.ValueUnitMilliseconds
	case "bytes":
		return ir.ValueUnitBytes
	default:
		return ir.ValueUnitMilliseconds
	}
}

// ParseSpeedscope parses the Speedscope file format (evented or sampled
// profile types), per §4.6. Every evented or sampled entry in `profiles[]`
// becomes one ThreadGroup; entries of any other type are skipped.
func ParseSpeedscope(data []byte) (*ir.VisualProfile, error) {
	var f speedscopeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ingest: speedscope: %w", ir.ErrJSON)
	}
	if len(f.Profiles) == 0 {
		return nil, fmt.Errorf("ingest: speedscope: %w", ir.ErrNoThreads)
	}

	frameName := func(idx int) string {
		if idx < 0 || idx >= len(f.Shared.Frames) {
			return ""
		}
		return f.Shared.Frames[idx].Name
	}

	var unit ir.ValueUnit
	groups := make([]ir.ThreadGroup, 0, len(f.Profiles))

	for pi, prof := range f.Profiles {
		unit = speedscopeUnit(prof.Unit)
		var spans []ir.Span

		switch prof.Type {
		case "evented":
			spans = speedscopeEvented(prof, frameName)
		case "sampled":
			stacks := make([][]string, len(prof.Samples))
			for i, s := range prof.Samples {
				names := make([]string, len(s))
				for j, frameIdx := range s {
					names[j] = frameName(frameIdx)
				}
				stacks[i] = names
			}
			weights := prof.Weights
			if weights == nil {
				weights = make([]float64, len(stacks))
				for i := range weights {
					weights[i] = 1
				}
			}
			spans = layoutStacksSequential(stacks, weights, ir.SpanKindSample)
		default:
			continue
		}

		group := ir.ThreadGroup{ID: uint32(pi), Name: prof.Name, Spans: spans}
		ir.FinalizeThread(&group)
		groups = append(groups, group)
	}

	if unit == "" {
		unit = ir.ValueUnitMilliseconds
	}

	profile := &ir.VisualProfile{
		Meta: ir.ProfileMeta{
			SourceFormat: ir.SourceFormatSpeedscope,
			ValueUnit:    unit,
		},
		Threads: groups,
	}
	ir.FinalizeProfile(profile)
	profile.Meta.TotalValue = profile.Meta.EndTime - profile.Meta.StartTime
	return profile, nil
}

func speedscopeEvented(prof speedscopeProfile, frameName func(int) string) []ir.Span {
	var spans []ir.Span
	var stack []int // indices into spans
	var nextID uint64

	for _, ev := range prof.Events {
		switch ev.Type {
		case "O":
			var parent *uint64
			if len(stack) > 0 {
				p := spans[stack[len(stack)-1]].ID
				parent = &p
			}
			spans = append(spans, ir.Span{
				ID:     nextID,
				Name:   frameName(ev.Frame),
				Start:  ev.At,
				End:    ev.At,
				Depth:  uint32(len(stack)),
				Parent: parent,
				Kind:   ir.SpanKindEvent,
			})
			nextID++
			stack = append(stack, len(spans)-1)
		case "C":
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			spans[top].End = ev.At
		}
	}
	for _, idx := range stack {
		if spans[idx].End < spans[idx].Start {
			spans[idx].End = spans[idx].Start
		}
	}
	return spans
}
