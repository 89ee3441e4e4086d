package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/doom-fish/flamecat/internal/ir"
)

type reactCommit struct {
	FiberActualDurations [][2]float64 `json:"fiberActualDurations"`
	FiberSelfDurations   [][2]float64 `json:"fiberSelfDurations"`
	Timestamp            float64      `json:"timestamp"`
	Duration             float64      `json:"duration"`
}

type reactRoot struct {
	CommitData  []reactCommit `json:"commitData"`
	DisplayName *string       `json:"displayName"`
}

type reactFile struct {
	DataForRoots []reactRoot `json:"dataForRoots"`
}

// ParseReact parses a React DevTools profiler export, per §4.9. The
// format gives no parent links between fibers, so every span is emitted
// as an independent root with a rotating depth purely for visual
// layering — this parser is the one place invariant 3 (depth = parent's
// depth + 1) is intentionally relaxed, matching the source format's own
// limitations rather than fabricating structure.
func ParseReact(data []byte) (*ir.VisualProfile, error) {
	var f reactFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ingest: react: %w", ir.ErrJSON)
	}

	var spans []ir.Span
	var nextID uint64
	var name *string
	if len(f.DataForRoots) > 0 {
		name = f.DataForRoots[0].DisplayName
	}

	for _, root := range f.DataForRoots {
		for _, commit := range root.CommitData {
			selfDurations := make(map[float64]float64, len(commit.FiberSelfDurations))
			for _, pair := range commit.FiberSelfDurations {
				selfDurations[pair[0]] = pair[1]
			}

			offset := commit.Timestamp
			var depth uint32
			for _, pair := range commit.FiberActualDurations {
				fiberID, actual := pair[0], pair[1]
				if actual <= 0 {
					continue
				}
				id := nextID
				nextID++
				spans = append(spans, ir.Span{
					ID:        id,
					Name:      fmt.Sprintf("fiber-%d", int64(fiberID)),
					Start:     offset,
					End:       offset + actual,
					Depth:     depth % 8,
					Parent:    nil,
					SelfValue: selfDurations[fiberID],
					Kind:      ir.SpanKindEvent,
					Category:  &ir.SpanCategory{Name: "react"},
				})
				offset += actual
				depth++
			}
		}
	}

	thread := ir.ThreadGroup{ID: 0, Name: "React", Spans: spans}
	// React spans are independent roots by design; skip the shared
	// invariant repair pass (it would reset every parentless span's depth
	// to 0, erasing the rotating layering) but still sort by start time.
	sortSpansByStartOnly(thread.Spans)

	profile := &ir.VisualProfile{
		Meta: ir.ProfileMeta{
			Name:         name,
			SourceFormat: ir.SourceFormatReactDevTools,
			ValueUnit:    ir.ValueUnitMilliseconds,
			TimeDomain:   &ir.TimeDomain{ClockKind: ir.ClockKindPerformanceNow},
		},
		Threads: []ir.ThreadGroup{thread},
	}
	ir.FinalizeProfile(profile)
	profile.Meta.TotalValue = profile.Meta.EndTime - profile.Meta.StartTime
	return profile, nil
}

func sortSpansByStartOnly(spans []ir.Span) {
	for i := 1; i < len(spans); i++ {
		j := i
		for j > 0 && spans[j-1].Start > spans[j].Start {
			spans[j-1], spans[j] = spans[j], spans[j-1]
			j--
		}
	}
}
