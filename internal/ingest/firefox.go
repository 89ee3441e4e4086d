package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/doom-fish/flamecat/internal/ir"
)

type geckoStackTable struct {
	Frame  []int  `json:"frame"`
	Prefix []*int `json:"prefix"`
}

type geckoFrameTable struct {
	Func     []int `json:"func"`
	Category []int `json:"category"`
}

type geckoFuncTable struct {
	Name []int `json:"name"`
}

type geckoSamples struct {
	Stack []*int    `json:"stack"`
	Time  []float64 `json:"time"`
}

type geckoMarkers struct {
	Name      []int     `json:"name"`
	StartTime []float64 `json:"startTime"`
	EndTime   []any     `json:"endTime"`
	Category  []int     `json:"category"`
}

type geckoThread struct {
	Name        string          `json:"name"`
	StringArray []string        `json:"stringArray"`
	StackTable  geckoStackTable `json:"stackTable"`
	FrameTable  geckoFrameTable `json:"frameTable"`
	FuncTable   geckoFuncTable  `json:"funcTable"`
	Samples     geckoSamples    `json:"samples"`
	Markers     geckoMarkers    `json:"markers"`
}

type geckoProfile struct {
	Meta struct {
		StartTime float64 `json:"startTime"`
		Interval  float64 `json:"interval"`
	} `json:"meta"`
	Threads []geckoThread `json:"threads"`
}

// ParseFirefox parses the Firefox Gecko Profiler JSON format, per §4.5:
// stackTable/frameTable/funcTable/stringArray plus per-sample stack
// indices, unwound by following stackTable.prefix and merged with the
// same longest-common-prefix algorithm as the V8 sampled branch.
func ParseFirefox(data []byte) (*ir.VisualProfile, error) {
	var p geckoProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("ingest: firefox: %w", ir.ErrJSON)
	}
	if len(p.Threads) == 0 {
		return nil, fmt.Errorf("ingest: firefox: %w", ir.ErrNoThreads)
	}

	groups := make([]ir.ThreadGroup, 0, len(p.Threads))
	var markers []ir.Marker

	for ti, th := range p.Threads {
		if len(th.Samples.Time) == 0 {
			groups = append(groups, ir.ThreadGroup{ID: uint32(ti), Name: th.Name})
			continue
		}

		nameOf := geckoFrameNamer(th)

		var stacks [][]string
		var timestamps []float64
		for i, stackIdx := range th.Samples.Stack {
			if stackIdx == nil {
				continue
			}
			stacks = append(stacks, geckoUnwind(th.StackTable, nameOf, *stackIdx))
			timestamps = append(timestamps, p.Meta.StartTime+th.Samples.Time[i])
		}
		if len(stacks) == 0 {
			groups = append(groups, ir.ThreadGroup{ID: uint32(ti), Name: th.Name})
			continue
		}

		endTime := timestamps[len(timestamps)-1] + p.Meta.Interval
		spans := lcpMerge(stacks, timestamps, endTime, ir.SpanKindSample)

		group := ir.ThreadGroup{ID: uint32(ti), Name: th.Name, Spans: spans}
		ir.FinalizeThread(&group)
		groups = append(groups, group)

		for i, nameIdx := range th.Markers.Name {
			if nameIdx < 0 || nameIdx >= len(th.StringArray) {
				continue
			}
			if i >= len(th.Markers.StartTime) {
				continue
			}
			var end *float64
			if i < len(th.Markers.EndTime) {
				if v, ok := th.Markers.EndTime[i].(float64); ok {
					e := p.Meta.StartTime + v
					end = &e
				}
			}
			markers = append(markers, ir.Marker{
				Name:  th.StringArray[nameIdx],
				Start: p.Meta.StartTime + th.Markers.StartTime[i],
				End:   end,
			})
		}
	}

	profile := &ir.VisualProfile{
		Meta: ir.ProfileMeta{
			SourceFormat: ir.SourceFormatFirefoxGecko,
			ValueUnit:    ir.ValueUnitMilliseconds,
			TimeDomain:   &ir.TimeDomain{ClockKind: ir.ClockKindPerformanceNow},
		},
		Threads: groups,
		Markers: markers,
	}
	ir.FinalizeProfile(profile)
	profile.Meta.TotalValue = profile.Meta.EndTime - profile.Meta.StartTime
	return profile, nil
}

// geckoFrameNamer resolves a frame index to its display name: through
// funcTable when present, else treating frameTable.func as a direct
// string-table index (§4.5's explicit fallback).
func geckoFrameNamer(th geckoThread) func(frameIdx int) string {
	return func(frameIdx int) string {
		if frameIdx < 0 || frameIdx >= len(th.FrameTable.Func) {
			return ""
		}
		funcOrStringIdx := th.FrameTable.Func[frameIdx]
		if len(th.FuncTable.Name) > 0 {
			if funcOrStringIdx < 0 || funcOrStringIdx >= len(th.FuncTable.Name) {
				return ""
			}
			nameIdx := th.FuncTable.Name[funcOrStringIdx]
			if nameIdx < 0 || nameIdx >= len(th.StringArray) {
				return ""
			}
			return th.StringArray[nameIdx]
		}
		if funcOrStringIdx < 0 || funcOrStringIdx >= len(th.StringArray) {
			return ""
		}
		return th.StringArray[funcOrStringIdx]
	}
}

// geckoUnwind walks stackTable.prefix from stackIdx to the root, returning
// a root-to-leaf list of frame names.
func geckoUnwind(st geckoStackTable, nameOf func(int) string, stackIdx int) []string {
	var chain []int
	cur := &stackIdx
	for cur != nil {
		chain = append(chain, *cur)
		if *cur < 0 || *cur >= len(st.Prefix) {
			break
		}
		cur = st.Prefix[*cur]
	}
	names := make([]string, len(chain))
	for i, idx := range chain {
		frameIdx := -1
		if idx >= 0 && idx < len(st.Frame) {
			frameIdx = st.Frame[idx]
		}
		names[len(chain)-1-i] = nameOf(frameIdx)
	}
	return names
}
