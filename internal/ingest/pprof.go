package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/doom-fish/flamecat/internal/ir"
)

type pprofSample struct {
	LocationID []string  `json:"locationId"`
	Value      []float64 `json:"value"`
}

type pprofLocation struct {
	ID         string `json:"id"`
	FunctionID string `json:"functionId"`
}

type pprofFunction struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type pprofFile struct {
	Samples       []pprofSample   `json:"samples"`
	Locations     []pprofLocation `json:"locations"`
	Functions     []pprofFunction `json:"functions"`
	DurationNanos float64         `json:"duration_nanos"`
}

// ParsePprof parses the pprof JSON profile format, per §4.8. Each
// sample's locationId[] is leaf-first; it is reversed to root-first and
// laid out sequentially like collapsed stacks, weighted by value[0].
func ParsePprof(data []byte) (*ir.VisualProfile, error) {
	var f pprofFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ingest: pprof: %w", ir.ErrJSON)
	}
	if len(f.Samples) == 0 {
		return nil, fmt.Errorf("ingest: pprof: %w", ir.ErrNoSamples)
	}

	funcName := make(map[string]string, len(f.Functions))
	for _, fn := range f.Functions {
		funcName[fn.ID] = fn.Name
	}
	locFunc := make(map[string]string, len(f.Locations))
	for _, l := range f.Locations {
		locFunc[l.ID] = l.FunctionID
	}
	nameOf := func(locID string) string {
		return funcName[locFunc[locID]]
	}

	stacks := make([][]string, 0, len(f.Samples))
	weights := make([]float64, 0, len(f.Samples))
	for _, s := range f.Samples {
		names := make([]string, len(s.LocationID))
		for i, locID := range s.LocationID {
			// locationId is leaf-first; reverse into root-first order.
			names[len(s.LocationID)-1-i] = nameOf(locID)
		}
		stacks = append(stacks, names)
		weight := 0.0
		if len(s.Value) > 0 {
			weight = s.Value[0]
		}
		weights = append(weights, weight)
	}

	spans := layoutStacksSequential(stacks, weights, ir.SpanKindSample)
	thread := ir.ThreadGroup{ID: 0, Name: "pprof", Spans: spans}
	ir.FinalizeThread(&thread)

	profile := &ir.VisualProfile{
		Meta: ir.ProfileMeta{
			SourceFormat: ir.SourceFormatPprof,
			ValueUnit:    ir.ValueUnitWeight,
		},
		Threads: []ir.ThreadGroup{thread},
	}
	ir.FinalizeProfile(profile)

	if f.DurationNanos > 0 {
		profile.Meta.ValueUnit = ir.ValueUnitMicroseconds
		profile.Meta.EndTime = profile.Meta.StartTime + f.DurationNanos/1000.0
	}
	profile.Meta.TotalValue = profile.Meta.EndTime - profile.Meta.StartTime
	return profile, nil
}
