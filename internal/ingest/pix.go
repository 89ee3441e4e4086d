package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/doom-fish/flamecat/internal/ir"
)

type pixEvent struct {
	Name     string     `json:"name"`
	Start    float64    `json:"start"`
	End      *float64   `json:"end"`
	Duration *float64   `json:"duration"`
	Children []pixEvent `json:"children"`
}

type pixFile struct {
	Events []pixEvent `json:"events"`
}

// ParsePIX parses a PIX GPU-capture-style nested `events` tree, flattened
// by recursive DFS (§4.7). PIX may give `duration` instead of `end`; end
// is derived as start+duration in that case.
func ParsePIX(data []byte) (*ir.VisualProfile, error) {
	var f pixFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ingest: pix: %w", ir.ErrJSON)
	}
	if len(f.Events) == 0 {
		return nil, fmt.Errorf("ingest: pix: %w", ir.ErrEmpty)
	}

	var nextID uint64
	var spans []ir.Span
	for _, e := range f.Events {
		spans = append(spans, flattenPixEvent(e, nil, 0, &nextID)...)
	}

	thread := ir.ThreadGroup{ID: 0, Name: "PIX", Spans: spans}
	ir.FinalizeThread(&thread)

	profile := &ir.VisualProfile{
		Meta: ir.ProfileMeta{
			SourceFormat: ir.SourceFormatPix,
			ValueUnit:    ir.ValueUnitMicroseconds,
		},
		Threads: []ir.ThreadGroup{thread},
	}
	ir.FinalizeProfile(profile)
	profile.Meta.TotalValue = profile.Meta.EndTime - profile.Meta.StartTime
	return profile, nil
}

func flattenPixEvent(e pixEvent, parent *uint64, depth uint32, nextID *uint64) []ir.Span {
	end := e.Start
	switch {
	case e.End != nil:
		end = *e.End
	case e.Duration != nil:
		end = e.Start + *e.Duration
	}

	id := *nextID
	*nextID++
	self := ir.Span{
		ID:     id,
		Name:   e.Name,
		Start:  e.Start,
		End:    end,
		Depth:  depth,
		Parent: parent,
		Kind:   ir.SpanKindEvent,
	}
	out := []ir.Span{self}
	for _, c := range e.Children {
		out = append(out, flattenPixEvent(c, &id, depth+1, nextID)...)
	}
	return out
}
