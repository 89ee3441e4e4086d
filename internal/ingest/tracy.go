package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/doom-fish/flamecat/internal/ir"
)

type tracyZone struct {
	Name     string      `json:"name"`
	Start    float64     `json:"start"`
	End      float64     `json:"end"`
	Children []tracyZone `json:"children"`
}

type tracyThread struct {
	Name  string      `json:"name"`
	Zones []tracyZone `json:"zones"`
}

type tracyFile struct {
	Threads []tracyThread `json:"threads"`
}

// ParseTracy parses a Tracy profiler dump: a nested `zones` tree per
// thread, flattened by recursive DFS (§4.7).
func ParseTracy(data []byte) (*ir.VisualProfile, error) {
	var f tracyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ingest: tracy: %w", ir.ErrJSON)
	}
	if len(f.Threads) == 0 {
		return nil, fmt.Errorf("ingest: tracy: %w", ir.ErrNoThreads)
	}

	groups := make([]ir.ThreadGroup, 0, len(f.Threads))
	for ti, th := range f.Threads {
		if len(th.Zones) == 0 {
			return nil, fmt.Errorf("ingest: tracy: %w", ir.ErrNoZones)
		}
		var nextID uint64
		var spans []ir.Span
		for _, z := range th.Zones {
			spans = append(spans, flattenTracyZone(z, nil, 0, &nextID)...)
		}
		group := ir.ThreadGroup{ID: uint32(ti), Name: th.Name, Spans: spans}
		ir.FinalizeThread(&group)
		groups = append(groups, group)
	}

	profile := &ir.VisualProfile{
		Meta: ir.ProfileMeta{
			SourceFormat: ir.SourceFormatTracy,
			ValueUnit:    ir.ValueUnitMicroseconds,
		},
		Threads: groups,
	}
	ir.FinalizeProfile(profile)
	profile.Meta.TotalValue = profile.Meta.EndTime - profile.Meta.StartTime
	return profile, nil
}

func flattenTracyZone(z tracyZone, parent *uint64, depth uint32, nextID *uint64) []ir.Span {
	id := *nextID
	*nextID++
	self := ir.Span{
		ID:     id,
		Name:   z.Name,
		Start:  z.Start,
		End:    z.End,
		Depth:  depth,
		Parent: parent,
		Kind:   ir.SpanKindEvent,
	}
	out := []ir.Span{self}
	for _, c := range z.Children {
		out = append(out, flattenTracyZone(c, &id, depth+1, nextID)...)
	}
	return out
}
