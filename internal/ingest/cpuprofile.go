package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/doom-fish/flamecat/internal/ir"
)

type v8CallFrame struct {
	FunctionName string `json:"functionName"`
	URL          string `json:"url"`
}

type v8Node struct {
	ID        int         `json:"id"`
	CallFrame v8CallFrame `json:"callFrame"`
	Children  []int       `json:"children"`
	HitCount  int         `json:"hitCount"`
}

type v8Profile struct {
	Nodes      []v8Node  `json:"nodes"`
	StartTime  float64   `json:"startTime"`
	EndTime    float64   `json:"endTime"`
	Samples    []int     `json:"samples"`
	TimeDeltas []float64 `json:"timeDeltas"`
}

func v8Name(cf v8CallFrame) string {
	if cf.FunctionName == "" {
		return "(anonymous)"
	}
	return cf.FunctionName
}

// ParseCPUProfile parses a V8 `.cpuprofile` JSON document, per §4.4. It
// prefers the sampled branch (samples[]/timeDeltas[] both populated) and
// falls back to a synthetic tree-DFS layout when sample data is absent.
func ParseCPUProfile(data []byte) (*ir.VisualProfile, error) {
	var p v8Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("ingest: cpuprofile: %w", ir.ErrJSON)
	}
	if len(p.Nodes) == 0 {
		return nil, fmt.Errorf("ingest: cpuprofile: %w", ir.ErrMissingNodes)
	}

	byID := make(map[int]v8Node, len(p.Nodes))
	parentOf := make(map[int]int, len(p.Nodes))
	isChild := make(map[int]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		byID[n.ID] = n
	}
	for _, n := range p.Nodes {
		for _, c := range n.Children {
			parentOf[c] = n.ID
			isChild[c] = true
		}
	}

	var spans []ir.Span
	var totalValue float64

	if len(p.Samples) > 0 && len(p.TimeDeltas) > 0 {
		n := len(p.Samples)
		if len(p.TimeDeltas) < n {
			n = len(p.TimeDeltas)
		}
		timestamps := make([]float64, n)
		t := p.StartTime
		for i := 0; i < n; i++ {
			t += p.TimeDeltas[i]
			timestamps[i] = t
		}

		stacks := make([][]string, n)
		for i := 0; i < n; i++ {
			stacks[i] = rootToLeafNames(byID, parentOf, p.Samples[i])
		}

		endTime := p.EndTime
		if endTime < timestamps[n-1] {
			endTime = timestamps[n-1]
		}
		spans = lcpMerge(stacks, timestamps, endTime, ir.SpanKindSample)
		totalValue = endTime - p.StartTime
	} else {
		root := findRootNode(p.Nodes, isChild)
		if root == nil {
			return nil, fmt.Errorf("ingest: cpuprofile: %w", ir.ErrNoSamples)
		}
		var nextID uint64
		offset := 0.0
		spans = dfsTreeLayout(byID, *root, nil, 0, &offset, &nextID)
		totalValue = offset

		if p.EndTime-p.StartTime > 0 && offset > 0 {
			scale := (p.EndTime - p.StartTime) / offset
			for i := range spans {
				spans[i].Start = spans[i].Start*scale + p.StartTime
				spans[i].End = spans[i].End*scale + p.StartTime
			}
			totalValue = p.EndTime - p.StartTime
		}
	}

	thread := ir.ThreadGroup{ID: 0, Name: "main", Spans: spans}
	ir.FinalizeThread(&thread)

	profile := &ir.VisualProfile{
		Meta: ir.ProfileMeta{
			SourceFormat: ir.SourceFormatCpuProfile,
			ValueUnit:    ir.ValueUnitMicroseconds,
			TotalValue:   totalValue,
		},
		Threads: []ir.ThreadGroup{thread},
	}
	ir.FinalizeProfile(profile)
	return profile, nil
}

func rootToLeafNames(byID map[int]v8Node, parentOf map[int]int, leaf int) []string {
	var chain []int
	cur := leaf
	for {
		chain = append(chain, cur)
		p, ok := parentOf[cur]
		if !ok {
			break
		}
		cur = p
	}
	names := make([]string, len(chain))
	for i, id := range chain {
		names[len(chain)-1-i] = v8Name(byID[id].CallFrame)
	}
	return names
}

func findRootNode(nodes []v8Node, isChild map[int]bool) *v8Node {
	for i := range nodes {
		if !isChild[nodes[i].ID] {
			return &nodes[i]
		}
	}
	return nil
}

func dfsTreeLayout(byID map[int]v8Node, node v8Node, parent *uint64, depth uint32, offset *float64, nextID *uint64) []ir.Span {
	if len(node.Children) == 0 {
		id := *nextID
		*nextID++
		start := *offset
		*offset++
		span := ir.Span{
			ID:        id,
			Name:      v8Name(node.CallFrame),
			Start:     start,
			End:       *offset,
			Depth:     depth,
			Parent:    parent,
			SelfValue: 1,
			Kind:      ir.SpanKindSynthetic,
			Category:  categoryFromURL(node.CallFrame.URL),
		}
		return []ir.Span{span}
	}

	id := *nextID
	*nextID++
	start := *offset
	var out []ir.Span
	pid := id
	for _, childID := range node.Children {
		child := byID[childID]
		out = append(out, dfsTreeLayout(byID, child, &pid, depth+1, offset, nextID)...)
	}
	self := ir.Span{
		ID:       id,
		Name:     v8Name(node.CallFrame),
		Start:    start,
		End:      *offset,
		Depth:    depth,
		Parent:   parent,
		Kind:     ir.SpanKindSynthetic,
		Category: categoryFromURL(node.CallFrame.URL),
	}
	return append([]ir.Span{self}, out...)
}

func categoryFromURL(url string) *ir.SpanCategory {
	if url == "" {
		return nil
	}
	return &ir.SpanCategory{Name: url}
}
