package ingest

import "github.com/doom-fish/flamecat/internal/ir"

// layoutStacksSequential lays out a sequence of root-to-leaf stacks one
// after another on a synthetic timeline, each stack occupying a
// contiguous [offset, offset+weight) interval with every frame in the
// stack spanning the *entire* interval (so callers contain callees by
// construction, per the collapsed-stacks layout rule shared by the
// collapsed, pprof, and bpftrace parsers). The leaf frame gets
// self_value=weight; Finalize recomputes everyone else's self_value to 0
// since their child already spans their whole interval.
func layoutStacksSequential(stacks [][]string, weights []float64, kind ir.SpanKind) []ir.Span {
	var spans []ir.Span
	var nextID uint64
	offset := 0.0

	for i, stack := range stacks {
		if len(stack) == 0 {
			continue
		}
		weight := 1.0
		if i < len(weights) {
			weight = weights[i]
		}
		start := offset
		end := offset + weight

		var parent *uint64
		for depth, name := range stack {
			id := nextID
			nextID++
			self := 0.0
			if depth == len(stack)-1 {
				self = weight
			}
			spans = append(spans, ir.Span{
				ID:        id,
				Name:      name,
				Start:     start,
				End:       end,
				Depth:     uint32(depth),
				Parent:    parent,
				SelfValue: self,
				Kind:      kind,
			})
			parentID := id
			parent = &parentID
		}
		offset += weight
	}

	return spans
}
