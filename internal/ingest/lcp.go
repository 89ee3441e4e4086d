package ingest

import "github.com/doom-fish/flamecat/internal/ir"

// activeFrame is one still-open span on the longest-common-prefix merge
// stack: the span's index into the spans slice being built, plus its name
// (for prefix comparison against the next sample's stack).
type activeFrame struct {
	spanIndex int
	name      string
}

// lcpMerge reconstructs a span tree from a sequence of root-to-leaf sample
// stacks by merging each sample against the previous one's longest common
// prefix: frames beyond the prefix close at the new sample's time, frames
// in the suffix open fresh. This is the shared algorithm behind the V8 CPU
// Profile sampled branch (§4.4) and the Firefox Gecko parser (§4.5) — both
// reconstruct a call tree from flat per-sample stacks the same way.
//
// timestamps must have one entry per stacks entry (the sample times);
// endTime closes out whatever is still open after the last sample.
func lcpMerge(stacks [][]string, timestamps []float64, endTime float64, kind ir.SpanKind) []ir.Span {
	var spans []ir.Span
	var active []activeFrame
	var nextID uint64

	closeFrom := func(depth int, at float64) {
		for i := len(active) - 1; i >= depth; i-- {
			spans[active[i].spanIndex].End = at
		}
		active = active[:depth]
	}

	for i, stack := range stacks {
		t := timestamps[i]

		prefix := 0
		for prefix < len(active) && prefix < len(stack) && active[prefix].name == stack[prefix] {
			prefix++
		}
		closeFrom(prefix, t)

		for depth := prefix; depth < len(stack); depth++ {
			var parent *uint64
			if depth > 0 {
				p := spans[active[depth-1].spanIndex].ID
				parent = &p
			}
			id := nextID
			nextID++
			spans = append(spans, ir.Span{
				ID:     id,
				Name:   stack[depth],
				Start:  t,
				End:    t,
				Depth:  uint32(depth),
				Parent: parent,
				Kind:   kind,
			})
			active = append(active, activeFrame{spanIndex: len(spans) - 1, name: stack[depth]})
		}
	}

	closeFrom(0, endTime)
	return spans
}
