package ir

import "math"

// StrictMode selects whether FinalizeThread panics on invariant violations (true)
// or best-effort repairs them by clamping depth and dropping spans that
// violate containment (false, the default). Real-world captures are messy
// enough that host callers generally want the repair path; tests that need
// to assert a parser's raw output is already invariant-clean can flip this.
var StrictMode = false

// FinalizeThread runs the per-thread part of the shared post-pass every
// parser goes through after emitting raw spans: recompute self_value from
// children, verify (or repair) the tree invariants, and sort the spans by
// start time. Parsers call this once per ThreadGroup they produce, then
// FinalizeProfile at the profile level to derive meta.start_time/end_time.
func FinalizeThread(t *ThreadGroup) {
	recomputeSelfValue(t.Spans)
	if StrictMode {
		checkInvariants(t.Spans)
	} else {
		t.Spans = repairInvariants(t.Spans)
	}
	sortSpansByStart(t.Spans)
}

// FinalizeProfile derives meta.start_time/end_time from the min/max over
// all spans (falling back to 0 for an empty profile).
func FinalizeProfile(p *VisualProfile) {
	start := math.Inf(1)
	end := math.Inf(-1)
	for _, t := range p.Threads {
		for _, s := range t.Spans {
			if s.Start < start {
				start = s.Start
			}
			if s.End > end {
				end = s.End
			}
		}
	}
	if math.IsInf(start, 1) {
		start = 0
	}
	if math.IsInf(end, -1) {
		end = 0
	}
	p.Meta.StartTime = start
	p.Meta.EndTime = end
}

func recomputeSelfValue(spans []Span) {
	childTotal := make(map[uint64]float64, len(spans))
	for _, s := range spans {
		if s.Parent != nil {
			childTotal[*s.Parent] += s.Duration()
		}
	}
	for i := range spans {
		total := childTotal[spans[i].ID]
		self := spans[i].Duration() - total
		if self < 0 {
			self = 0
		}
		spans[i].SelfValue = self
	}
}

func sortSpansByStart(spans []Span) {
	// Stable sort preserving insertion order on ties, per the Span
	// ordering invariant (§3 ThreadGroup).
	stableSortByStart(spans)
}

func stableSortByStart(spans []Span) {
	// insertion sort is stable and fine for already-mostly-ordered parser
	// output; the Chrome parser, for one, stable-sorts its events by ts
	// before building spans, so its spans already arrive in start order.
	for i := 1; i < len(spans); i++ {
		j := i
		for j > 0 && spans[j-1].Start > spans[j].Start {
			spans[j-1], spans[j] = spans[j], spans[j-1]
			j--
		}
	}
}

func checkInvariants(spans []Span) {
	byID := make(map[uint64]Span, len(spans))
	for _, s := range spans {
		byID[s.ID] = s
	}
	for _, s := range spans {
		if s.End < s.Start {
			panic("ir: span end < start under strict mode")
		}
		if s.Parent != nil {
			p, ok := byID[*s.Parent]
			if !ok {
				panic("ir: span parent not found under strict mode")
			}
			if p.Start > s.Start || p.End < s.End {
				panic("ir: span not contained by parent under strict mode")
			}
			if s.Depth != p.Depth+1 {
				panic("ir: span depth mismatch under strict mode")
			}
		} else if s.Depth != 0 {
			panic("ir: root span with nonzero depth under strict mode")
		}
	}
}

// repairInvariants clamps depth to parent.depth+1 and drops spans whose
// parent is missing or does not contain them, rather than failing the
// whole parse over one malformed span in a multi-million-span capture.
func repairInvariants(spans []Span) []Span {
	byID := make(map[uint64]Span, len(spans))
	for _, s := range spans {
		byID[s.ID] = s
	}

	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.End < s.Start {
			s.End = s.Start
		}
		if s.Parent != nil {
			p, ok := byID[*s.Parent]
			if !ok || p.Start > s.Start || p.End < s.End {
				continue
			}
			s.Depth = p.Depth + 1
		} else {
			s.Depth = 0
		}
		out = append(out, s)
	}
	return out
}
