package ingest

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/doom-fish/flamecat/internal/ir"
)

// chromeEvent is the subset of the Chrome Trace Event Format this parser
// understands: duration events (X), begin/end pairs (B/E), and metadata
// (M, for thread_name only).
type chromeEvent struct {
	Name string          `json:"name"`
	Ph   string          `json:"ph"`
	Ts   float64         `json:"ts"`
	Dur  float64         `json:"dur"`
	Pid  int             `json:"pid"`
	Tid  int             `json:"tid"`
	Cat  string          `json:"cat"`
	Args json.RawMessage `json:"args"`
}

type chromeThreadKey struct {
	pid, tid int
}

type chromeArgs struct {
	Name string `json:"name"`
}

// ParseChrome parses the Chrome Trace Event Format (either `{"traceEvents":
// [...]}` object form or a top-level array), per §4.2.
func ParseChrome(data []byte) (*ir.VisualProfile, error) {
	events, err := decodeChromeEvents(data)
	if err != nil {
		return nil, fmt.Errorf("ingest: chrome: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("ingest: chrome: %w", ir.ErrMissingTraceEvents)
	}

	// Stable sort on ts, preserving original insertion order on ties.
	indexed := make([]int, len(events))
	for i := range indexed {
		indexed[i] = i
	}
	sort.SliceStable(indexed, func(a, b int) bool {
		return events[indexed[a]].Ts < events[indexed[b]].Ts
	})

	threadNames := make(map[chromeThreadKey]string)
	for _, e := range events {
		if e.Ph == "M" && e.Name == "thread_name" {
			var args chromeArgs
			_ = json.Unmarshal(e.Args, &args)
			if args.Name != "" {
				threadNames[chromeThreadKey{e.Pid, e.Tid}] = args.Name
			}
		}
	}

	type threadState struct {
		spans []ir.Span
		stack []int // indices into spans
	}
	threads := make(map[chromeThreadKey]*threadState)
	order := make([]chromeThreadKey, 0)

	var nextID uint64
	maxTs := 0.0

	stateFor := func(key chromeThreadKey) *threadState {
		st, ok := threads[key]
		if !ok {
			st = &threadState{}
			threads[key] = st
			order = append(order, key)
		}
		return st
	}

	autoClose := func(st *threadState, ts float64) {
		for len(st.stack) > 0 {
			top := st.stack[len(st.stack)-1]
			span := st.spans[top]
			if !(span.End > span.Start && span.End <= ts) {
				break
			}
			st.stack = st.stack[:len(st.stack)-1]
		}
	}

	for _, idx := range indexed {
		e := events[idx]
		if e.Ts > maxTs {
			maxTs = e.Ts
		}
		switch e.Ph {
		case "X", "B", "E":
		default:
			continue
		}

		key := chromeThreadKey{e.Pid, e.Tid}
		st := stateFor(key)
		autoClose(st, e.Ts)

		switch e.Ph {
		case "X":
			var parent *uint64
			if len(st.stack) > 0 {
				p := st.spans[st.stack[len(st.stack)-1]].ID
				parent = &p
			}
			end := e.Ts + e.Dur
			if end > maxTs {
				maxTs = end
			}
			span := ir.Span{
				ID:       nextID,
				Name:     e.Name,
				Start:    e.Ts,
				End:      end,
				Depth:    uint32(len(st.stack)),
				Parent:   parent,
				Kind:     ir.SpanKindEvent,
				Category: categoryOrNil(e.Cat),
			}
			nextID++
			st.spans = append(st.spans, span)
			st.stack = append(st.stack, len(st.spans)-1)

		case "B":
			var parent *uint64
			if len(st.stack) > 0 {
				p := st.spans[st.stack[len(st.stack)-1]].ID
				parent = &p
			}
			span := ir.Span{
				ID:       nextID,
				Name:     e.Name,
				Start:    e.Ts,
				End:      e.Ts,
				Depth:    uint32(len(st.stack)),
				Parent:   parent,
				Kind:     ir.SpanKindEvent,
				Category: categoryOrNil(e.Cat),
			}
			nextID++
			st.spans = append(st.spans, span)
			st.stack = append(st.stack, len(st.spans)-1)

		case "E":
			if len(st.stack) == 0 {
				// Mismatched E at an empty stack: dropped, not repaired
				// by synthesizing a matching B (§9 resolved open question).
				continue
			}
			top := st.stack[len(st.stack)-1]
			st.stack = st.stack[:len(st.stack)-1]
			st.spans[top].End = e.Ts
		}
	}

	// Flush: anything still open (B events with no matching E) stays open
	// until the last observed ts. X events that are merely unclosed on the
	// stack at EOF (stack not yet auto-closed) already carry a real End
	// and must not be stretched.
	for _, key := range order {
		st := threads[key]
		for _, idx := range st.stack {
			span := &st.spans[idx]
			if span.End == span.Start && span.End < maxTs {
				span.End = maxTs
			}
		}
	}

	groups := make([]ir.ThreadGroup, 0, len(order))
	for id, key := range order {
		st := threads[key]
		name := threadNames[key]
		if name == "" {
			name = fmt.Sprintf("pid %d tid %d", key.pid, key.tid)
		}
		group := ir.ThreadGroup{
			ID:      uint32(id),
			Name:    name,
			SortKey: int64(key.pid)<<32 | int64(key.tid),
			Spans:   st.spans,
		}
		ir.FinalizeThread(&group)
		groups = append(groups, group)
	}

	profile := &ir.VisualProfile{
		Meta: ir.ProfileMeta{
			SourceFormat: ir.SourceFormatChromeTrace,
			ValueUnit:    ir.ValueUnitMicroseconds,
		},
		Threads: groups,
	}
	ir.FinalizeProfile(profile)
	profile.Meta.TotalValue = profile.Meta.EndTime - profile.Meta.StartTime
	return profile, nil
}

func categoryOrNil(cat string) *ir.SpanCategory {
	if cat == "" {
		return nil
	}
	return &ir.SpanCategory{Name: cat}
}

func decodeChromeEvents(data []byte) ([]chromeEvent, error) {
	var wrapper struct {
		TraceEvents []chromeEvent `json:"traceEvents"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.TraceEvents != nil {
		return wrapper.TraceEvents, nil
	}
	var arr []chromeEvent
	if err := json.Unmarshal(data, &arr); err == nil {
		return arr, nil
	}
	return nil, ir.ErrJSON
}
