// Package ir defines the canonical Visual Profile intermediate
// representation that every format parser compiles into and every view
// transform consumes.
package ir

import "fmt"

// VisualProfile is the format-agnostic representation of a single parsed
// profile: metadata plus an ordered set of thread groups.
type VisualProfile struct {
	Meta    ProfileMeta   `json:"meta"`
	Threads []ThreadGroup `json:"threads"`

	// Sub-collections are optional; a parser that has no data for one
	// leaves it nil. Every consumer treats nil/empty as "nothing to draw".
	Counters      []CounterSeries `json:"counters,omitempty"`
	AsyncSpans    []AsyncSpan     `json:"async_spans,omitempty"`
	Markers       []Marker        `json:"markers,omitempty"`
	InstantEvents []InstantEvent  `json:"instant_events,omitempty"`
	ObjectEvents  []ObjectEvent   `json:"object_events,omitempty"`
	CpuSamples    []CpuSample     `json:"cpu_samples,omitempty"`
}

// ProfileMeta carries top-level metadata about a profile.
type ProfileMeta struct {
	Name         *string     `json:"name,omitempty"`
	SourceFormat SourceFormat `json:"source_format"`
	ValueUnit    ValueUnit    `json:"value_unit"`
	TotalValue   float64      `json:"total_value"`
	StartTime    float64      `json:"start_time"`
	EndTime      float64      `json:"end_time"`
	TimeDomain   *TimeDomain  `json:"time_domain,omitempty"`
}

// ThreadGroup is a logical lane of spans: typically one OS thread,
// sometimes a GPU queue.
type ThreadGroup struct {
	ID      uint32 `json:"id"`
	Name    string `json:"name"`
	SortKey int64  `json:"sort_key"`
	Spans   []Span `json:"spans"`
}

// SpanKind records how a span was produced; it affects how views interpret it.
type SpanKind string

const (
	SpanKindEvent     SpanKind = "event"
	SpanKindSample    SpanKind = "sample"
	SpanKindSynthetic SpanKind = "synthetic"
)

// SpanCategory is a semantic grouping/coloring tag for a span.
type SpanCategory struct {
	Name   string  `json:"name"`
	Source *string `json:"source,omitempty"`
}

// Span is the atomic unit of the visual profile: a contiguous [Start, End]
// interval, named, at a given stack depth, possibly with a parent.
type Span struct {
	ID         uint64        `json:"id"`
	Name       string        `json:"name"`
	Start      float64       `json:"start"`
	End        float64       `json:"end"`
	Depth      uint32        `json:"depth"`
	Parent     *uint64       `json:"parent,omitempty"`
	SelfValue  float64       `json:"self_value"`
	Kind       SpanKind      `json:"kind"`
	Category   *SpanCategory `json:"category,omitempty"`
}

// Duration returns the span's total value range (End - Start).
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// Duration returns the profile's total time range.
func (p *VisualProfile) Duration() float64 {
	return p.Meta.EndTime - p.Meta.StartTime
}

// Span looks up a span by id, searching every thread.
func (p *VisualProfile) Span(id uint64) (Span, bool) {
	for _, t := range p.Threads {
		for _, s := range t.Spans {
			if s.ID == id {
				return s, true
			}
		}
	}
	return Span{}, false
}

// AllSpans returns every span across every thread, thread order preserved.
func (p *VisualProfile) AllSpans() []Span {
	out := make([]Span, 0, p.SpanCount())
	for _, t := range p.Threads {
		out = append(out, t.Spans...)
	}
	return out
}

// SpanCount returns the total number of spans across all threads.
func (p *VisualProfile) SpanCount() int {
	n := 0
	for _, t := range p.Threads {
		n += len(t.Spans)
	}
	return n
}

// Children returns the direct children of parent (or top-level spans when
// parent is nil), searching across all threads.
func (p *VisualProfile) Children(parent *uint64) []Span {
	var out []Span
	for _, s := range p.AllSpans() {
		if samePointerValue(s.Parent, parent) {
			out = append(out, s)
		}
	}
	return out
}

func samePointerValue(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// SourceFormat names the original profiling format. Informational only,
// never used for branching logic once a profile has been parsed.
type SourceFormat string

const (
	SourceFormatChromeTrace      SourceFormat = "chrome_trace"
	SourceFormatFirefoxGecko     SourceFormat = "firefox_gecko"
	SourceFormatReactDevTools    SourceFormat = "react_devtools"
	SourceFormatCpuProfile       SourceFormat = "cpu_profile"
	SourceFormatSpeedscope       SourceFormat = "speedscope"
	SourceFormatCollapsedStacks  SourceFormat = "collapsed_stacks"
	SourceFormatPprof            SourceFormat = "pprof"
	SourceFormatTracy            SourceFormat = "tracy"
	SourceFormatPix              SourceFormat = "pix"
	SourceFormatEbpf             SourceFormat = "ebpf"
	SourceFormatUnknown          SourceFormat = "unknown"
)

// String renders a human-readable label for display.
func (f SourceFormat) String() string {
	switch f {
	case SourceFormatChromeTrace:
		return "Chrome Trace"
	case SourceFormatFirefoxGecko:
		return "Firefox Gecko"
	case SourceFormatReactDevTools:
		return "React DevTools"
	case SourceFormatCpuProfile:
		return "V8 CPU Profile"
	case SourceFormatSpeedscope:
		return "Speedscope"
	case SourceFormatCollapsedStacks:
		return "Collapsed Stacks"
	case SourceFormatPprof:
		return "pprof"
	case SourceFormatTracy:
		return "Tracy"
	case SourceFormatPix:
		return "PIX"
	case SourceFormatEbpf:
		return "eBPF"
	default:
		return "Unknown"
	}
}

// ValueUnit describes what the numerical values in spans represent.
type ValueUnit string

const (
	ValueUnitMicroseconds ValueUnit = "microseconds"
	ValueUnitMilliseconds ValueUnit = "milliseconds"
	ValueUnitNanoseconds  ValueUnit = "nanoseconds"
	ValueUnitSamples      ValueUnit = "samples"
	ValueUnitBytes        ValueUnit = "bytes"
	ValueUnitWeight       ValueUnit = "weight"
)

// ToMicrosecondsFactor returns the multiplier that converts a value in this
// unit to microseconds, and false when the unit has no time dimension
// (Samples, Weight — the timeline is sample-index rather than wall time).
func (u ValueUnit) ToMicrosecondsFactor() (float64, bool) {
	switch u {
	case ValueUnitMicroseconds:
		return 1.0, true
	case ValueUnitMilliseconds:
		return 1_000.0, true
	case ValueUnitNanoseconds:
		return 1.0 / 1_000.0, true
	default:
		return 0, false
	}
}

// FormatValue renders value (expressed in this unit) as a human string.
func (u ValueUnit) FormatValue(value float64) string {
	switch u {
	case ValueUnitMicroseconds:
		switch {
		case value >= 1_000_000.0:
			return fmt.Sprintf("%.2fs", value/1_000_000.0)
		case value >= 1_000.0:
			return fmt.Sprintf("%.1fms", value/1_000.0)
		default:
			return fmt.Sprintf("%.0fµs", value)
		}
	case ValueUnitMilliseconds:
		if value >= 1_000.0 {
			return fmt.Sprintf("%.2fs", value/1_000.0)
		}
		return fmt.Sprintf("%.1fms", value)
	case ValueUnitNanoseconds:
		switch {
		case value >= 1_000_000_000.0:
			return fmt.Sprintf("%.2fs", value/1_000_000_000.0)
		case value >= 1_000_000.0:
			return fmt.Sprintf("%.1fms", value/1_000_000.0)
		case value >= 1_000.0:
			return fmt.Sprintf("%.0fµs", value/1_000.0)
		default:
			return fmt.Sprintf("%.0fns", value)
		}
	case ValueUnitSamples:
		return fmt.Sprintf("%d samples", int64(value))
	case ValueUnitBytes:
		switch {
		case value >= 1_073_741_824.0:
			return fmt.Sprintf("%.1f GiB", value/1_073_741_824.0)
		case value >= 1_048_576.0:
			return fmt.Sprintf("%.1f MiB", value/1_048_576.0)
		case value >= 1_024.0:
			return fmt.Sprintf("%.1f KiB", value/1_024.0)
		default:
			return fmt.Sprintf("%d B", int64(value))
		}
	case ValueUnitWeight:
		return fmt.Sprintf("%.0f", value)
	default:
		return fmt.Sprintf("%.0f", value)
	}
}

// ClockKind describes the clock source used by a profiling tool.
type ClockKind string

const (
	ClockKindLinuxMonotonic ClockKind = "linux_monotonic"
	ClockKindPerformanceNow ClockKind = "performance_now"
	ClockKindWallClock      ClockKind = "wall_clock"
	ClockKindCpuTime        ClockKind = "cpu_time"
	ClockKindSamples        ClockKind = "samples"
	ClockKindUnknown        ClockKind = "unknown"
)

// TimeDomain describes the clock source of a profile's timestamps, so that
// the session can decide whether two profiles may share a timeline without
// manual alignment.
type TimeDomain struct {
	ClockKind   ClockKind `json:"clock_kind"`
	OriginLabel *string   `json:"origin_label,omitempty"`
}

// IsCompatible reports whether two time domains share the same underlying
// clock and can be automatically aligned after unit normalization.
// performance.now() and CLOCK_MONOTONIC share the same underlying tick on
// the browsers/OSes this engine targets, so they're mutually compatible;
// every other clock kind is compatible only with itself.
func (t TimeDomain) IsCompatible(other TimeDomain) bool {
	switch {
	case t.ClockKind == ClockKindLinuxMonotonic && other.ClockKind == ClockKindLinuxMonotonic:
		return true
	case t.ClockKind == ClockKindPerformanceNow && other.ClockKind == ClockKindPerformanceNow:
		return true
	case t.ClockKind == ClockKindWallClock && other.ClockKind == ClockKindWallClock:
		return true
	case t.ClockKind == ClockKindLinuxMonotonic && other.ClockKind == ClockKindPerformanceNow:
		return true
	case t.ClockKind == ClockKindPerformanceNow && other.ClockKind == ClockKindLinuxMonotonic:
		return true
	case t.ClockKind == other.ClockKind:
		return true
	default:
		return false
	}
}
