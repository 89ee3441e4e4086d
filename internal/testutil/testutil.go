// Package testutil provides fluent builders and assertion helpers for
// constructing Visual Profile fixtures in tests, mirroring the teacher's
// own hand-written test-builder pattern rather than a third-party
// assertion library (none of the example repos pull one in for this).
package testutil

import "github.com/doom-fish/flamecat/internal/ir"

// ProfileBuilder provides a fluent API for constructing VisualProfile
// fixtures without spelling out every field at every call site.
type ProfileBuilder struct {
	profile ir.VisualProfile
}

// NewProfileBuilder returns a builder with sensible defaults: a Chrome
// Trace source in microseconds.
func NewProfileBuilder() *ProfileBuilder {
	return &ProfileBuilder{
		profile: ir.VisualProfile{
			Meta: ir.ProfileMeta{
				SourceFormat: ir.SourceFormatChromeTrace,
				ValueUnit:    ir.ValueUnitMicroseconds,
			},
		},
	}
}

func (b *ProfileBuilder) WithName(name string) *ProfileBuilder {
	b.profile.Meta.Name = &name
	return b
}

func (b *ProfileBuilder) WithSourceFormat(f ir.SourceFormat) *ProfileBuilder {
	b.profile.Meta.SourceFormat = f
	return b
}

func (b *ProfileBuilder) WithValueUnit(u ir.ValueUnit) *ProfileBuilder {
	b.profile.Meta.ValueUnit = u
	return b
}

func (b *ProfileBuilder) WithBounds(start, end float64) *ProfileBuilder {
	b.profile.Meta.StartTime = start
	b.profile.Meta.EndTime = end
	return b
}

func (b *ProfileBuilder) WithTimeDomain(kind ir.ClockKind) *ProfileBuilder {
	b.profile.Meta.TimeDomain = &ir.TimeDomain{ClockKind: kind}
	return b
}

func (b *ProfileBuilder) WithThread(t ir.ThreadGroup) *ProfileBuilder {
	b.profile.Threads = append(b.profile.Threads, t)
	return b
}

// Build returns the constructed profile and derives start/end time from
// its spans when the caller never called WithBounds, matching the shared
// post-pass's own fallback.
func (b *ProfileBuilder) Build() ir.VisualProfile {
	if b.profile.Meta.EndTime == 0 && b.profile.Meta.StartTime == 0 {
		first := true
		for _, t := range b.profile.Threads {
			for _, s := range t.Spans {
				if first || s.Start < b.profile.Meta.StartTime {
					b.profile.Meta.StartTime = s.Start
				}
				if first || s.End > b.profile.Meta.EndTime {
					b.profile.Meta.EndTime = s.End
				}
				first = false
			}
		}
	}
	return b.profile
}

// ThreadBuilder constructs one ThreadGroup fixture.
type ThreadBuilder struct {
	thread ir.ThreadGroup
}

func NewThreadBuilder(id uint32, name string) *ThreadBuilder {
	return &ThreadBuilder{thread: ir.ThreadGroup{ID: id, Name: name}}
}

func (b *ThreadBuilder) WithSortKey(key int64) *ThreadBuilder {
	b.thread.SortKey = key
	return b
}

func (b *ThreadBuilder) WithSpan(s ir.Span) *ThreadBuilder {
	b.thread.Spans = append(b.thread.Spans, s)
	return b
}

func (b *ThreadBuilder) Build() ir.ThreadGroup {
	return b.thread
}

// SpanBuilder constructs one Span fixture.
type SpanBuilder struct {
	span ir.Span
}

func NewSpanBuilder(id uint64, name string, start, end float64) *SpanBuilder {
	return &SpanBuilder{span: ir.Span{ID: id, Name: name, Start: start, End: end, Kind: ir.SpanKindEvent}}
}

func (b *SpanBuilder) WithParent(parentID uint64) *SpanBuilder {
	b.span.Parent = &parentID
	return b
}

func (b *SpanBuilder) WithDepth(depth uint32) *SpanBuilder {
	b.span.Depth = depth
	return b
}

func (b *SpanBuilder) WithSelfValue(v float64) *SpanBuilder {
	b.span.SelfValue = v
	return b
}

func (b *SpanBuilder) WithKind(kind ir.SpanKind) *SpanBuilder {
	b.span.Kind = kind
	return b
}

func (b *SpanBuilder) WithCategory(name string) *SpanBuilder {
	b.span.Category = &ir.SpanCategory{Name: name}
	return b
}

func (b *SpanBuilder) Build() ir.Span {
	return b.span
}
