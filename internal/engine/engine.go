// Package engine exposes the ingest/session/render core through a single
// stable, handle-based surface shared by the CLI and the MCP server, so
// neither has to touch internal/ingest, internal/session, or
// internal/render directly.
package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/doom-fish/flamecat/internal/ingest"
	"github.com/doom-fish/flamecat/internal/ir"
	"github.com/doom-fish/flamecat/internal/render"
	"github.com/doom-fish/flamecat/internal/session"
)

// Engine is the process-lifetime store of parsed profiles and sessions.
// A single mutex guards two maps keyed by opaque UUID-string handles:
// insert on parse or new session, keyed lookup on every other call.
type Engine struct {
	mu       sync.Mutex
	profiles map[string]*ir.VisualProfile
	sessions map[string]*session.Session
}

// New returns an empty engine.
func New() *Engine {
	return &Engine{
		profiles: make(map[string]*ir.VisualProfile),
		sessions: make(map[string]*session.Session),
	}
}

// ParseProfile auto-detects and parses bytes, storing the result under a
// fresh opaque handle.
func (e *Engine) ParseProfile(data []byte) (string, error) {
	profile, err := ingest.ParseAuto(data)
	if err != nil {
		return "", fmt.Errorf("engine: parse profile: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	handle := uuid.NewString()
	e.profiles[handle] = profile
	return handle, nil
}

// ParseProfileFile is the file-based counterpart of ParseProfile, loading
// gzip-transparently like internal/ingest.LoadFile.
func (e *Engine) ParseProfileFile(path string) (string, error) {
	profile, err := ingest.LoadFile(path)
	if err != nil {
		return "", fmt.Errorf("engine: parse profile file: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	handle := uuid.NewString()
	e.profiles[handle] = profile
	return handle, nil
}

func (e *Engine) lookup(handle string) (*ir.VisualProfile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	profile, ok := e.profiles[handle]
	if !ok {
		return nil, fmt.Errorf("engine: %w", ir.ErrInvalidHandle)
	}
	return profile, nil
}

// GetProfileMetadata returns the parsed profile's top-level meta.
func (e *Engine) GetProfileMetadata(handle string) (ir.ProfileMeta, error) {
	profile, err := e.lookup(handle)
	if err != nil {
		return ir.ProfileMeta{}, err
	}
	return profile.Meta, nil
}

// GetFrameCount returns the total span count across every thread.
func (e *Engine) GetFrameCount(handle string) (int, error) {
	profile, err := e.lookup(handle)
	if err != nil {
		return 0, err
	}
	return profile.SpanCount(), nil
}

// SpanInfo is the flattened, display-ready view of one span returned by
// GetSpanInfo.
type SpanInfo struct {
	Name      string
	Start     float64
	End       float64
	Duration  float64
	SelfTime  float64
	Depth     uint32
	Category  *string
	Thread    string
}

// GetSpanInfo resolves a span by id, searching every thread.
func (e *Engine) GetSpanInfo(handle string, spanID uint64) (SpanInfo, error) {
	profile, err := e.lookup(handle)
	if err != nil {
		return SpanInfo{}, err
	}
	for _, t := range profile.Threads {
		for _, s := range t.Spans {
			if s.ID == spanID {
				info := SpanInfo{
					Name:     s.Name,
					Start:    s.Start,
					End:      s.End,
					Duration: s.Duration(),
					SelfTime: s.SelfValue,
					Depth:    s.Depth,
					Thread:   t.Name,
				}
				if s.Category != nil {
					info.Category = &s.Category.Name
				}
				return info, nil
			}
		}
	}
	return SpanInfo{}, fmt.Errorf("engine: span %d: %w", spanID, ir.ErrSpanNotFound)
}

// ContentBounds is the profile's overall time extent.
type ContentBounds struct {
	Start float64
	End   float64
}

// GetContentBounds returns the profile's start/end time.
func (e *Engine) GetContentBounds(handle string) (ContentBounds, error) {
	profile, err := e.lookup(handle)
	if err != nil {
		return ContentBounds{}, err
	}
	return ContentBounds{Start: profile.Meta.StartTime, End: profile.Meta.EndTime}, nil
}

// ThreadInfo summarizes one thread group for host listing.
type ThreadInfo struct {
	ID        uint32
	Name      string
	SpanCount int
	SortKey   int64
	MaxDepth  uint32
}

// GetThreadList returns per-thread summaries for the parsed profile.
func (e *Engine) GetThreadList(handle string) ([]ThreadInfo, error) {
	profile, err := e.lookup(handle)
	if err != nil {
		return nil, err
	}
	infos := make([]ThreadInfo, 0, len(profile.Threads))
	for _, t := range profile.Threads {
		var maxDepth uint32
		for _, s := range t.Spans {
			if s.Depth > maxDepth {
				maxDepth = s.Depth
			}
		}
		infos = append(infos, ThreadInfo{
			ID:        t.ID,
			Name:      t.Name,
			SpanCount: len(t.Spans),
			SortKey:   t.SortKey,
			MaxDepth:  maxDepth,
		})
	}
	return infos, nil
}

// GetRankedEntries aggregates spans (optionally limited to one thread) by
// name and sorts them per the requested column, ascending when ascending
// is true and descending otherwise.
func (e *Engine) GetRankedEntries(handle string, by render.RankedSort, ascending bool, threadID *uint32) ([]render.RankedEntry, error) {
	profile, err := e.lookup(handle)
	if err != nil {
		return nil, err
	}
	spans := spansForThread(profile, threadID)
	entries := render.AggregateRanked(spans)
	render.SortRanked(entries, by)
	// SortRanked orders names ascending and numeric columns descending.
	if ascending != (by == render.RankedSortByName) {
		reverseRankedEntries(entries)
	}
	return entries, nil
}

func reverseRankedEntries(entries []render.RankedEntry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}

func spansForThread(profile *ir.VisualProfile, threadID *uint32) []ir.Span {
	if threadID == nil {
		return profile.AllSpans()
	}
	for _, t := range profile.Threads {
		if t.ID == *threadID {
			return t.Spans
		}
	}
	return nil
}

// ViewKind selects which view transform RenderView runs.
type ViewKind string

const (
	ViewTimeOrder ViewKind = "time-order"
	ViewLeftHeavy ViewKind = "left-heavy"
	ViewSandwich  ViewKind = "sandwich"
	ViewRanked    ViewKind = "ranked"
)

// RenderOptions carries the optional parameters a view transform may need.
type RenderOptions struct {
	SelectedFrameID *uint64
	ViewStart       *float64
	ViewEnd         *float64
	ThreadID        *uint32
	RankedSort      render.RankedSort
}

// RenderView runs the requested view transform over the parsed profile and
// returns its RenderCommand stream.
func (e *Engine) RenderView(handle string, view ViewKind, viewport render.Viewport, opts RenderOptions) ([]render.Command, error) {
	profile, err := e.lookup(handle)
	if err != nil {
		return nil, err
	}
	spans := spansForThread(profile, opts.ThreadID)

	switch view {
	case ViewTimeOrder:
		start, end := profile.Meta.StartTime, profile.Meta.EndTime
		if opts.ViewStart != nil {
			start = *opts.ViewStart
		}
		if opts.ViewEnd != nil {
			end = *opts.ViewEnd
		}
		return render.RenderTimeOrder(spans, viewport, start, end), nil
	case ViewLeftHeavy:
		return render.RenderLeftHeavy(spans, viewport), nil
	case ViewSandwich:
		if opts.SelectedFrameID == nil {
			return nil, fmt.Errorf("engine: sandwich view: %w", ir.ErrSelectionRequired)
		}
		selected, ok := profile.Span(*opts.SelectedFrameID)
		if !ok {
			return nil, fmt.Errorf("engine: sandwich view: %w", ir.ErrSpanNotFound)
		}
		return render.RenderSandwich(spans, selected.Name, viewport), nil
	case ViewRanked:
		return render.RenderRanked(spans, opts.RankedSort, viewport), nil
	default:
		return nil, fmt.Errorf("engine: unknown view %q", view)
	}
}

// RenderMinimap draws the compressed full-duration overview plus the
// currently-visible window highlight.
func (e *Engine) RenderMinimap(handle string, viewport render.Viewport, visibleStartFrac, visibleEndFrac float64) ([]render.Command, error) {
	profile, err := e.lookup(handle)
	if err != nil {
		return nil, err
	}
	fullStart, fullEnd := profile.Meta.StartTime, profile.Meta.EndTime
	duration := fullEnd - fullStart
	visibleStart := fullStart + visibleStartFrac*duration
	visibleEnd := fullStart + visibleEndFrac*duration
	return render.RenderMinimap(profile.AllSpans(), fullStart, fullEnd, visibleStart, visibleEnd, viewport), nil
}

// NewSession creates an empty multi-profile session and returns its handle.
func (e *Engine) NewSession() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	handle := uuid.NewString()
	e.sessions[handle] = session.New()
	return handle
}

// SessionAddProfile aligns and appends an already-parsed profile to a
// session.
func (e *Engine) SessionAddProfile(sessionHandle, profileHandle, label string) error {
	profile, err := e.lookup(profileHandle)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[sessionHandle]
	if !ok {
		return fmt.Errorf("engine: session: %w", ir.ErrInvalidHandle)
	}
	s.AddProfile(*profile, label)
	return nil
}

// SessionBoundsResult is the unified timeline extent of a session.
type SessionBoundsResult struct {
	Start    float64
	End      float64
	Duration float64
}

// SessionBounds returns a session's unified start/end/duration.
func (e *Engine) SessionBounds(sessionHandle string) (SessionBoundsResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[sessionHandle]
	if !ok {
		return SessionBoundsResult{}, fmt.Errorf("engine: session: %w", ir.ErrInvalidHandle)
	}
	return SessionBoundsResult{Start: s.StartTime(), End: s.EndTime(), Duration: s.Duration()}, nil
}
