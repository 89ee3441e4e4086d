// Package session lays several Visual Profiles on a unified timeline,
// aligning them automatically when their clocks are known-compatible.
package session

import (
	"math"

	"github.com/doom-fish/flamecat/internal/ir"
)

// ProfileEntry is one loaded profile plus its alignment data.
type ProfileEntry struct {
	Profile  ir.VisualProfile
	OffsetUs float64
	Label    string
}

// ToSessionTime maps a timestamp from this profile's local time to the
// unified session timeline, applying unit normalization then the offset.
func (e ProfileEntry) ToSessionTime(localTime float64) float64 {
	factor, ok := e.Profile.Meta.ValueUnit.ToMicrosecondsFactor()
	if !ok {
		factor = 1.0
	}
	return localTime*factor + e.OffsetUs
}

// SessionStart is this entry's start time on the unified session timeline.
func (e ProfileEntry) SessionStart() float64 {
	return e.ToSessionTime(e.Profile.Meta.StartTime)
}

// SessionEnd is this entry's end time on the unified session timeline.
func (e ProfileEntry) SessionEnd() float64 {
	return e.ToSessionTime(e.Profile.Meta.EndTime)
}

// Session is a multi-profile container. Profiles sharing a compatible
// clock domain are automatically aligned; others are pinned to the
// session's current start until manually offset.
type Session struct {
	entries []ProfileEntry
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// FromProfile returns a session seeded with one profile (the common case).
func FromProfile(profile ir.VisualProfile, label string) *Session {
	s := New()
	s.AddProfile(profile, label)
	return s
}

// AddProfile computes an alignment offset for profile (per §4.11) and
// appends it to the session.
func (s *Session) AddProfile(profile ir.VisualProfile, label string) {
	offset := s.computeOffset(profile)
	s.entries = append(s.entries, ProfileEntry{Profile: profile, OffsetUs: offset, Label: label})
}

// Entries returns the session's profile entries in insertion order.
func (s *Session) Entries() []ProfileEntry {
	return s.entries
}

// SetOffset manually overrides the offset of the entry at index, per the
// IR's "Sessions permit manual offset mutation on an entry" lifecycle rule.
func (s *Session) SetOffset(index int, offsetUs float64) bool {
	if index < 0 || index >= len(s.entries) {
		return false
	}
	s.entries[index].OffsetUs = offsetUs
	return true
}

// Len returns the number of profiles in the session.
func (s *Session) Len() int {
	return len(s.entries)
}

// IsEmpty reports whether the session has no profiles.
func (s *Session) IsEmpty() bool {
	return len(s.entries) == 0
}

// StartTime is the unified start time across all profiles (µs).
func (s *Session) StartTime() float64 {
	start := math.Inf(1)
	for _, e := range s.entries {
		if v := e.SessionStart(); v < start {
			start = v
		}
	}
	return start
}

// EndTime is the unified end time across all profiles (µs).
func (s *Session) EndTime() float64 {
	end := math.Inf(-1)
	for _, e := range s.entries {
		if v := e.SessionEnd(); v > end {
			end = v
		}
	}
	return end
}

// Duration is the total span of the session (µs), 0 when empty.
func (s *Session) Duration() float64 {
	start, end := s.StartTime(), s.EndTime()
	if math.IsInf(start, 0) || math.IsInf(end, 0) {
		return 0
	}
	return end - start
}

// computeOffset implements §4.11's three-case alignment rule.
func (s *Session) computeOffset(profile ir.VisualProfile) float64 {
	if len(s.entries) == 0 {
		return 0
	}

	if profile.Meta.TimeDomain != nil {
		for _, existing := range s.entries {
			if existing.Profile.Meta.TimeDomain != nil &&
				profile.Meta.TimeDomain.IsCompatible(*existing.Profile.Meta.TimeDomain) {
				return 0
			}
		}
	}

	sessionStart := s.StartTime()
	factor, ok := profile.Meta.ValueUnit.ToMicrosecondsFactor()
	if !ok {
		factor = 1.0
	}
	newStartUs := profile.Meta.StartTime * factor
	return sessionStart - newStartUs
}
