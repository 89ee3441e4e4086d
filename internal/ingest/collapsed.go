package ingest

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/doom-fish/flamecat/internal/ir"
)

// ParseCollapsed parses Brendan Gregg-style folded stacks:
// "frame;frame;...;frame count" one sample per line, comments (#) and
// blank lines skipped. Each line lays out as one contiguous interval on a
// synthetic timeline with every frame in the line spanning the whole
// interval, per §4.3.
func ParseCollapsed(data []byte) (*ir.VisualProfile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var stacks [][]string
	var weights []float64

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lastSpace := strings.LastIndex(line, " ")
		if lastSpace < 0 {
			// No whitespace-count token: skip the line, per §8 boundary
			// behaviors ("Collapsed stacks with no whitespace-count token
			// → line skipped").
			continue
		}
		countToken := line[lastSpace+1:]
		count, err := strconv.ParseFloat(countToken, 64)
		if err != nil {
			continue
		}
		framesPart := strings.TrimSpace(line[:lastSpace])
		if framesPart == "" {
			continue
		}
		frames := strings.Split(framesPart, ";")
		stacks = append(stacks, frames)
		weights = append(weights, count)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: collapsed: %w", err)
	}
	if len(stacks) == 0 {
		return nil, fmt.Errorf("ingest: collapsed: %w", ir.ErrEmpty)
	}

	spans := layoutStacksSequential(stacks, weights, ir.SpanKindSample)
	thread := ir.ThreadGroup{ID: 0, Name: "collapsed", Spans: spans}
	ir.FinalizeThread(&thread)

	profile := &ir.VisualProfile{
		Meta: ir.ProfileMeta{
			SourceFormat: ir.SourceFormatCollapsedStacks,
			ValueUnit:    ir.ValueUnitWeight,
		},
		Threads: []ir.ThreadGroup{thread},
	}
	ir.FinalizeProfile(profile)
	profile.Meta.TotalValue = profile.Meta.EndTime - profile.Meta.StartTime
	return profile, nil
}
