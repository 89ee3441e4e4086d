package ingest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/doom-fish/flamecat/internal/ir"
)

// ParseEbpf parses eBPF profiler text output, per §4.10: bpftrace's
// `@[...]: count` block format when `@[` appears anywhere in the input,
// else perf-script's header+indented-stack format.
func ParseEbpf(data []byte) (*ir.VisualProfile, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("ingest: ebpf: %w", ir.ErrUTF8)
	}
	text := string(data)

	var spans []ir.Span
	var sourceFormat ir.SourceFormat
	if strings.Contains(text, "@[") {
		spans = parseBpftrace(text)
		sourceFormat = ir.SourceFormatEbpf
	} else {
		spans = parsePerfScript(text)
		sourceFormat = ir.SourceFormatEbpf
	}

	if len(spans) == 0 {
		return nil, fmt.Errorf("ingest: ebpf: %w", ir.ErrEmpty)
	}

	thread := ir.ThreadGroup{ID: 0, Name: "ebpf", Spans: spans}
	ir.FinalizeThread(&thread)

	profile := &ir.VisualProfile{
		Meta: ir.ProfileMeta{
			SourceFormat: sourceFormat,
			ValueUnit:    ir.ValueUnitSamples,
		},
		Threads: []ir.ThreadGroup{thread},
	}
	ir.FinalizeProfile(profile)
	profile.Meta.TotalValue = profile.Meta.EndTime - profile.Meta.StartTime
	return profile, nil
}

// parseBpftrace parses `@[\n frame\n frame\n]: count` blocks. Stacks are
// leaf-first in the source; reversed to root-first before layout.
func parseBpftrace(text string) []ir.Span {
	var stacks [][]string
	var weights []float64

	remaining := text
	for {
		start := strings.Index(remaining, "@[")
		if start < 0 {
			break
		}
		remaining = remaining[start+2:]
		end := strings.Index(remaining, "]:")
		if end < 0 {
			break
		}
		block := remaining[:end]
		remaining = remaining[end+2:]

		var lines []string
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}

		// Consume the count token that follows "]: ".
		i := 0
		for i < len(remaining) && (remaining[i] == ' ' || (remaining[i] >= '0' && remaining[i] <= '9')) {
			i++
		}
		countStr := strings.TrimSpace(remaining[:i])
		remaining = remaining[i:]

		count := 1.0
		if countStr != "" {
			if v, err := parseFloatOrDefault(countStr, 1.0); err == nil {
				count = v
			}
		}

		if len(lines) == 0 {
			continue
		}
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
		for i := range lines {
			lines[i] = stripHexAddress(lines[i])
		}

		stacks = append(stacks, lines)
		weights = append(weights, count)
	}

	return layoutStacksSequential(stacks, weights, ir.SpanKindSample)
}

// parsePerfScript parses perf-script indented-stack output: header lines
// (process + pid + timestamp) delimit stack blocks; indented lines are
// frames, each sample weighted 1.0.
func parsePerfScript(text string) []ir.Span {
	var stacks [][]string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		stack := make([]string, len(current))
		for i, j := 0, len(current)-1; j >= 0; i, j = i+1, j-1 {
			stack[i] = current[j]
		}
		stacks = append(stacks, stack)
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    ") {
			name := parsePerfFrame(trimmed)
			if name != "" {
				current = append(current, name)
			}
			continue
		}
		// Header line (process + pid + timestamp): skip.
	}
	flush()

	weights := make([]float64, len(stacks))
	for i := range weights {
		weights[i] = 1
	}
	return layoutStacksSequential(stacks, weights, ir.SpanKindSample)
}

// parsePerfFrame parses "ffffffff810a func_name+0x10 (/lib/module)" into
// "func_name", stripping the leading hex address, the +0xOFFSET suffix,
// and a trailing (module) annotation.
func parsePerfFrame(line string) string {
	spaceIdx := strings.Index(line, " ")
	if spaceIdx < 0 {
		return stripHexAddress(line)
	}
	funcPart := strings.TrimSpace(line[spaceIdx+1:])

	if parenIdx := strings.LastIndex(funcPart, "("); parenIdx >= 0 {
		funcPart = strings.TrimSpace(funcPart[:parenIdx])
	}
	if plusIdx := strings.LastIndex(funcPart, "+"); plusIdx >= 0 {
		funcPart = funcPart[:plusIdx]
	}
	return funcPart
}

// stripHexAddress removes a leading hex-address token (≥4 hex digits
// followed by a space) from a frame name, e.g. "ffffffff810a func_name".
func stripHexAddress(name string) string {
	trimmed := strings.TrimSpace(name)
	spaceIdx := strings.Index(trimmed, " ")
	if spaceIdx < 0 {
		return trimmed
	}
	prefix := trimmed[:spaceIdx]
	if len(prefix) >= 4 && isHex(prefix) {
		return strings.TrimSpace(trimmed[spaceIdx+1:])
	}
	return trimmed
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return len(s) > 0
}

func parseFloatOrDefault(s string, def float64) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%g", &v)
	if err != nil {
		return def, err
	}
	return v, nil
}
