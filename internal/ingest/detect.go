package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doom-fish/flamecat/internal/ir"
)

// ParseAuto sniffs the format of a profile dump and dispatches to the
// matching parser, per §4.1. Detection order is fixed: earlier rules
// dominate later ones, and the first JSON-object rule that matches wins.
func ParseAuto(data []byte) (*ir.VisualProfile, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		if format, ok := detectJSONObject(obj); ok {
			return dispatchFormat(format, data)
		}
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err == nil {
		if looksLikeChromeArray(arr) {
			return ParseChrome(data)
		}
	}

	text := string(data)
	if strings.Contains(text, "@[") || hasDeepTabIndent(text) {
		return ParseEbpf(data)
	}

	if profile, err := ParseCollapsed(data); err == nil {
		return profile, nil
	}

	return nil, fmt.Errorf("ingest: auto-detect: %w", ir.ErrUnknownFormat)
}

type detectedFormat int

const (
	formatSpeedscope detectedFormat = iota
	formatReact
	formatTracy
	formatGecko
	formatPix
	formatPprof
	formatCPUProfile
	formatChromeObject
)

func dispatchFormat(format detectedFormat, data []byte) (*ir.VisualProfile, error) {
	switch format {
	case formatSpeedscope:
		return ParseSpeedscope(data)
	case formatReact:
		return ParseReact(data)
	case formatTracy:
		return ParseTracy(data)
	case formatGecko:
		return ParseFirefox(data)
	case formatPix:
		return ParsePIX(data)
	case formatPprof:
		return ParsePprof(data)
	case formatCPUProfile:
		return ParseCPUProfile(data)
	case formatChromeObject:
		return ParseChrome(data)
	default:
		return nil, fmt.Errorf("ingest: auto-detect: %w", ir.ErrUnknownFormat)
	}
}

// detectJSONObject applies rules 1.1 through 1.9 in order against a
// decoded top-level JSON object.
func detectJSONObject(obj map[string]json.RawMessage) (detectedFormat, bool) {
	if schema, ok := obj["$schema"]; ok {
		var s string
		if json.Unmarshal(schema, &s) == nil && strings.Contains(s, "speedscope") {
			return formatSpeedscope, true
		}
	}
	_, hasShared := obj["shared"]
	_, hasProfiles := obj["profiles"]
	if hasShared && hasProfiles {
		return formatSpeedscope, true
	}
	if _, ok := obj["dataForRoots"]; ok {
		return formatReact, true
	}

	if threads, ok := decodeThreadsArray(obj["threads"]); ok {
		for _, t := range threads {
			if _, ok := t["zones"]; ok {
				return formatTracy, true
			}
		}
		for _, t := range threads {
			_, hasStackTable := t["stackTable"]
			_, hasFrameTable := t["frameTable"]
			if hasStackTable || hasFrameTable {
				return formatGecko, true
			}
		}
	}

	if events, ok := decodeObjectArray(obj["events"]); ok {
		for _, e := range events {
			if _, ok := e["start"]; ok {
				return formatPix, true
			}
		}
	}

	_, hasSamples := obj["samples"]
	_, hasLocations := obj["locations"]
	_, hasFunctions := obj["functions"]
	if hasSamples && hasLocations && hasFunctions {
		return formatPprof, true
	}

	_, hasNodes := obj["nodes"]
	_, hasStartTime := obj["startTime"]
	_, hasEndTime := obj["endTime"]
	if hasNodes && hasStartTime && hasEndTime {
		return formatCPUProfile, true
	}

	if _, ok := obj["traceEvents"]; ok {
		return formatChromeObject, true
	}

	return 0, false
}

func decodeThreadsArray(raw json.RawMessage) ([]map[string]json.RawMessage, bool) {
	if raw == nil {
		return nil, false
	}
	return decodeObjectArray(raw)
}

func decodeObjectArray(raw json.RawMessage) ([]map[string]json.RawMessage, bool) {
	if raw == nil {
		return nil, false
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// looksLikeChromeArray checks rule 2: a top-level JSON array whose
// elements carry a `ph` field.
func looksLikeChromeArray(arr []json.RawMessage) bool {
	if len(arr) == 0 {
		return false
	}
	var first map[string]json.RawMessage
	if json.Unmarshal(arr[0], &first) != nil {
		return false
	}
	_, ok := first["ph"]
	return ok
}

// hasDeepTabIndent checks for a line beginning with a tab whose trimmed
// content is longer than 8 characters, per rule 3 (matching the original
// implementation's `l.starts_with('\t') && l.trim().len() > 8`).
func hasDeepTabIndent(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, "\t") {
			continue
		}
		if len(strings.TrimSpace(line)) > 8 {
			return true
		}
	}
	return false
}
