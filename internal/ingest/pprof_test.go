package ingest

import "testing"

func TestParsePprofBasic(t *testing.T) {
	input := `{
		"samples": [
			{"locationId": ["2", "1"], "value": [10]},
			{"locationId": ["1"], "value": [5]}
		],
		"locations": [{"id": "1", "functionId": "1"}, {"id": "2", "functionId": "2"}],
		"functions": [{"id": "1", "name": "root"}, {"id": "2", "name": "leaf"}]
	}`
	profile, err := ParsePprof([]byte(input))
	if err != nil {
		t.Fatalf("ParsePprof: %v", err)
	}
	if profile.SpanCount() != 3 {
		t.Fatalf("got %d spans, want 3", profile.SpanCount())
	}

	var root bool
	for _, s := range profile.AllSpans() {
		if s.Name == "root" && s.Depth == 0 {
			root = true
		}
	}
	if !root {
		t.Fatal("expected a root-depth 'root' span (locationId reversed)")
	}
}

func TestParsePprofDurationNanosOverride(t *testing.T) {
	input := `{
		"samples": [{"locationId": ["1"], "value": [1]}],
		"locations": [{"id": "1", "functionId": "1"}],
		"functions": [{"id": "1", "name": "f"}],
		"duration_nanos": 2000000
	}`
	profile, err := ParsePprof([]byte(input))
	if err != nil {
		t.Fatalf("ParsePprof: %v", err)
	}
	if profile.Meta.EndTime-profile.Meta.StartTime != 2000 {
		t.Fatalf("end-start = %v, want 2000 (2,000,000ns -> 2000µs)", profile.Meta.EndTime-profile.Meta.StartTime)
	}
}

func TestParsePprofNoSamples(t *testing.T) {
	_, err := ParsePprof([]byte(`{"samples":[],"locations":[],"functions":[]}`))
	if err == nil {
		t.Fatal("expected ErrNoSamples")
	}
}
