package ingest

import "testing"

func TestParseCPUProfileTreeBranch(t *testing.T) {
	input := `{
		"nodes": [
			{"id": 1, "callFrame": {"functionName": "(root)"}, "children": [2]},
			{"id": 2, "callFrame": {"functionName": "main"}, "children": [3]},
			{"id": 3, "callFrame": {"functionName": "leaf"}, "children": []}
		],
		"startTime": 1000,
		"endTime": 1100
	}`

	profile, err := ParseCPUProfile([]byte(input))
	if err != nil {
		t.Fatalf("ParseCPUProfile: %v", err)
	}
	if profile.SpanCount() != 3 {
		t.Fatalf("got %d spans, want 3", profile.SpanCount())
	}
	if profile.Meta.EndTime-profile.Meta.StartTime == 0 {
		t.Fatal("expected nonzero duration after rescale")
	}
}

func TestParseCPUProfileTreeBranchZeroDuration(t *testing.T) {
	input := `{
		"nodes": [
			{"id": 1, "callFrame": {"functionName": "root"}, "children": []}
		],
		"startTime": 500,
		"endTime": 500
	}`

	profile, err := ParseCPUProfile([]byte(input))
	if err != nil {
		t.Fatalf("ParseCPUProfile: %v", err)
	}
	if profile.SpanCount() != 1 {
		t.Fatalf("got %d spans, want 1", profile.SpanCount())
	}
}

func TestParseCPUProfileSampledBranch(t *testing.T) {
	input := `{
		"nodes": [
			{"id": 1, "callFrame": {"functionName": "root"}, "children": [2]},
			{"id": 2, "callFrame": {"functionName": "a"}, "children": []}
		],
		"startTime": 0,
		"endTime": 30,
		"samples": [2, 2, 2],
		"timeDeltas": [10, 10, 10]
	}`

	profile, err := ParseCPUProfile([]byte(input))
	if err != nil {
		t.Fatalf("ParseCPUProfile: %v", err)
	}
	if profile.SpanCount() != 2 {
		t.Fatalf("got %d spans, want 2 (lcp merge keeps one root + one frame)", profile.SpanCount())
	}
}

func TestParseCPUProfileAnonymousFunction(t *testing.T) {
	input := `{
		"nodes": [{"id": 1, "callFrame": {"functionName": ""}, "children": []}],
		"startTime": 0,
		"endTime": 0
	}`
	profile, err := ParseCPUProfile([]byte(input))
	if err != nil {
		t.Fatalf("ParseCPUProfile: %v", err)
	}
	if profile.AllSpans()[0].Name != "(anonymous)" {
		t.Errorf("name = %q, want (anonymous)", profile.AllSpans()[0].Name)
	}
}

func TestParseCPUProfileMissingNodes(t *testing.T) {
	_, err := ParseCPUProfile([]byte(`{"nodes": [], "startTime": 0, "endTime": 0}`))
	if err == nil {
		t.Fatal("expected ErrMissingNodes")
	}
}
