package ingest

import "testing"

func TestParsePIXNestedEvents(t *testing.T) {
	input := `{
		"events": [{
			"name": "frame",
			"start": 0,
			"end": 16.6,
			"children": [{"name": "draw_call", "start": 1, "duration": 2, "children": []}]
		}]
	}`
	profile, err := ParsePIX([]byte(input))
	if err != nil {
		t.Fatalf("ParsePIX: %v", err)
	}
	if profile.SpanCount() != 2 {
		t.Fatalf("got %d spans, want 2", profile.SpanCount())
	}

	var drawCall bool
	for _, s := range profile.AllSpans() {
		if s.Name == "draw_call" {
			drawCall = true
			if s.End != 3 {
				t.Errorf("draw_call end = %v, want 3 (start+duration)", s.End)
			}
			if s.Depth != 1 {
				t.Errorf("draw_call depth = %d, want 1", s.Depth)
			}
		}
	}
	if !drawCall {
		t.Fatal("expected a draw_call span")
	}
}

func TestParsePIXEmptyEvents(t *testing.T) {
	_, err := ParsePIX([]byte(`{"events":[]}`))
	if err == nil {
		t.Fatal("expected ErrEmpty")
	}
}
