package ingest

import "testing"

func TestParseCollapsedGoldenScenario(t *testing.T) {
	input := "main;foo;bar 10\nmain;foo;baz 20\nmain;qux 5\n"

	profile, err := ParseCollapsed([]byte(input))
	if err != nil {
		t.Fatalf("ParseCollapsed: %v", err)
	}
	if profile.SpanCount() != 8 {
		t.Fatalf("got %d spans, want 8", profile.SpanCount())
	}
	if profile.Meta.EndTime != 35 {
		t.Fatalf("end_time = %v, want 35", profile.Meta.EndTime)
	}

	found := false
	for _, s := range profile.AllSpans() {
		if s.Name == "bar" {
			found = true
			if s.SelfValue != 10 {
				t.Errorf("bar self_value = %v, want 10", s.SelfValue)
			}
			if s.Depth != 2 {
				t.Errorf("bar depth = %d, want 2", s.Depth)
			}
		}
	}
	if !found {
		t.Fatal("expected a span named bar")
	}
}

func TestParseCollapsedSkipsLineWithoutCount(t *testing.T) {
	input := "main;foo;bar 10\nmain;nofields\nmain;qux 5\n"
	profile, err := ParseCollapsed([]byte(input))
	if err != nil {
		t.Fatalf("ParseCollapsed: %v", err)
	}
	if profile.SpanCount() != 5 {
		t.Fatalf("got %d spans, want 5 (nofields line skipped)", profile.SpanCount())
	}
}

func TestParseCollapsedEmptyInput(t *testing.T) {
	_, err := ParseCollapsed([]byte(""))
	if err == nil {
		t.Fatal("expected ErrEmpty for empty input")
	}
}

func TestParseCollapsedSkipsCommentsAndBlanks(t *testing.T) {
	input := "# comment\n\nmain;foo 3\n"
	profile, err := ParseCollapsed([]byte(input))
	if err != nil {
		t.Fatalf("ParseCollapsed: %v", err)
	}
	if profile.SpanCount() != 2 {
		t.Fatalf("got %d spans, want 2", profile.SpanCount())
	}
}
