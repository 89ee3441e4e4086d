package ingest

import "testing"

func TestParseEbpfBpftraceGoldenScenario(t *testing.T) {
	input := "@[\n leaf\n mid\n root\n]: 42\n"

	profile, err := ParseEbpf([]byte(input))
	if err != nil {
		t.Fatalf("ParseEbpf: %v", err)
	}
	if profile.SpanCount() != 3 {
		t.Fatalf("got %d spans, want 3", profile.SpanCount())
	}

	byName := map[string]struct {
		depth uint32
		self  float64
	}{}
	for _, s := range profile.AllSpans() {
		byName[s.Name] = struct {
			depth uint32
			self  float64
		}{s.Depth, s.SelfValue}
	}

	if byName["root"].depth != 0 {
		t.Errorf("root depth = %d, want 0", byName["root"].depth)
	}
	if byName["leaf"].depth != 2 {
		t.Errorf("leaf depth = %d, want 2", byName["leaf"].depth)
	}
	if byName["leaf"].self != 42 {
		t.Errorf("leaf self_value = %v, want 42", byName["leaf"].self)
	}
}

func TestParseEbpfPerfScript(t *testing.T) {
	input := "myapp 1234 100.0:\n\t    7f1 leaf_func+0x10 (/lib/libc.so)\n\t    7f2 mid_func+0x20 (/usr/bin/myapp)\n\t    7f3 root_func (/usr/bin/myapp)\n\nmyapp 1234 101.0:\n\t    7f4 other_func (/usr/bin/myapp)\n"

	profile, err := ParseEbpf([]byte(input))
	if err != nil {
		t.Fatalf("ParseEbpf: %v", err)
	}
	if profile.SpanCount() != 4 {
		t.Fatalf("got %d spans, want 4", profile.SpanCount())
	}

	var rootFunc, leafFunc bool
	for _, s := range profile.AllSpans() {
		switch s.Name {
		case "root_func":
			rootFunc = true
			if s.Depth != 0 {
				t.Errorf("root_func depth = %d, want 0", s.Depth)
			}
		case "leaf_func":
			leafFunc = true
			if s.Depth != 2 {
				t.Errorf("leaf_func depth = %d, want 2", s.Depth)
			}
		}
	}
	if !rootFunc || !leafFunc {
		t.Fatalf("expected root_func and leaf_func frames, got %+v", profile.AllSpans())
	}
}

func TestParseEbpfEmptyInput(t *testing.T) {
	_, err := ParseEbpf([]byte(""))
	if err == nil {
		t.Fatal("expected ErrEmpty for empty input")
	}
}

func TestStripHexAddress(t *testing.T) {
	cases := map[string]string{
		"7f1a2b3c func_name":  "func_name",
		"plain_name":          "plain_name",
		"abcd another_frame":  "another_frame",
	}
	for input, want := range cases {
		if got := stripHexAddress(input); got != want {
			t.Errorf("stripHexAddress(%q) = %q, want %q", input, got, want)
		}
	}
}
