package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

const sampleTrace = `{"traceEvents":[
	{"ph":"M","pid":1,"tid":1,"name":"thread_name","args":{"name":"Main"}},
	{"ph":"X","pid":1,"tid":1,"name":"root","ts":0,"dur":1000,"cat":"function"}
]}`

func writeSampleTrace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.json")
	if err := os.WriteFile(path, []byte(sampleTrace), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestRunParse_PrintsMetadataAndThreads(t *testing.T) {
	path := writeSampleTrace(t)
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := runParse(cmd, []string{path}); err != nil {
		t.Fatalf("runParse error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "total spans: 1") {
		t.Errorf("expected span count in output:\n%s", out)
	}
	if !strings.Contains(out, "Main") {
		t.Errorf("expected thread name 'Main' in output:\n%s", out)
	}
}

func TestRunParse_FileNotFound(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := runParse(cmd, []string{"/nonexistent/trace.json"})
	if err == nil {
		t.Error("expected error for unreadable file")
	}
}

func TestRunRender_TimeOrderProducesCommands(t *testing.T) {
	path := writeSampleTrace(t)
	renderView = "time-order"
	renderWidth = 800
	renderHeight = 400
	renderDpr = 1

	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(renderCmd.Flags())
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := runRender(cmd, []string{path}); err != nil {
		t.Fatalf("runRender error: %v", err)
	}
	if !strings.Contains(buf.String(), `"type"`) {
		t.Errorf("expected JSON render commands, got:\n%s", buf.String())
	}
}

func TestRunRender_SandwichRequiresSelection(t *testing.T) {
	path := writeSampleTrace(t)
	renderView = "sandwich"

	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(renderCmd.Flags())
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := runRender(cmd, []string{path})
	if err == nil {
		t.Error("expected error for sandwich view without --selected-frame-id")
	}
	renderView = "time-order"
}

func TestRootCmd_DefaultIsParse(t *testing.T) {
	if rootCmd.Use != "flamecat [profile]" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "flamecat [profile]")
	}
}
