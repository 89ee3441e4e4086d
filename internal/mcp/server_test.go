package mcp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

const sampleChromeTrace = `{"traceEvents":[
	{"ph":"M","pid":1,"tid":1,"name":"thread_name","args":{"name":"Main"}},
	{"ph":"X","pid":1,"tid":1,"name":"root","ts":0,"dur":1000,"cat":"function"},
	{"ph":"X","pid":1,"tid":1,"name":"child","ts":100,"dur":300,"cat":"function"}
]}`

func writeSampleProfile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.json")
	if err := os.WriteFile(path, []byte(sampleChromeTrace), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// mockRequest creates a mock CallToolRequest for testing, mirroring the
// teacher's own handler-level test harness.
func mockRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func parsedHandle(t *testing.T, srv *Server) string {
	t.Helper()
	path := writeSampleProfile(t)
	result, err := srv.handleParseProfile(nil, mockRequest(map[string]any{"path": path}))
	if err != nil {
		t.Fatalf("handleParseProfile error: %v", err)
	}
	text := resultText(t, result)
	if text == "" {
		t.Fatal("expected non-empty handle result")
	}
	return extractHandle(t, text)
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected non-empty tool result content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

// extractHandle pulls the quoted handle value out of a TOON-encoded
// {"handle": "..."} result without pulling in a YAML/TOON decoder just for
// tests.
func extractHandle(t *testing.T, text string) string {
	t.Helper()
	const prefix = "handle:"
	idx := indexOf(text, prefix)
	if idx < 0 {
		t.Fatalf("expected %q in output:\n%s", prefix, text)
	}
	rest := text[idx+len(prefix):]
	rest = trimLine(rest)
	return trimQuotes(rest)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func trimLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return trimSpace(s[:i])
		}
	}
	return trimSpace(s)
}

func trimSpace(s string) string {
	start := 0
	for start < len(s) && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	end := len(s)
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func TestNewServer(t *testing.T) {
	srv := NewServer()
	if srv == nil {
		t.Fatal("expected non-nil server")
	}
	if srv.engine == nil {
		t.Fatal("expected server to carry an engine")
	}
}

func TestHandleParseProfile_Success(t *testing.T) {
	srv := NewServer()
	path := writeSampleProfile(t)

	result, err := srv.handleParseProfile(nil, mockRequest(map[string]any{"path": path}))
	if err != nil {
		t.Fatalf("handleParseProfile error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
}

func TestHandleParseProfile_MissingPath(t *testing.T) {
	srv := NewServer()
	_, err := srv.handleParseProfile(nil, mockRequest(map[string]any{}))
	if err == nil {
		t.Error("expected error for missing path")
	}
}

func TestHandleParseProfile_FileNotFound(t *testing.T) {
	srv := NewServer()
	_, err := srv.handleParseProfile(nil, mockRequest(map[string]any{"path": "/nonexistent/trace.json"}))
	if err == nil {
		t.Error("expected error for unreadable file")
	}
}

func TestHandleGetProfileMetadata(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	result, err := srv.handleGetProfileMetadata(nil, mockRequest(map[string]any{"handle": handle}))
	if err != nil {
		t.Fatalf("handleGetProfileMetadata error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
}

func TestHandleGetProfileMetadata_InvalidHandle(t *testing.T) {
	srv := NewServer()
	_, err := srv.handleGetProfileMetadata(nil, mockRequest(map[string]any{"handle": "does-not-exist"}))
	if err == nil {
		t.Error("expected error for invalid handle")
	}
}

func TestHandleGetFrameCount(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	result, err := srv.handleGetFrameCount(nil, mockRequest(map[string]any{"handle": handle}))
	if err != nil {
		t.Fatalf("handleGetFrameCount error: %v", err)
	}
	text := resultText(t, result)
	if !containsDigit(text) {
		t.Errorf("expected a frame count digit in output:\n%s", text)
	}
}

func containsDigit(s string) bool {
	for _, c := range s {
		if c >= '0' && c <= '9' {
			return true
		}
	}
	return false
}

func TestHandleGetSpanInfo(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	result, err := srv.handleGetSpanInfo(nil, mockRequest(map[string]any{"handle": handle, "span_id": float64(0)}))
	if err != nil {
		t.Fatalf("handleGetSpanInfo error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
}

func TestHandleGetSpanInfo_MissingSpanID(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	_, err := srv.handleGetSpanInfo(nil, mockRequest(map[string]any{"handle": handle}))
	if err == nil {
		t.Error("expected error for missing span_id")
	}
}

func TestHandleGetContentBounds(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	result, err := srv.handleGetContentBounds(nil, mockRequest(map[string]any{"handle": handle}))
	if err != nil {
		t.Fatalf("handleGetContentBounds error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
}

func TestHandleGetThreadList(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	result, err := srv.handleGetThreadList(nil, mockRequest(map[string]any{"handle": handle}))
	if err != nil {
		t.Fatalf("handleGetThreadList error: %v", err)
	}
	text := resultText(t, result)
	if !containsSubstr(text, "Main") {
		t.Errorf("expected thread name 'Main' in output:\n%s", text)
	}
}

func containsSubstr(s, substr string) bool {
	return indexOf(s, substr) >= 0
}

func TestHandleGetRankedEntries(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	result, err := srv.handleGetRankedEntries(nil, mockRequest(map[string]any{"handle": handle}))
	if err != nil {
		t.Fatalf("handleGetRankedEntries error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
}

func TestHandleGetRankedEntries_SortAndThread(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	result, err := srv.handleGetRankedEntries(nil, mockRequest(map[string]any{
		"handle":    handle,
		"sort":      "total",
		"ascending": true,
		"thread_id": float64(1),
	}))
	if err != nil {
		t.Fatalf("handleGetRankedEntries error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
}

func TestHandleRenderView_TimeOrder(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	result, err := srv.handleRenderView(nil, mockRequest(map[string]any{
		"handle": handle,
		"view":   "time-order",
		"width":  float64(800),
		"height": float64(400),
	}))
	if err != nil {
		t.Fatalf("handleRenderView error: %v", err)
	}
	text := resultText(t, result)
	if !containsSubstr(text, `"type"`) {
		t.Errorf("expected JSON render commands, got:\n%s", text)
	}
}

func TestHandleRenderView_UnknownView(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	_, err := srv.handleRenderView(nil, mockRequest(map[string]any{
		"handle": handle,
		"view":   "bogus",
		"width":  float64(800),
		"height": float64(400),
	}))
	if err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestHandleRenderView_SandwichRequiresSelection(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	_, err := srv.handleRenderView(nil, mockRequest(map[string]any{
		"handle": handle,
		"view":   "sandwich",
		"width":  float64(800),
		"height": float64(400),
	}))
	if err == nil {
		t.Error("expected error for sandwich view without selected_frame_id")
	}
}

func TestHandleRenderMinimap(t *testing.T) {
	srv := NewServer()
	handle := parsedHandle(t, srv)

	result, err := srv.handleRenderMinimap(nil, mockRequest(map[string]any{
		"handle":             handle,
		"width":              float64(800),
		"height":             float64(60),
		"visible_start_frac": float64(0),
		"visible_end_frac":   float64(1),
	}))
	if err != nil {
		t.Fatalf("handleRenderMinimap error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
}

func TestSessionLifecycle(t *testing.T) {
	srv := NewServer()
	profileHandle := parsedHandle(t, srv)

	sessionResult, err := srv.handleNewSession(nil, mockRequest(nil))
	if err != nil {
		t.Fatalf("handleNewSession error: %v", err)
	}
	sessionHandle := extractHandleField(t, resultText(t, sessionResult), "session_handle")

	_, err = srv.handleSessionAddProfile(nil, mockRequest(map[string]any{
		"session_handle": sessionHandle,
		"profile_handle": profileHandle,
		"label":          "first",
	}))
	if err != nil {
		t.Fatalf("handleSessionAddProfile error: %v", err)
	}

	result, err := srv.handleSessionBounds(nil, mockRequest(map[string]any{"session_handle": sessionHandle}))
	if err != nil {
		t.Fatalf("handleSessionBounds error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
}

func TestHandleSessionAddProfile_InvalidSession(t *testing.T) {
	srv := NewServer()
	profileHandle := parsedHandle(t, srv)

	_, err := srv.handleSessionAddProfile(nil, mockRequest(map[string]any{
		"session_handle": "missing",
		"profile_handle": profileHandle,
	}))
	if err == nil {
		t.Error("expected error for invalid session handle")
	}
}

func extractHandleField(t *testing.T, text, field string) string {
	t.Helper()
	idx := indexOf(text, field+":")
	if idx < 0 {
		t.Fatalf("expected %q in output:\n%s", field, text)
	}
	rest := trimLine(text[idx+len(field)+1:])
	return trimQuotes(rest)
}
