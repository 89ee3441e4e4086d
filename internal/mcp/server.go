// Package mcp exposes the profile-visualization host API (internal/engine)
// as Model Context Protocol tools over stdio, using the teacher's exact
// mark3labs/mcp-go wiring idiom.
package mcp

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/doom-fish/flamecat/internal/engine"
	"github.com/doom-fish/flamecat/internal/format/toon"
	"github.com/doom-fish/flamecat/internal/render"
)

// Server wraps the MCP server and the host engine it dispatches every tool
// call into.
type Server struct {
	server *server.MCPServer
	engine *engine.Engine
}

// NewServer creates a new flamecat MCP server backed by a fresh engine.
func NewServer() *Server {
	s := server.NewMCPServer(
		"flamecat - profile visualization engine",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{server: s, engine: engine.New()}
	srv.registerTools()
	return srv
}

// registerTools adds every host-API tool to the server.
func (srv *Server) registerTools() {
	parseTool := mcp.NewTool("parse_profile",
		mcp.WithDescription("Parse a profiler dump (Chrome trace, Firefox Gecko, V8 .cpuprofile, Speedscope, collapsed stacks, pprof JSON, Tracy, PIX, React DevTools, or eBPF/perf-script) and return an opaque profile handle. Format is auto-detected."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the profile file (gzip supported by .gz/.gzip extension)")),
	)
	srv.server.AddTool(parseTool, srv.handleParseProfile)

	metadataTool := mcp.NewTool("get_profile_metadata",
		mcp.WithDescription("Get a parsed profile's top-level metadata: name, source format, value unit, total value, start/end time"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Profile handle returned by parse_profile")),
	)
	srv.server.AddTool(metadataTool, srv.handleGetProfileMetadata)

	frameCountTool := mcp.NewTool("get_frame_count",
		mcp.WithDescription("Get the total span count across every thread in a parsed profile"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Profile handle returned by parse_profile")),
	)
	srv.server.AddTool(frameCountTool, srv.handleGetFrameCount)

	spanInfoTool := mcp.NewTool("get_span_info",
		mcp.WithDescription("Get the name, timing, self time, depth, category and thread of one span by id"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Profile handle returned by parse_profile")),
		mcp.WithNumber("span_id", mcp.Required(), mcp.Description("Span id to look up")),
	)
	srv.server.AddTool(spanInfoTool, srv.handleGetSpanInfo)

	boundsTool := mcp.NewTool("get_content_bounds",
		mcp.WithDescription("Get a parsed profile's overall start/end time"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Profile handle returned by parse_profile")),
	)
	srv.server.AddTool(boundsTool, srv.handleGetContentBounds)

	threadListTool := mcp.NewTool("get_thread_list",
		mcp.WithDescription("List every thread group in a parsed profile with its span count, sort key, and max stack depth"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Profile handle returned by parse_profile")),
	)
	srv.server.AddTool(threadListTool, srv.handleGetThreadList)

	rankedTool := mcp.NewTool("get_ranked_entries",
		mcp.WithDescription("Aggregate spans by name into self time, total time and occurrence count, sorted by the chosen column"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Profile handle returned by parse_profile")),
		mcp.WithString("sort", mcp.Description("Sort column: self, total, count, or name (default: self)")),
		mcp.WithBoolean("ascending", mcp.Description("Sort ascending instead of descending (default: false)")),
		mcp.WithNumber("thread_id", mcp.Description("Restrict to one thread id (optional, default: all threads)")),
	)
	srv.server.AddTool(rankedTool, srv.handleGetRankedEntries)

	renderViewTool := mcp.NewTool("render_view",
		mcp.WithDescription("Run a view transform (time-order, left-heavy, sandwich, ranked) over a parsed profile and return its RenderCommand stream as JSON"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Profile handle returned by parse_profile")),
		mcp.WithString("view", mcp.Required(), mcp.Description("View: time-order, left-heavy, sandwich, or ranked")),
		mcp.WithNumber("width", mcp.Required(), mcp.Description("Viewport width in pixels")),
		mcp.WithNumber("height", mcp.Required(), mcp.Description("Viewport height in pixels")),
		mcp.WithNumber("dpr", mcp.Description("Device pixel ratio (default: 1)")),
		mcp.WithNumber("selected_frame_id", mcp.Description("Span id to center the sandwich view on (required for view=sandwich)")),
		mcp.WithNumber("view_start", mcp.Description("Visible window start time (time-order only, default: profile start)")),
		mcp.WithNumber("view_end", mcp.Description("Visible window end time (time-order only, default: profile end)")),
		mcp.WithNumber("thread_id", mcp.Description("Restrict to one thread id (optional, default: all threads)")),
		mcp.WithString("ranked_sort", mcp.Description("Sort column for view=ranked: self, total, count, or name (default: self)")),
	)
	srv.server.AddTool(renderViewTool, srv.handleRenderView)

	minimapTool := mcp.NewTool("render_minimap",
		mcp.WithDescription("Render a compressed full-profile overview plus a viewport-indicator rectangle, as a RenderCommand JSON stream"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Profile handle returned by parse_profile")),
		mcp.WithNumber("width", mcp.Required(), mcp.Description("Viewport width in pixels")),
		mcp.WithNumber("height", mcp.Required(), mcp.Description("Viewport height in pixels")),
		mcp.WithNumber("dpr", mcp.Description("Device pixel ratio (default: 1)")),
		mcp.WithNumber("visible_start_frac", mcp.Required(), mcp.Description("Visible window start, as a fraction [0,1] of total duration")),
		mcp.WithNumber("visible_end_frac", mcp.Required(), mcp.Description("Visible window end, as a fraction [0,1] of total duration")),
	)
	srv.server.AddTool(minimapTool, srv.handleRenderMinimap)

	newSessionTool := mcp.NewTool("new_session",
		mcp.WithDescription("Create an empty multi-profile session for laying several profiles on a unified, clock-aligned timeline"),
	)
	srv.server.AddTool(newSessionTool, srv.handleNewSession)

	sessionAddTool := mcp.NewTool("session_add_profile",
		mcp.WithDescription("Add an already-parsed profile to a session, automatically computing its offset on the unified timeline"),
		mcp.WithString("session_handle", mcp.Required(), mcp.Description("Session handle returned by new_session")),
		mcp.WithString("profile_handle", mcp.Required(), mcp.Description("Profile handle returned by parse_profile")),
		mcp.WithString("label", mcp.Description("Human-readable label for this entry")),
	)
	srv.server.AddTool(sessionAddTool, srv.handleSessionAddProfile)

	sessionBoundsTool := mcp.NewTool("session_bounds",
		mcp.WithDescription("Get a session's unified start/end/duration across all aligned profiles"),
		mcp.WithString("session_handle", mcp.Required(), mcp.Description("Session handle returned by new_session")),
	)
	srv.server.AddTool(sessionBoundsTool, srv.handleSessionBounds)
}

// Serve starts the MCP server on stdio; it blocks until stdin closes.
func (srv *Server) Serve() error {
	return server.ServeStdio(srv.server)
}

func (srv *Server) handleParseProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return nil, fmt.Errorf("path is required: %w", err)
	}

	handle, err := srv.engine.ParseProfileFile(path)
	if err != nil {
		log.Printf("mcp: parse_profile %q: %v", path, err)
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	return encodeResult(map[string]string{"handle": handle})
}

func (srv *Server) handleGetProfileMetadata(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle, err := req.RequireString("handle")
	if err != nil {
		return nil, fmt.Errorf("handle is required: %w", err)
	}

	meta, err := srv.engine.GetProfileMetadata(handle)
	if err != nil {
		log.Printf("mcp: get_profile_metadata %q: %v", handle, err)
		return nil, fmt.Errorf("failed to get profile metadata: %w", err)
	}

	return encodeResult(meta)
}

func (srv *Server) handleGetFrameCount(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle, err := req.RequireString("handle")
	if err != nil {
		return nil, fmt.Errorf("handle is required: %w", err)
	}

	count, err := srv.engine.GetFrameCount(handle)
	if err != nil {
		log.Printf("mcp: get_frame_count %q: %v", handle, err)
		return nil, fmt.Errorf("failed to get frame count: %w", err)
	}

	return encodeResult(map[string]int{"frame_count": count})
}

func (srv *Server) handleGetSpanInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle, err := req.RequireString("handle")
	if err != nil {
		return nil, fmt.Errorf("handle is required: %w", err)
	}
	spanID, err := req.RequireFloat("span_id")
	if err != nil {
		return nil, fmt.Errorf("span_id is required: %w", err)
	}

	info, err := srv.engine.GetSpanInfo(handle, uint64(spanID))
	if err != nil {
		log.Printf("mcp: get_span_info %q/%v: %v", handle, spanID, err)
		return nil, fmt.Errorf("failed to get span info: %w", err)
	}

	return encodeResult(info)
}

func (srv *Server) handleGetContentBounds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle, err := req.RequireString("handle")
	if err != nil {
		return nil, fmt.Errorf("handle is required: %w", err)
	}

	bounds, err := srv.engine.GetContentBounds(handle)
	if err != nil {
		log.Printf("mcp: get_content_bounds %q: %v", handle, err)
		return nil, fmt.Errorf("failed to get content bounds: %w", err)
	}

	return encodeResult(bounds)
}

func (srv *Server) handleGetThreadList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle, err := req.RequireString("handle")
	if err != nil {
		return nil, fmt.Errorf("handle is required: %w", err)
	}

	threads, err := srv.engine.GetThreadList(handle)
	if err != nil {
		log.Printf("mcp: get_thread_list %q: %v", handle, err)
		return nil, fmt.Errorf("failed to get thread list: %w", err)
	}

	return encodeResult(threads)
}

func (srv *Server) handleGetRankedEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle, err := req.RequireString("handle")
	if err != nil {
		return nil, fmt.Errorf("handle is required: %w", err)
	}

	sortBy := render.RankedSortBySelf
	if s, err := req.RequireString("sort"); err == nil && s != "" {
		sortBy = render.RankedSort(s)
	}
	ascending, _ := req.RequireBool("ascending")
	threadID := optionalUint32(req, "thread_id")

	entries, err := srv.engine.GetRankedEntries(handle, sortBy, ascending, threadID)
	if err != nil {
		log.Printf("mcp: get_ranked_entries %q: %v", handle, err)
		return nil, fmt.Errorf("failed to get ranked entries: %w", err)
	}

	return encodeResult(entries)
}

func (srv *Server) handleRenderView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle, err := req.RequireString("handle")
	if err != nil {
		return nil, fmt.Errorf("handle is required: %w", err)
	}
	viewStr, err := req.RequireString("view")
	if err != nil {
		return nil, fmt.Errorf("view is required: %w", err)
	}
	width, err := req.RequireFloat("width")
	if err != nil {
		return nil, fmt.Errorf("width is required: %w", err)
	}
	height, err := req.RequireFloat("height")
	if err != nil {
		return nil, fmt.Errorf("height is required: %w", err)
	}
	dpr, ok := optionalFloat(req, "dpr")
	if !ok {
		dpr = 1.0
	}

	opts := engine.RenderOptions{
		ThreadID:   optionalUint32(req, "thread_id"),
		ViewStart:  optionalFloatPtr(req, "view_start"),
		ViewEnd:    optionalFloatPtr(req, "view_end"),
		RankedSort: render.RankedSortBySelf,
	}
	if rs, err := req.RequireString("ranked_sort"); err == nil && rs != "" {
		opts.RankedSort = render.RankedSort(rs)
	}
	if frameID, ok := optionalFloat(req, "selected_frame_id"); ok {
		id := uint64(frameID)
		opts.SelectedFrameID = &id
	}

	viewport := render.Viewport{Width: width, Height: height, Dpr: dpr}

	cmds, err := srv.engine.RenderView(handle, engine.ViewKind(viewStr), viewport, opts)
	if err != nil {
		log.Printf("mcp: render_view %q/%s: %v", handle, viewStr, err)
		return nil, fmt.Errorf("failed to render view: %w", err)
	}

	data, err := render.EncodeCommands(cmds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode render commands: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (srv *Server) handleRenderMinimap(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle, err := req.RequireString("handle")
	if err != nil {
		return nil, fmt.Errorf("handle is required: %w", err)
	}
	width, err := req.RequireFloat("width")
	if err != nil {
		return nil, fmt.Errorf("width is required: %w", err)
	}
	height, err := req.RequireFloat("height")
	if err != nil {
		return nil, fmt.Errorf("height is required: %w", err)
	}
	dpr, ok := optionalFloat(req, "dpr")
	if !ok {
		dpr = 1.0
	}
	visibleStart, err := req.RequireFloat("visible_start_frac")
	if err != nil {
		return nil, fmt.Errorf("visible_start_frac is required: %w", err)
	}
	visibleEnd, err := req.RequireFloat("visible_end_frac")
	if err != nil {
		return nil, fmt.Errorf("visible_end_frac is required: %w", err)
	}

	viewport := render.Viewport{Width: width, Height: height, Dpr: dpr}
	cmds, err := srv.engine.RenderMinimap(handle, viewport, visibleStart, visibleEnd)
	if err != nil {
		log.Printf("mcp: render_minimap %q: %v", handle, err)
		return nil, fmt.Errorf("failed to render minimap: %w", err)
	}

	data, err := render.EncodeCommands(cmds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode render commands: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (srv *Server) handleNewSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle := srv.engine.NewSession()
	return encodeResult(map[string]string{"session_handle": handle})
}

func (srv *Server) handleSessionAddProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionHandle, err := req.RequireString("session_handle")
	if err != nil {
		return nil, fmt.Errorf("session_handle is required: %w", err)
	}
	profileHandle, err := req.RequireString("profile_handle")
	if err != nil {
		return nil, fmt.Errorf("profile_handle is required: %w", err)
	}
	label, _ := req.RequireString("label")

	if err := srv.engine.SessionAddProfile(sessionHandle, profileHandle, label); err != nil {
		log.Printf("mcp: session_add_profile %q/%q: %v", sessionHandle, profileHandle, err)
		return nil, fmt.Errorf("failed to add profile to session: %w", err)
	}

	return encodeResult(map[string]bool{"ok": true})
}

func (srv *Server) handleSessionBounds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionHandle, err := req.RequireString("session_handle")
	if err != nil {
		return nil, fmt.Errorf("session_handle is required: %w", err)
	}

	bounds, err := srv.engine.SessionBounds(sessionHandle)
	if err != nil {
		log.Printf("mcp: session_bounds %q: %v", sessionHandle, err)
		return nil, fmt.Errorf("failed to get session bounds: %w", err)
	}

	return encodeResult(bounds)
}

// encodeResult renders v as TOON, the compact LLM-oriented format every
// other flamecat tool result uses.
func encodeResult(v any) (*mcp.CallToolResult, error) {
	output, err := toon.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(output), nil
}

func optionalFloat(req mcp.CallToolRequest, name string) (float64, bool) {
	v, err := req.RequireFloat(name)
	if err != nil {
		return 0, false
	}
	return v, true
}

func optionalFloatPtr(req mcp.CallToolRequest, name string) *float64 {
	if v, ok := optionalFloat(req, name); ok {
		return &v
	}
	return nil
}

func optionalUint32(req mcp.CallToolRequest, name string) *uint32 {
	if v, ok := optionalFloat(req, name); ok {
		id := uint32(v)
		return &id
	}
	return nil
}
