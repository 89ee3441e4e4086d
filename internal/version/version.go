// Package version carries the build-time version stamp for the CLI and
// MCP server.
package version

// Version is overridden at build time via -ldflags.
var Version = "dev"
