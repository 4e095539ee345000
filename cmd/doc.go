// Package cmd implements the command-line interface for intervals-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing Intervals.icu and Strava tools
//   - auth: Bootstrap Strava OAuth tokens (print authorization URL, exchange code)
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified,
// since MCP clients typically exec the binary directly.
package cmd
