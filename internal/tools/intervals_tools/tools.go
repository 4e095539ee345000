package intervals_tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/intervals-mcp/internal/server"
	"github.com/teemow/intervals-mcp/internal/upstream"
)

// RegisterIntervalsTools registers all Intervals.icu-backed tools with the
// MCP server.
func RegisterIntervalsTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterEventTools(s, sc); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	if err := RegisterWellnessTools(s, sc); err != nil {
		return fmt.Errorf("failed to register wellness tools: %w", err)
	}

	if err := RegisterActivityTools(s, sc); err != nil {
		return fmt.Errorf("failed to register activity tools: %w", err)
	}

	return nil
}

// missingIntervalsConfig returns an error result when the Intervals.icu
// credentials are not configured, nil otherwise. Configuration is checked per
// call so the server starts (and the other tools keep working) without them.
func missingIntervalsConfig(sc *server.ServerContext) *mcp.CallToolResult {
	if missing := sc.Config().MissingIntervals(); len(missing) > 0 {
		return mcp.NewToolResultError(upstream.NewConfigError(missing...).Error())
	}
	return nil
}

// stringArg extracts a string argument, returning "" when absent or mistyped.
func stringArg(args map[string]interface{}, key string) string {
	val, _ := args[key].(string)
	return val
}

// resultJSON renders v as an indented-JSON text result.
func resultJSON(v interface{}) (*mcp.CallToolResult, error) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
