package intervals_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/intervals-mcp/internal/instrumentation"
	"github.com/teemow/intervals-mcp/internal/intervals"
	"github.com/teemow/intervals-mcp/internal/server"
	"github.com/teemow/intervals-mcp/internal/tools/common"
)

// RegisterWellnessTools registers the wellness record tools with the MCP server.
func RegisterWellnessTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	wellnessTool := mcp.NewTool("get_wellness_records",
		mcp.WithDescription("Fetch Intervals.icu wellness records for the athlete between oldest and newest (YYYY-MM-DD)"),
		mcp.WithString("oldest",
			mcp.Required(),
			mcp.Description("Start of the range (YYYY-MM-DD)"),
		),
		mcp.WithString("newest",
			mcp.Required(),
			mcp.Description("End of the range (YYYY-MM-DD)"),
		),
	)

	s.AddTool(wellnessTool, common.InstrumentedToolHandlerWithService(
		"get_wellness_records", instrumentation.ServiceIntervals, "wellness", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetWellnessRecords(ctx, request, sc)
		}))

	return nil
}

func handleGetWellnessRecords(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := missingIntervalsConfig(sc); result != nil {
		return result, nil
	}

	args := request.GetArguments()
	oldest := stringArg(args, "oldest")
	newest := stringArg(args, "newest")

	if !intervals.ValidDate(oldest) || !intervals.ValidDate(newest) {
		return mcp.NewToolResultError(intervals.ErrDateFormat), nil
	}

	env, err := sc.IntervalsClient().Wellness(ctx, oldest, newest)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch wellness records: %v", err)), nil
	}

	return resultJSON(env)
}
