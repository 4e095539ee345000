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

// RegisterEventTools registers the calendar event tools with the MCP server.
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Last-four-weeks convenience listing. The window is computed server-side
	// so agents don't have to reason about dates or timezones.
	last4wTool := mcp.NewTool("get_last4w_events",
		mcp.WithDescription("Fetch Intervals.icu calendar events for the last 4 weeks"),
	)

	s.AddTool(last4wTool, common.InstrumentedToolHandlerWithService(
		"get_last4w_events", instrumentation.ServiceIntervals, "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleLastFourWeeksEvents(ctx, request, sc)
		}))

	// Explicit-range listing.
	getEventsTool := mcp.NewTool("get_events",
		mcp.WithDescription("Fetch Intervals.icu events between oldest and newest (YYYY-MM-DD)"),
		mcp.WithString("oldest",
			mcp.Required(),
			mcp.Description("Start of the range (YYYY-MM-DD)"),
		),
		mcp.WithString("newest",
			mcp.Required(),
			mcp.Description("End of the range (YYYY-MM-DD)"),
		),
	)

	s.AddTool(getEventsTool, common.InstrumentedToolHandlerWithService(
		"get_events", instrumentation.ServiceIntervals, "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEvents(ctx, request, sc)
		}))

	// Calendar entry creation.
	createEventTool := mcp.NewTool("create_event",
		mcp.WithDescription("Create a planned workout event in the Intervals.icu calendar"),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Event category (e.g. 'WORKOUT')"),
		),
		mcp.WithString("start_date_local",
			mcp.Required(),
			mcp.Description("Local start datetime (YYYY-MM-DDTHH:MM:SS, no timezone offset)"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Activity type (e.g. 'Ride', 'Run', 'Swim')"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Event name/title"),
		),
		mcp.WithString("description",
			mcp.Description("Optional multi-line workout description (e.g. '- 15m Z2')"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandlerWithService(
		"create_event", instrumentation.ServiceIntervals, "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))

	return nil
}

func handleLastFourWeeksEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := missingIntervalsConfig(sc); result != nil {
		return result, nil
	}

	env, err := sc.IntervalsClient().EventsLastFourWeeks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch events: %v", err)), nil
	}

	return resultJSON(env)
}

func handleGetEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := missingIntervalsConfig(sc); result != nil {
		return result, nil
	}

	args := request.GetArguments()
	oldest := stringArg(args, "oldest")
	newest := stringArg(args, "newest")

	if !intervals.ValidDate(oldest) || !intervals.ValidDate(newest) {
		return mcp.NewToolResultError(intervals.ErrDateFormat), nil
	}

	env, err := sc.IntervalsClient().Events(ctx, oldest, newest)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch events: %v", err)), nil
	}

	return resultJSON(env)
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := missingIntervalsConfig(sc); result != nil {
		return result, nil
	}

	args := request.GetArguments()

	spec := intervals.EventSpec{
		Category:       stringArg(args, "category"),
		StartDateLocal: stringArg(args, "start_date_local"),
		Type:           stringArg(args, "type"),
		Name:           stringArg(args, "name"),
		Description:    stringArg(args, "description"),
	}

	if !intervals.ValidDatetime(spec.StartDateLocal) {
		return mcp.NewToolResultError(intervals.ErrDatetimeFormat), nil
	}

	env, err := sc.IntervalsClient().CreateEvent(ctx, spec)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	return resultJSON(env)
}
