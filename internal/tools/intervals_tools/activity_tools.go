package intervals_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/intervals-mcp/internal/instrumentation"
	"github.com/teemow/intervals-mcp/internal/logging"
	"github.com/teemow/intervals-mcp/internal/server"
	"github.com/teemow/intervals-mcp/internal/tools/common"
	"github.com/teemow/intervals-mcp/internal/upstream"
)

// activityEnvelope is the get_activity result: the Intervals.icu envelope,
// plus the Strava activity when the primary response turned out to be a stub
// for a Strava-hosted activity. Both are returned so the caller can see the
// stub it would otherwise have gotten.
type activityEnvelope struct {
	*upstream.Envelope
	Strava interface{} `json:"strava,omitempty"`
}

// stravaHosted reports whether an Intervals.icu activity body is the stub
// Intervals.icu returns for activities it does not host itself: a JSON object
// whose source field is "STRAVA" and which carries a "_note" explaining that
// the data lives elsewhere.
func stravaHosted(body interface{}) bool {
	obj, ok := body.(map[string]interface{})
	if !ok {
		return false
	}
	if src, _ := obj["source"].(string); src != "STRAVA" {
		return false
	}
	_, hasNote := obj["_note"]
	return hasNote
}

// RegisterActivityTools registers the activity tools with the MCP server.
func RegisterActivityTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getActivityTool := mcp.NewTool("get_activity",
		mcp.WithDescription("Fetch an Intervals.icu activity by ID, following through to Strava when the activity is hosted there"),
		mcp.WithString("activity_id",
			mcp.Required(),
			mcp.Description("The activity ID to fetch"),
		),
	)

	s.AddTool(getActivityTool, common.InstrumentedToolHandlerWithService(
		"get_activity", instrumentation.ServiceIntervals, "activity", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetActivity(ctx, request, sc)
		}))

	getCommentsTool := mcp.NewTool("get_activity_comments",
		mcp.WithDescription("Fetch Intervals.icu comments for a given activity ID"),
		mcp.WithString("activity_id",
			mcp.Required(),
			mcp.Description("The activity ID to fetch comments for"),
		),
	)

	s.AddTool(getCommentsTool, common.InstrumentedToolHandlerWithService(
		"get_activity_comments", instrumentation.ServiceIntervals, "comments", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetActivityComments(ctx, request, sc)
		}))

	return nil
}

func handleGetActivity(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := missingIntervalsConfig(sc); result != nil {
		return result, nil
	}

	args := request.GetArguments()
	activityID, ok := args["activity_id"].(string)
	if !ok || activityID == "" {
		return mcp.NewToolResultError("activity_id is required"), nil
	}

	env, err := sc.IntervalsClient().Activity(ctx, activityID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch activity: %v", err)), nil
	}

	result := activityEnvelope{Envelope: env}
	if stravaHosted(env.Data) {
		sc.Logger().Debug("activity hosted on Strava, fetching from secondary API",
			logging.Activity(activityID))
		stravaResult, err := sc.StravaClient().FetchActivity(ctx, activityID)
		if err != nil {
			// The primary stub is still useful on its own; surface the
			// secondary failure inside the envelope instead of discarding it.
			result.Strava = map[string]interface{}{"error": err.Error()}
		} else {
			result.Strava = stravaResult
		}
	}

	return resultJSON(result)
}

func handleGetActivityComments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := missingIntervalsConfig(sc); result != nil {
		return result, nil
	}

	args := request.GetArguments()
	activityID, ok := args["activity_id"].(string)
	if !ok || activityID == "" {
		return mcp.NewToolResultError("activity_id is required"), nil
	}

	env, err := sc.IntervalsClient().ActivityComments(ctx, activityID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch activity comments: %v", err)), nil
	}

	return resultJSON(env)
}
