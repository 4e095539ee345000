package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/intervals-mcp/internal/server"
)

// RegisterResources registers the server metadata resources.
func RegisterResources(s *mcpserver.MCPServer, sc *server.ServerContext, version string) error {
	statusResource := mcp.NewResource(
		"config://status",
		"Upstream Configuration Status",
		mcp.WithResourceDescription("Reports which upstream credentials are configured, as booleans"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(statusResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleConfigStatus(ctx, request, sc)
	})

	infoResource := mcp.NewResource(
		"server://info",
		"Server Information",
		mcp.WithResourceDescription("Server name, version, and runtime information"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(infoResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleServerInfo(ctx, request, version)
	})

	return nil
}

// handleConfigStatus reports credential presence per upstream. Booleans only,
// never the values.
func handleConfigStatus(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	cfg := sc.Config()

	statusData := map[string]interface{}{
		"intervals": map[string]interface{}{
			"configured": cfg.IntervalsConfigured(),
			"athlete_id": cfg.AthleteID != "",
		},
		"strava": map[string]interface{}{
			"configured":    cfg.StravaReady(),
			"client_id":     cfg.ClientID != "",
			"client_secret": cfg.ClientSecret != "",
			"access_token":  cfg.AccessToken != "",
			"refresh_token": cfg.RefreshToken != "",
		},
	}

	jsonData, err := json.MarshalIndent(statusData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleServerInfo returns static server metadata.
func handleServerInfo(_ context.Context, request mcp.ReadResourceRequest, version string) ([]mcp.ResourceContents, error) {
	infoData := map[string]interface{}{
		"name":       "intervals-mcp",
		"version":    version,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}

	jsonData, err := json.MarshalIndent(infoData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal server info: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
