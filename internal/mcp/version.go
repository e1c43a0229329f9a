package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/allocation-lab/internal/config"
)

// versionInfo holds version fields for one component.
type versionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build,omitempty"`
	Commit  string `json:"commit,omitempty"`
	Status  string `json:"status,omitempty"`
}

// VersionTool returns the mcp.Tool definition for the get_version tool.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the dashboard and optimizer versions. Use this to verify connectivity."),
	)
}

// VersionToolHandler combines the dashboard build with the optimizer's health report.
// The optimizer entry is omitted when it cannot be reached.
func VersionToolHandler(prober HealthProber) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		build := config.CurrentBuild()
		result := map[string]versionInfo{
			"allocation_lab": {
				Version: build.Version,
				Build:   build.Build,
				Commit:  build.GitCommit,
			},
		}

		if prober != nil {
			if health, err := prober.Health(ctx); err == nil {
				result["optimizer"] = versionInfo{Version: health.Version, Status: health.Status}
			}
		}

		return jsonResult(result), nil
	}
}
