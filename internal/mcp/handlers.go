package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/allocation-lab/internal/illustrations"
	"github.com/bobmcallan/allocation-lab/internal/models"
	"github.com/bobmcallan/allocation-lab/internal/views"
)

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult marshals v into a single text content block.
func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal result: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}
}

// OptimizeToolHandler applies the requested constraints over the current ones.
func OptimizeToolHandler(v Optimizer) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := v.Params()
		if p := r.GetString("profile", ""); p != "" {
			req.Profile = models.Profile(p)
		}
		req.BTCMax = r.GetFloat("btc_max", req.BTCMax)
		req.CashMax = r.GetFloat("cash_max", req.CashMax)
		req.PerAssetMax = r.GetFloat("per_asset_max", req.PerAssetMax)

		if err := req.Validate(); err != nil {
			return errorResult(err.Error()), nil
		}
		if _, err := v.Apply(ctx, req); err != nil {
			return errorResult("optimization failed: " + err.Error()), nil
		}
		return jsonResult(v.Snapshot(r.GetString("filter", ""))), nil
	}
}

// FilterWeightsToolHandler filters the latest weights. It never runs the
// optimizer itself.
func FilterWeightsToolHandler(v Optimizer) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := r.RequireString("query")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		snap := v.Snapshot(query)
		if snap.Result == nil {
			return errorResult("no optimization result yet; call optimize_portfolio first"), nil
		}
		return jsonResult(snap.Result.Weights), nil
	}
}

// AssetHistoryToolHandler selects a ticker and range and returns the result.
func AssetHistoryToolHandler(v History) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := r.RequireString("ticker")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		rng := models.HistoryRange(r.GetString("range", string(views.DefaultRange)))
		if err := models.ValidateHistoryQuery(ticker, rng); err != nil {
			return errorResult(err.Error()), nil
		}

		snap, err := v.Select(ctx, ticker, rng)
		if err != nil {
			return errorResult("history request failed: " + err.Error()), nil
		}
		return jsonResult(snap.Result), nil
	}
}

// ListTickersToolHandler returns the ticker catalog.
func ListTickersToolHandler(v History) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(v.Catalog(ctx)), nil
	}
}

// LessonToolHandler returns a lesson by slug, or all lessons.
func LessonToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := r.GetString("slug", "")
		if slug == "" {
			return jsonResult(illustrations.Lessons()), nil
		}
		lesson, err := illustrations.LessonBySlug(slug)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(lesson), nil
	}
}
