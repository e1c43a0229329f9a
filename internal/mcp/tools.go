package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/allocation-lab/internal/models"
	"github.com/bobmcallan/allocation-lab/internal/views"
)

// Optimizer is the optimize view as seen by MCP tools.
type Optimizer interface {
	Params() models.OptimizeRequest
	Apply(ctx context.Context, req models.OptimizeRequest) (views.OptimizeSnapshot, error)
	Snapshot(filter string) views.OptimizeSnapshot
}

// History is the history view as seen by MCP tools.
type History interface {
	Select(ctx context.Context, ticker string, r models.HistoryRange) (views.HistorySnapshot, error)
	Catalog(ctx context.Context) []models.TickerMeta
}

// HealthProber reports the optimizer's health.
type HealthProber interface {
	Health(ctx context.Context) (*models.BackendHealth, error)
}

// Deps are the views and probes the tools operate on.
type Deps struct {
	Optimize Optimizer
	History  History
	Prober   HealthProber
}

// OptimizeTool runs the optimizer with the given constraints.
func OptimizeTool() mcp.Tool {
	return mcp.NewTool("optimize_portfolio",
		mcp.WithDescription("Run the portfolio optimizer. Omitted parameters keep their current values. Returns weights, risk metrics, constraints and the efficient frontier."),
		mcp.WithString("profile", mcp.Description("Risk budget profile"), mcp.Enum("conservative", "balanced", "growth")),
		mcp.WithNumber("btc_max",
			mcp.Description(fmt.Sprintf("Maximum BTC weight as a fraction, 0 to %.2f", models.MaxBTCCap)),
			mcp.Min(0), mcp.Max(models.MaxBTCCap)),
		mcp.WithNumber("cash_max",
			mcp.Description(fmt.Sprintf("Maximum cash weight as a fraction, 0 to %.2f", models.MaxCashCap)),
			mcp.Min(0), mcp.Max(models.MaxCashCap)),
		mcp.WithNumber("per_asset_max",
			mcp.Description(fmt.Sprintf("Maximum weight of any single asset, %.2f to %.2f", models.MinPerAssetCap, models.MaxPerAssetCap)),
			mcp.Min(models.MinPerAssetCap), mcp.Max(models.MaxPerAssetCap)),
		mcp.WithString("filter", mcp.Description("Only list weights whose ticker, name or class contains this text")),
	)
}

// FilterWeightsTool filters the weights of the latest optimization.
func FilterWeightsTool() mcp.Tool {
	return mcp.NewTool("filter_weights",
		mcp.WithDescription("List the latest optimized weights matching a ticker, name or asset class, ordered by class then weight."),
		mcp.WithString("query", mcp.Description("Case-insensitive text to match"), mcp.Required()),
	)
}

// AssetHistoryTool fetches one asset's history.
func AssetHistoryTool() mcp.Tool {
	return mcp.NewTool("asset_history",
		mcp.WithDescription("Get price history, drawdowns, summary statistics and market events for one ticker."),
		mcp.WithString("ticker", mcp.Description("Ticker symbol, e.g. SPY"), mcp.Required()),
		mcp.WithString("range", mcp.Description("Lookback window"), mcp.Enum("1y", "3y", "5y")),
	)
}

// ListTickersTool lists the tickers with history.
func ListTickersTool() mcp.Tool {
	return mcp.NewTool("list_tickers",
		mcp.WithDescription("List the tickers available for asset history."),
	)
}

// LessonTool returns one lesson, or all lessons when no slug is given.
func LessonTool() mcp.Tool {
	return mcp.NewTool("get_lesson",
		mcp.WithDescription("Get an educational lesson with its illustration data. Without a slug, lists all lessons."),
		mcp.WithString("slug", mcp.Description("Lesson slug"), mcp.Enum("volatility", "drawdown", "var-es", "markowitz")),
	)
}

// RegisterTools adds every tool to s and returns the number registered.
func RegisterTools(s *server.MCPServer, d Deps) int {
	tools := []server.ServerTool{
		{Tool: OptimizeTool(), Handler: OptimizeToolHandler(d.Optimize)},
		{Tool: FilterWeightsTool(), Handler: FilterWeightsToolHandler(d.Optimize)},
		{Tool: AssetHistoryTool(), Handler: AssetHistoryToolHandler(d.History)},
		{Tool: ListTickersTool(), Handler: ListTickersToolHandler(d.History)},
		{Tool: LessonTool(), Handler: LessonToolHandler()},
		{Tool: VersionTool(), Handler: VersionToolHandler(d.Prober)},
	}
	s.AddTools(tools...)
	return len(tools)
}
