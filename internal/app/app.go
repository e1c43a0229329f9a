package app

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/allocation-lab/internal/cache"
	"github.com/bobmcallan/allocation-lab/internal/charts"
	"github.com/bobmcallan/allocation-lab/internal/client"
	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/config"
	"github.com/bobmcallan/allocation-lab/internal/handlers"
	"github.com/bobmcallan/allocation-lab/internal/mcp"
	"github.com/bobmcallan/allocation-lab/internal/metrics"
	"github.com/bobmcallan/allocation-lab/internal/views"
)

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Metrics *metrics.Registry

	Client       *client.LabClient
	OptimizeView *views.OptimizeView
	HistoryView  *views.HistoryView
	ChartCache   *cache.ChartCache

	// HTTP handlers
	PageHandler         *handlers.PageHandler
	HealthHandler       *handlers.HealthHandler
	VersionHandler      *handlers.VersionHandler
	ServerHealthHandler *handlers.ServerHealthHandler
	OptimizeHandler     *handlers.OptimizeHandler
	HistoryHandler      *handlers.HistoryHandler
	TickersHandler      *handlers.TickersHandler
	LearnHandler        *handlers.LearnHandler
	ChartHandler        *handlers.ChartHandler
	MCPHandler          *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	if issues := cfg.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(issues, "; "))
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if env != "" && env != "dev" && !cfg.IsProduction() {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to dev behavior")
	}

	a.Client = client.NewLabClient(cfg.API.URL, cfg.API.Timeout(), client.WithObserver(a.Metrics))
	a.OptimizeView = views.NewOptimizeView(a.Client, logger, a.Metrics)
	a.HistoryView = views.NewHistoryView(a.Client, logger, a.Metrics)
	a.ChartCache = cache.New(cfg.Cache.TTL(), cfg.Cache.MaxEntries).WithRecorder(a.Metrics)

	a.initHandlers()

	logger.Info().
		Str("api_url", cfg.API.URL).
		Str("environment", cfg.Environment).
		Bool("mcp", a.MCPHandler != nil).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	renderer := charts.NewRenderer(a.Config.Charts.Width, a.Config.Charts.Height)

	a.PageHandler = handlers.NewPageHandler(a.Logger, a.OptimizeView, a.HistoryView)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler()
	a.ServerHealthHandler = handlers.NewServerHealthHandler(a.Logger, a.Client)
	a.OptimizeHandler = handlers.NewOptimizeHandler(a.Logger, a.OptimizeView)
	a.HistoryHandler = handlers.NewHistoryHandler(a.Logger, a.HistoryView)
	a.TickersHandler = handlers.NewTickersHandler(a.HistoryView)
	a.LearnHandler = handlers.NewLearnHandler()
	a.ChartHandler = handlers.NewChartHandler(a.Logger, renderer, a.ChartCache, a.OptimizeView, a.HistoryView)

	if a.Config.MCP.Enabled {
		a.MCPHandler = mcp.NewHandler(a.Logger, mcp.Deps{
			Optimize: a.OptimizeView,
			History:  a.HistoryView,
			Prober:   a.Client,
		})
	}

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
