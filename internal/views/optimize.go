package views

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/allocation-lab/internal/analytics"
	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

const optimizeViewName = "optimize"

// OptimizeResult is a derived dashboard built from one optimize/frontier pair.
type OptimizeResult struct {
	Optimize      models.OptimizeResponse     `json:"optimize"`
	Frontier      models.FrontierResponse     `json:"frontier"`
	Weights       []analytics.WeightRow       `json:"weights"`
	Allocation    []analytics.AllocationSlice `json:"allocation"`
	Metrics       []analytics.Card            `json:"metrics"`
	Constraints   []analytics.Chip            `json:"constraints"`
	Contributions []models.RiskContribution   `json:"contributions"`
	Geometry      analytics.FrontierGeometry  `json:"geometry"`
}

// OptimizeSnapshot is a point-in-time copy of an OptimizeView.
type OptimizeSnapshot struct {
	Status    Status                 `json:"status"`
	Error     string                 `json:"error,omitempty"`
	Params    models.OptimizeRequest `json:"params"`
	Filter    string                 `json:"filter,omitempty"`
	UpdatedAt time.Time              `json:"updated_at,omitzero"`
	Result    *OptimizeResult        `json:"result,omitempty"`
}

// OptimizeView owns the optimizer parameters and the latest optimize and
// frontier responses. Both responses are replaced together or not at all.
type OptimizeView struct {
	backend  OptimizeBackend
	logger   *common.Logger
	recorder RunRecorder

	mu        sync.Mutex
	params    models.OptimizeRequest
	state     tracker
	optimize  *models.OptimizeResponse
	frontier  *models.FrontierResponse
	updatedAt time.Time
}

// NewOptimizeView creates a view with default parameters and no result.
func NewOptimizeView(backend OptimizeBackend, logger *common.Logger, recorder RunRecorder) *OptimizeView {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &OptimizeView{
		backend:  backend,
		logger:   logger,
		recorder: recorder,
		params:   models.DefaultOptimizeRequest(),
		state:    newTracker(),
	}
}

// Params returns the current parameters.
func (v *OptimizeView) Params() models.OptimizeRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params
}

// SetParams replaces the parameters after validation. It does not run the optimizer.
func (v *OptimizeView) SetParams(req models.OptimizeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	v.mu.Lock()
	v.params = req
	v.mu.Unlock()
	return nil
}

// Run requests /optimize and /frontier concurrently with the current
// parameters. The result is applied only when both succeed and no newer run
// has started since. The returned error is the single failure of this run.
func (v *OptimizeView) Run(ctx context.Context) (OptimizeSnapshot, error) {
	v.mu.Lock()
	seq := v.state.begin()
	params := v.params
	v.mu.Unlock()

	logger := common.LoggerFromContext(ctx, v.logger)
	logger.Debug().
		Str("view", optimizeViewName).
		Int64("seq", int64(seq)).
		Str("profile", string(params.Profile)).
		Float64("btc_max", params.BTCMax).
		Float64("cash_max", params.CashMax).
		Float64("per_asset_max", params.PerAssetMax).
		Msg("Optimize run started")

	var (
		opt  *models.OptimizeResponse
		fron *models.FrontierResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opt, err = v.backend.Optimize(gctx, params)
		return err
	})
	g.Go(func() error {
		var err error
		fron, err = v.backend.Frontier(gctx, params)
		return err
	})
	err := g.Wait()

	v.mu.Lock()
	if !v.state.current(seq) {
		v.mu.Unlock()
		v.recorder.RecordViewRun(optimizeViewName, OutcomeStale)
		logger.Debug().Str("view", optimizeViewName).Int64("seq", int64(seq)).Msg("Discarding superseded optimize run")
		return v.Snapshot(""), err
	}
	if err != nil {
		v.state.fail(err)
	} else {
		v.state.succeed()
		v.optimize, v.frontier = opt, fron
		v.updatedAt = time.Now()
	}
	v.mu.Unlock()

	if err != nil {
		v.recorder.RecordViewRun(optimizeViewName, OutcomeFailure)
		logger.Warn().Str("view", optimizeViewName).Int64("seq", int64(seq)).Err(err).Msg("Optimize run failed")
		return v.Snapshot(""), err
	}

	v.recorder.RecordViewRun(optimizeViewName, OutcomeSuccess)
	logger.Info().
		Str("view", optimizeViewName).
		Int64("seq", int64(seq)).
		Int("weights", len(opt.Weights)).
		Int("frontier_points", len(fron.Frontier)).
		Msg("Optimize run complete")
	return v.Snapshot(""), nil
}

// Apply validates and stores req, then runs the optimizer.
func (v *OptimizeView) Apply(ctx context.Context, req models.OptimizeRequest) (OptimizeSnapshot, error) {
	if err := v.SetParams(req); err != nil {
		return v.Snapshot(""), err
	}
	return v.Run(ctx)
}

// Snapshot copies the view state and derives the dashboard structures.
// filter narrows the weights table.
func (v *OptimizeView) Snapshot(filter string) OptimizeSnapshot {
	v.mu.Lock()
	snap := OptimizeSnapshot{
		Status:    v.state.status,
		Error:     v.state.err,
		Params:    v.params,
		Filter:    filter,
		UpdatedAt: v.updatedAt,
	}
	opt, fron := v.optimize, v.frontier
	v.mu.Unlock()

	if opt != nil && fron != nil {
		snap.Result = buildOptimizeResult(*opt, *fron, filter)
	}
	return snap
}

func buildOptimizeResult(opt models.OptimizeResponse, fron models.FrontierResponse, filter string) *OptimizeResult {
	return &OptimizeResult{
		Optimize:      opt,
		Frontier:      fron,
		Weights:       analytics.WeightRows(opt.Weights, filter),
		Allocation:    analytics.Allocation(opt.Weights),
		Metrics:       analytics.MetricCards(opt.RiskMetrics),
		Constraints:   analytics.ConstraintChips(opt.ConstraintsSummary),
		Contributions: analytics.TopContributions(opt.RiskContributions),
		Geometry:      analytics.BuildFrontierGeometry(fron),
	}
}
