package views

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bobmcallan/allocation-lab/internal/analytics"
	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

const (
	historyViewName = "history"

	// DefaultTicker and DefaultRange are the initial history selection.
	DefaultTicker = "SPY"
	DefaultRange  = models.Range3Y

	// drawdownTolerance bounds the accepted gap between reported and derived drawdowns.
	drawdownTolerance = 1e-4
)

// EventMarker is a market event positioned on the price chart.
type EventMarker struct {
	models.MarketEvent
	Color string `json:"color"`
}

// HistoryResult is the derived view of one asset history response.
type HistoryResult struct {
	Ticker        string              `json:"ticker"`
	Name          string              `json:"name"`
	RangeYears    int                 `json:"range_years"`
	Prices        []models.PricePoint `json:"prices"`
	Stats         models.AssetStats   `json:"stats"`
	StatCards     []analytics.Card    `json:"stat_cards"`
	Events        []EventMarker       `json:"events"`
	TroughDate    string              `json:"trough_date,omitempty"`
	TroughPercent string              `json:"trough_percent,omitempty"`
}

// HistorySnapshot is a point-in-time copy of a HistoryView.
type HistorySnapshot struct {
	Status     Status              `json:"status"`
	Error      string              `json:"error,omitempty"`
	Ticker     string              `json:"ticker"`
	Range      models.HistoryRange `json:"range"`
	RangeLabel string              `json:"range_label"`
	UpdatedAt  time.Time           `json:"updated_at,omitzero"`
	Result     *HistoryResult      `json:"result,omitempty"`
}

// HistoryView owns the ticker/range selection, the latest asset history and
// the ticker catalog.
type HistoryView struct {
	backend  HistoryBackend
	logger   *common.Logger
	recorder RunRecorder

	mu        sync.Mutex
	ticker    string
	rng       models.HistoryRange
	state     tracker
	result    *models.AssetHistoryResponse
	updatedAt time.Time

	catalogGroup  singleflight.Group
	catalog       []models.TickerMeta
	catalogLoaded bool
}

// NewHistoryView creates a view selecting SPY over three years.
func NewHistoryView(backend HistoryBackend, logger *common.Logger, recorder RunRecorder) *HistoryView {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &HistoryView{
		backend:  backend,
		logger:   logger,
		recorder: recorder,
		ticker:   DefaultTicker,
		rng:      DefaultRange,
		state:    newTracker(),
	}
}

// Selection returns the current ticker and range.
func (v *HistoryView) Selection() (string, models.HistoryRange) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ticker, v.rng
}

// Select stores the selection and fetches its history. An invalid selection
// is rejected without touching the view.
func (v *HistoryView) Select(ctx context.Context, ticker string, r models.HistoryRange) (HistorySnapshot, error) {
	if err := models.ValidateHistoryQuery(ticker, r); err != nil {
		return v.Snapshot(), err
	}
	ticker = models.NormalizeTicker(ticker)

	v.mu.Lock()
	v.ticker, v.rng = ticker, r
	seq := v.state.begin()
	v.mu.Unlock()

	logger := common.LoggerFromContext(ctx, v.logger)
	logger.Debug().
		Str("view", historyViewName).
		Int64("seq", int64(seq)).
		Str("ticker", ticker).
		Str("range", string(r)).
		Msg("History request started")

	resp, err := v.backend.AssetHistory(ctx, ticker, r)

	v.mu.Lock()
	if !v.state.current(seq) {
		v.mu.Unlock()
		v.recorder.RecordViewRun(historyViewName, OutcomeStale)
		logger.Debug().Str("view", historyViewName).Int64("seq", int64(seq)).Msg("Discarding superseded history response")
		return v.Snapshot(), err
	}
	if err != nil {
		v.state.fail(err)
	} else {
		v.state.succeed()
		v.result = resp
		v.updatedAt = time.Now()
	}
	v.mu.Unlock()

	if err != nil {
		v.recorder.RecordViewRun(historyViewName, OutcomeFailure)
		logger.Warn().Str("view", historyViewName).Str("ticker", ticker).Err(err).Msg("History request failed")
		return v.Snapshot(), err
	}

	v.recorder.RecordViewRun(historyViewName, OutcomeSuccess)
	if mismatches := analytics.VerifyDrawdowns(resp.Prices, drawdownTolerance); len(mismatches) > 0 {
		logger.Warn().
			Str("ticker", ticker).
			Int("mismatches", len(mismatches)).
			Str("first_date", mismatches[0].Date).
			Msg("Reported drawdowns disagree with prices")
	}
	logger.Info().
		Str("view", historyViewName).
		Str("ticker", ticker).
		Int("prices", len(resp.Prices)).
		Int("events", len(resp.Events)).
		Msg("History request complete")
	return v.Snapshot(), nil
}

// Snapshot copies the view state and derives the history structures.
func (v *HistoryView) Snapshot() HistorySnapshot {
	v.mu.Lock()
	snap := HistorySnapshot{
		Status:     v.state.status,
		Error:      v.state.err,
		Ticker:     v.ticker,
		Range:      v.rng,
		RangeLabel: v.rng.Label(),
		UpdatedAt:  v.updatedAt,
	}
	resp := v.result
	v.mu.Unlock()

	if resp != nil {
		snap.Result = buildHistoryResult(*resp)
	}
	return snap
}

func buildHistoryResult(resp models.AssetHistoryResponse) *HistoryResult {
	prices := make([]models.PricePoint, len(resp.Prices))
	copy(prices, resp.Prices)

	inRange := analytics.EventsInRange(resp.Prices, resp.Events)
	events := make([]EventMarker, len(inRange))
	for i, e := range inRange {
		events[i] = EventMarker{MarketEvent: e, Color: analytics.EventColor(e.Type)}
	}

	result := &HistoryResult{
		Ticker:     resp.Ticker,
		Name:       resp.Name,
		RangeYears: resp.RangeYears,
		Prices:     prices,
		Stats:      resp.Stats,
		StatCards:  analytics.StatCards(resp.Stats),
		Events:     events,
	}

	derived := analytics.DeriveDrawdowns(pricesOf(prices))
	if worst, idx := analytics.MaxDrawdown(derived); idx >= 0 && worst < 0 {
		result.TroughDate = prices[idx].Date
		result.TroughPercent = common.FormatPct(worst, 1)
	}
	return result
}

func pricesOf(points []models.PricePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Price
	}
	return out
}

// Catalog returns the ticker catalog, fetching it on first use. Concurrent
// first callers share one request. A failed fetch is logged and yields an
// empty catalog; the next call tries again.
func (v *HistoryView) Catalog(ctx context.Context) []models.TickerMeta {
	v.mu.Lock()
	if v.catalogLoaded {
		out := copyTickers(v.catalog)
		v.mu.Unlock()
		return out
	}
	v.mu.Unlock()

	result, err, shared := v.catalogGroup.Do("tickers", func() (any, error) {
		// A flight that finished between the check above and Do already stored it.
		v.mu.Lock()
		if v.catalogLoaded {
			out := v.catalog
			v.mu.Unlock()
			return out, nil
		}
		v.mu.Unlock()

		tickers, err := v.backend.Tickers(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		v.mu.Lock()
		v.catalog = tickers
		v.catalogLoaded = true
		v.mu.Unlock()
		return tickers, nil
	})
	if err != nil {
		common.LoggerFromContext(ctx, v.logger).Warn().Err(err).Bool("shared", shared).Msg("Ticker catalog unavailable")
		return []models.TickerMeta{}
	}
	return copyTickers(result.([]models.TickerMeta))
}

func copyTickers(in []models.TickerMeta) []models.TickerMeta {
	out := make([]models.TickerMeta, len(in))
	copy(out, in)
	return out
}
