package handlers

import (
	"context"

	"github.com/bobmcallan/allocation-lab/internal/models"
	"github.com/bobmcallan/allocation-lab/internal/views"
)

// OptimizeState is the optimize view as seen by handlers.
type OptimizeState interface {
	Snapshot(filter string) views.OptimizeSnapshot
	Apply(ctx context.Context, req models.OptimizeRequest) (views.OptimizeSnapshot, error)
	Params() models.OptimizeRequest
}

// HistoryState is the history view as seen by handlers.
type HistoryState interface {
	Snapshot() views.HistorySnapshot
	Selection() (string, models.HistoryRange)
	Select(ctx context.Context, ticker string, r models.HistoryRange) (views.HistorySnapshot, error)
	Catalog(ctx context.Context) []models.TickerMeta
}

// ensureHistory loads the default selection if the view has never been loaded.
func ensureHistory(ctx context.Context, v HistoryState) {
	if v.Snapshot().Status == views.StatusIdle {
		ticker, r := v.Selection()
		_, _ = v.Select(ctx, ticker, r)
	}
}
