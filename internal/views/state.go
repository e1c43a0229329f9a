// Package views holds the per-view request state behind the dashboard pages.
// Each view is safe for concurrent use; its lock is never held across a
// backend call.
package views

import (
	"context"

	"github.com/bobmcallan/allocation-lab/internal/models"
)

// Status is the lifecycle state of a view's latest request.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Outcomes reported to a RunRecorder.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeStale   = "stale"
)

// OptimizeBackend is the subset of the optimizer client used by OptimizeView.
type OptimizeBackend interface {
	Optimize(ctx context.Context, req models.OptimizeRequest) (*models.OptimizeResponse, error)
	Frontier(ctx context.Context, req models.OptimizeRequest) (*models.FrontierResponse, error)
}

// HistoryBackend is the subset of the optimizer client used by HistoryView.
type HistoryBackend interface {
	AssetHistory(ctx context.Context, ticker string, r models.HistoryRange) (*models.AssetHistoryResponse, error)
	Tickers(ctx context.Context) ([]models.TickerMeta, error)
}

// RunRecorder counts request outcomes per view.
type RunRecorder interface {
	RecordViewRun(view, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordViewRun(string, string) {}

// tracker implements the shared transition policy: begin clears the error
// and marks the view loading; only the most recently issued request may
// settle it.
type tracker struct {
	status Status
	err    string
	seq    uint64
}

func newTracker() tracker {
	return tracker{status: StatusIdle}
}

// begin starts a request and returns its sequence number.
func (t *tracker) begin() uint64 {
	t.seq++
	t.status = StatusLoading
	t.err = ""
	return t.seq
}

// current reports whether seq is still the latest issued request.
func (t *tracker) current(seq uint64) bool {
	return seq == t.seq
}

func (t *tracker) succeed() {
	t.status = StatusSuccess
	t.err = ""
}

func (t *tracker) fail(err error) {
	t.status = StatusFailure
	t.err = err.Error()
}
