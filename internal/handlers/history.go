package handlers

import (
	"net/http"

	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

// HistoryHandler serves the history view as JSON.
type HistoryHandler struct {
	logger *common.Logger
	view   HistoryState
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(logger *common.Logger, view HistoryState) *HistoryHandler {
	return &HistoryHandler{logger: logger, view: view}
}

// ServeHTTP handles GET /api/history?ticker=&range=.
// Without a ticker the current selection is returned.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	if !q.Has("ticker") && !q.Has("range") {
		ensureHistory(r.Context(), h.view)
		WriteJSON(w, http.StatusOK, h.view.Snapshot())
		return
	}

	ticker, rng := h.view.Selection()
	if t := q.Get("ticker"); t != "" {
		ticker = t
	}
	if v := q.Get("range"); v != "" {
		rng = models.HistoryRange(v)
	}
	if err := models.ValidateHistoryQuery(ticker, rng); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.view.Select(r.Context(), ticker, rng)
	if err != nil {
		WriteError(w, upstreamStatus(err), err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, snap)
}

// TickersHandler serves the ticker catalog.
type TickersHandler struct {
	view HistoryState
}

// NewTickersHandler creates a new tickers handler.
func NewTickersHandler(view HistoryState) *TickersHandler {
	return &TickersHandler{view: view}
}

// ServeHTTP handles GET /api/tickers.
func (h *TickersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, h.view.Catalog(r.Context()))
}
