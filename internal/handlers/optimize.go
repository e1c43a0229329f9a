package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bobmcallan/allocation-lab/internal/common"
)

// OptimizeHandler serves the optimize view as JSON.
type OptimizeHandler struct {
	logger *common.Logger
	view   OptimizeState
}

// NewOptimizeHandler creates a new optimize handler.
func NewOptimizeHandler(logger *common.Logger, view OptimizeState) *OptimizeHandler {
	return &OptimizeHandler{logger: logger, view: view}
}

// ServeHTTP handles GET and POST /api/optimize.
// GET returns the current snapshot and never calls the optimizer.
// POST replaces the parameters with the JSON body and runs the optimizer.
func (h *OptimizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		WriteJSON(w, http.StatusOK, h.view.Snapshot(filter))

	case http.MethodPost:
		req := h.view.Params()
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		if _, err := h.view.Apply(r.Context(), req); err != nil {
			WriteError(w, upstreamStatus(err), err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, h.view.Snapshot(filter))

	default:
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
