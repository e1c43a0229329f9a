package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

// HealthProber probes the optimizer's /health endpoint.
type HealthProber interface {
	Health(ctx context.Context) (*models.BackendHealth, error)
	BaseURL() string
}

// ServerHealthHandler reports whether the optimizer is reachable.
type ServerHealthHandler struct {
	logger *common.Logger
	prober HealthProber
}

// NewServerHealthHandler creates a new server health handler.
func NewServerHealthHandler(logger *common.Logger, prober HealthProber) *ServerHealthHandler {
	return &ServerHealthHandler{logger: logger, prober: prober}
}

// ServeHTTP handles GET /api/server-health.
func (h *ServerHealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	health, err := h.prober.Health(ctx)
	if err != nil {
		common.LoggerFromContext(r.Context(), h.logger).Warn().
			Str("api_url", h.prober.BaseURL()).
			Err(err).
			Msg("Optimizer health probe failed")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":          "ok",
		"upstream_status": health.Status,
		"version":         health.Version,
	})
}
