package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bobmcallan/allocation-lab/internal/analytics"
	"github.com/bobmcallan/allocation-lab/internal/cache"
	"github.com/bobmcallan/allocation-lab/internal/charts"
	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/illustrations"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

// ChartHandler serves rendered chart images from the chart cache.
type ChartHandler struct {
	logger   *common.Logger
	renderer *charts.Renderer
	cache    *cache.ChartCache
	optimize OptimizeState
	history  HistoryState
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(logger *common.Logger, renderer *charts.Renderer, c *cache.ChartCache, optimize OptimizeState, history HistoryState) *ChartHandler {
	return &ChartHandler{
		logger:   logger,
		renderer: renderer,
		cache:    c,
		optimize: optimize,
		history:  history,
	}
}

// ServeHTTP handles GET /charts/{file}, where file is "<name>.png".
func (h *ChartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	file := r.PathValue("file")
	name, ok := strings.CutSuffix(file, ".png")
	if !ok || name == "" {
		http.NotFound(w, r)
		return
	}

	version, render, ok := h.source(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	img, err := h.cache.GetOrRender(cache.MakeKey(name, version), func() (*cache.Image, error) {
		body, err := render()
		if err != nil {
			return nil, err
		}
		return &cache.Image{ContentType: charts.ContentType, Body: body}, nil
	})
	if errors.Is(err, charts.ErrNoData) {
		WriteError(w, http.StatusNotFound, "no data for chart "+name)
		return
	}
	if err != nil {
		common.LoggerFromContext(r.Context(), h.logger).Error().Str("chart", name).Err(err).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, "chart render failed")
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(img.Body)
}

// source resolves a chart name to its data version and render function.
func (h *ChartHandler) source(name string) (string, func() ([]byte, error), bool) {
	if slug, ok := strings.CutPrefix(name, "lesson-"); ok {
		if _, err := illustrations.LessonBySlug(slug); err != nil {
			return "", nil, false
		}
		return "static", func() ([]byte, error) { return h.renderer.Lesson(slug) }, true
	}

	switch name {
	case "frontier", "allocation", "risk":
		snap := h.optimize.Snapshot("")
		version := strconv.FormatInt(snap.UpdatedAt.UnixNano(), 10)
		res := snap.Result
		if res == nil {
			return "empty", func() ([]byte, error) { return nil, charts.ErrNoData }, true
		}
		switch name {
		case "frontier":
			return version, func() ([]byte, error) { return h.renderer.Frontier(res.Geometry) }, true
		case "allocation":
			return version, func() ([]byte, error) { return h.renderer.Allocation(res.Allocation) }, true
		default:
			return version, func() ([]byte, error) { return h.renderer.RiskContributions(res.Optimize.RiskContributions) }, true
		}

	case "price", "drawdown":
		snap := h.history.Snapshot()
		res := snap.Result
		if res == nil {
			return "empty", func() ([]byte, error) { return nil, charts.ErrNoData }, true
		}
		version := res.Ticker + "-" + strconv.FormatInt(snap.UpdatedAt.UnixNano(), 10)
		if name == "price" {
			events := make([]models.MarketEvent, len(res.Events))
			for i, e := range res.Events {
				events[i] = e.MarketEvent
			}
			return version, func() ([]byte, error) { return h.renderer.Price(res.Ticker, res.Prices, events) }, true
		}
		return version, func() ([]byte, error) {
			return h.renderer.Drawdown(res.Ticker, analytics.ApplyDrawdowns(res.Prices))
		}, true
	}

	return "", nil, false
}
