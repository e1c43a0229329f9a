package handlers

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/illustrations"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

// PageHandler serves HTML pages rendered with Go templates.
type PageHandler struct {
	logger    *common.Logger
	templates *template.Template
	optimize  OptimizeState
	history   HistoryState
}

// NewPageHandler creates a new page handler that loads templates from the pages directory.
func NewPageHandler(logger *common.Logger, optimize OptimizeState, history HistoryState) *PageHandler {
	pagesDir := FindPagesDir()

	templates := template.Must(template.New("").Funcs(templateFuncs).ParseGlob(filepath.Join(pagesDir, "*.html")))
	template.Must(templates.ParseGlob(filepath.Join(pagesDir, "partials", "*.html")))

	return &PageHandler{
		logger:    logger,
		templates: templates,
		optimize:  optimize,
		history:   history,
	}
}

var templateFuncs = template.FuncMap{
	"pct": func(v float64) string { return common.FormatPct(v, 0) },
	"fixed2": func(v float64) string {
		return strconv.FormatFloat(v, 'f', 2, 64)
	},
}

// FindPagesDir locates the pages directory.
func FindPagesDir() string {
	dirs := []string{
		"./pages",
		"../pages",
		"../../pages",
		".",
	}

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

// bounds are the slider limits shown on the dashboard form.
type bounds struct {
	BTCMax, CashMax, PerAssetMin, PerAssetMax float64
}

var optimizeBounds = bounds{
	BTCMax:      models.MaxBTCCap,
	CashMax:     models.MaxCashCap,
	PerAssetMin: models.MinPerAssetCap,
	PerAssetMax: models.MaxPerAssetCap,
}

// ServeDashboard handles GET /. The optimizer runs only when the form submits
// profile, btc_max, cash_max or per_asset_max; filter narrows the weights table.
func (h *PageHandler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	var formError string
	if hasOptimizeFields(q) {
		req, err := parseOptimizeForm(q, h.optimize.Params())
		if err != nil {
			formError = err.Error()
		} else {
			_, _ = h.optimize.Apply(r.Context(), req)
		}
	}

	snap := h.optimize.Snapshot(q.Get("filter"))
	h.render(w, "dashboard.html", map[string]any{
		"Page":      "dashboard",
		"Snapshot":  snap,
		"Profiles":  models.Profiles,
		"Bounds":    optimizeBounds,
		"FormError": formError,
		"Version":   snap.UpdatedAt.UnixNano(),
	})
}

// ServeHistory handles GET /history?ticker=&range=.
func (h *PageHandler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	var formError string
	if q.Has("ticker") || q.Has("range") {
		ticker, rng := h.history.Selection()
		if t := q.Get("ticker"); t != "" {
			ticker = t
		}
		if v := q.Get("range"); v != "" {
			rng = models.HistoryRange(v)
		}
		if err := models.ValidateHistoryQuery(ticker, rng); err != nil {
			formError = err.Error()
		} else {
			_, _ = h.history.Select(r.Context(), ticker, rng)
		}
	} else {
		ensureHistory(r.Context(), h.history)
	}

	snap := h.history.Snapshot()
	h.render(w, "history.html", map[string]any{
		"Page":      "history",
		"Snapshot":  snap,
		"Tickers":   h.history.Catalog(r.Context()),
		"Ranges":    models.Ranges,
		"FormError": formError,
		"Version":   snap.UpdatedAt.UnixNano(),
	})
}

// ServeLearn handles GET /learn.
func (h *PageHandler) ServeLearn(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	h.render(w, "learn.html", map[string]any{
		"Page":    "learn",
		"Lessons": illustrations.Lessons(),
	})
}

// ServeLesson handles GET /learn/{slug}.
func (h *PageHandler) ServeLesson(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	lesson, err := illustrations.LessonBySlug(r.PathValue("slug"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.render(w, "lesson.html", map[string]any{
		"Page":    "learn",
		"Lesson":  lesson,
		"Lessons": illustrations.Lessons(),
	})
}

func (h *PageHandler) render(w http.ResponseWriter, templateName string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, templateName, data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", templateName).Err(err).Msg("failed to render page")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
