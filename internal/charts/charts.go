// Package charts renders dashboard and lesson charts as PNG images.
package charts

import (
	"errors"
	"fmt"
	"math"
	"strings"

	gocharts "github.com/vicanso/go-charts/v2"

	"github.com/bobmcallan/allocation-lab/internal/analytics"
	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/illustrations"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

// ErrNoData is returned when there is nothing to draw yet.
var ErrNoData = errors.New("no chart data")

// ContentType of every rendered chart.
const ContentType = "image/png"

// Renderer draws charts at a fixed size.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer; non-positive sizes fall back to 800x450.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 450
	}
	return &Renderer{width: width, height: height}
}

func (r *Renderer) base(title, subtitle string) []gocharts.OptionFunc {
	return []gocharts.OptionFunc{
		gocharts.TitleTextOptionFunc(title, subtitle),
		gocharts.ThemeOptionFunc(gocharts.ThemeLight),
		gocharts.WidthOptionFunc(r.width),
		gocharts.HeightOptionFunc(r.height),
	}
}

// Frontier draws the efficient-frontier curve over g.Domain with one pinned
// marker series per special point. The subtitle repeats the markers' vol / ret.
func (r *Renderer) Frontier(g analytics.FrontierGeometry) ([]byte, error) {
	if len(g.Curve) == 0 {
		return nil, ErrNoData
	}

	grid := vgrid(g.Domain[0], g.Domain[1], frontierGridSize)
	points := make([]xy, len(g.Curve))
	for i, p := range g.Curve {
		points[i] = xy{X: p.Vol, Y: p.Ret * 100}
	}

	values := [][]float64{resample(points, grid)}
	names := []string{"Efficient Frontier"}
	pinned := []bool{false}
	parts := make([]string, 0, len(g.Markers))
	for _, role := range frontierRoles {
		names = append(names, analytics.RoleLegend(role))
		m, ok := markerFor(g.Markers, role)
		pinned = append(pinned, ok)
		if !ok {
			// Keeps the series index, and so the theme color, of later roles.
			values = append(values, nullSeries(len(grid)))
			continue
		}
		values = append(values, pointSeries(grid, xy{X: m.Vol, Y: m.Ret * 100}))
		parts = append(parts, analytics.RoleLegend(role)+" "+m.Legend)
	}

	series := gocharts.NewSeriesListDataFromValues(values, gocharts.ChartTypeLine)
	for i := range series {
		series[i].Name = names[i]
		if pinned[i] {
			series[i].MarkPoint = gocharts.NewMarkPoint(gocharts.SeriesMarkDataTypeMin)
		}
	}

	yMin, yMax := paddedRange(flatten(values), 0.1)
	opts := append(r.base("Efficient Frontier", strings.Join(parts, " • ")),
		gocharts.ThemeOptionFunc(frontierTheme),
		gocharts.XAxisOptionFunc(gocharts.XAxisOption{
			Data:        gridLabels(grid, func(v float64) string { return common.FormatPct(v, 1) }),
			BoundaryGap: gocharts.FalseFlag(),
			SplitNumber: splitFor(len(grid)),
		}),
		gocharts.YAxisOptionFunc(gocharts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		gocharts.LegendOptionFunc(gocharts.LegendOption{Data: names}),
	)
	return render(gocharts.Render(gocharts.ChartOption{SeriesList: series}, opts...))
}

func markerFor(markers []analytics.Marker, role analytics.SpecialRole) (analytics.Marker, bool) {
	for _, m := range markers {
		if m.Role == role {
			return m, true
		}
	}
	return analytics.Marker{}, false
}

// Allocation draws the weights pie.
func (r *Renderer) Allocation(slices []analytics.AllocationSlice) ([]byte, error) {
	values := make([]float64, 0, len(slices))
	labels := make([]string, 0, len(slices))
	for _, s := range slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, s.Value)
		labels = append(labels, fmt.Sprintf("%s (%.1f%%)", s.Ticker, s.Value))
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	opts := append(r.base("Allocation", ""),
		gocharts.LegendOptionFunc(gocharts.LegendOption{Data: labels, Top: gocharts.PositionTop}),
	)
	return render(gocharts.PieRender(values, opts...))
}

// RiskContributions draws the top risk contributions as bars.
func (r *Renderer) RiskContributions(rc []models.RiskContribution) ([]byte, error) {
	top := analytics.TopContributions(rc)
	if len(top) == 0 {
		return nil, ErrNoData
	}

	values := make([]float64, len(top))
	tickers := make([]string, len(top))
	for i, c := range top {
		values[i] = c.ContributionPct
		tickers[i] = c.Ticker
	}

	opts := append(r.base("Risk Contributions", "% of portfolio variance"),
		gocharts.XAxisDataOptionFunc(tickers),
	)
	return render(gocharts.BarRender([][]float64{values}, opts...))
}

// Price draws an asset's simulated price history. Events in range are named
// in the subtitle.
func (r *Renderer) Price(ticker string, prices []models.PricePoint, events []models.MarketEvent) ([]byte, error) {
	if len(prices) == 0 {
		return nil, ErrNoData
	}

	values := make([]float64, len(prices))
	dates := make([]string, len(prices))
	for i, p := range prices {
		values[i] = p.Price
		dates[i] = p.Date
	}

	labels := make([]string, len(events))
	for i, e := range events {
		labels[i] = e.Label
	}

	yMin, yMax := paddedRange(values, 0.05)
	opts := append(r.base(ticker+" Price", strings.Join(labels, " • ")),
		gocharts.XAxisOptionFunc(gocharts.XAxisOption{Data: dates, BoundaryGap: gocharts.FalseFlag(), SplitNumber: splitFor(len(dates))}),
		gocharts.YAxisOptionFunc(gocharts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
	)
	return render(gocharts.LineRender([][]float64{values}, opts...))
}

// Drawdown draws an asset's drawdown from its running peak, in percent.
func (r *Renderer) Drawdown(ticker string, prices []models.PricePoint) ([]byte, error) {
	if len(prices) == 0 {
		return nil, ErrNoData
	}

	values := make([]float64, len(prices))
	dates := make([]string, len(prices))
	for i, p := range prices {
		values[i] = p.Drawdown * 100
		dates[i] = p.Date
	}

	yMin, _ := paddedRange(values, 0.05)
	yMax := 0.0
	opts := append(r.base(ticker+" Drawdown", "% below running peak"),
		gocharts.XAxisOptionFunc(gocharts.XAxisOption{Data: dates, BoundaryGap: gocharts.FalseFlag(), SplitNumber: splitFor(len(dates))}),
		gocharts.YAxisOptionFunc(gocharts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
	)
	return render(gocharts.LineRender([][]float64{values}, opts...))
}

// Lesson draws the illustration chart of a learn page.
func (r *Renderer) Lesson(slug string) ([]byte, error) {
	lesson, err := illustrations.LessonBySlug(slug)
	if err != nil {
		return nil, err
	}

	switch data := lesson.Data.(type) {
	case []illustrations.WalkPoint:
		return r.walk(lesson.Caption, data)
	case []illustrations.DrawdownSample:
		return r.drawdownLesson(lesson.Caption, data)
	case illustrations.Histogram:
		return r.histogram(lesson.Caption, data)
	case illustrations.FrontierSample:
		return r.frontierLesson(lesson.Caption, data)
	default:
		return nil, fmt.Errorf("lesson %q has no chart", slug)
	}
}

func (r *Renderer) walk(caption string, points []illustrations.WalkPoint) ([]byte, error) {
	low := make([]float64, len(points))
	high := make([]float64, len(points))
	steps := make([]string, len(points))
	for i, p := range points {
		low[i], high[i] = p.LowVol, p.HighVol
		steps[i] = fmt.Sprintf("%d", p.Step)
	}

	opts := append(r.base("Volatility", caption),
		gocharts.XAxisOptionFunc(gocharts.XAxisOption{Data: steps, BoundaryGap: gocharts.FalseFlag()}),
		gocharts.LegendOptionFunc(gocharts.LegendOption{Data: []string{"Low volatility", "High volatility"}}),
	)
	return render(gocharts.LineRender([][]float64{low, high}, opts...))
}

func (r *Renderer) drawdownLesson(caption string, samples []illustrations.DrawdownSample) ([]byte, error) {
	prices := make([]float64, len(samples))
	dd := make([]float64, len(samples))
	steps := make([]string, len(samples))
	for i, s := range samples {
		prices[i], dd[i] = s.Price, s.DrawdownPct
		steps[i] = fmt.Sprintf("%d", s.Step)
	}

	series := gocharts.NewSeriesListDataFromValues([][]float64{prices, dd}, gocharts.ChartTypeLine)
	series[0].Name = "Price"
	series[1].Name = "Drawdown %"
	series[1].AxisIndex = 1

	opts := append(r.base("Drawdown", caption),
		gocharts.XAxisOptionFunc(gocharts.XAxisOption{Data: steps, BoundaryGap: gocharts.FalseFlag()}),
		gocharts.YAxisOptionFunc(
			gocharts.YAxisOption{DivideCount: 5},
			gocharts.YAxisOption{DivideCount: 5, Position: gocharts.PositionRight},
		),
		gocharts.LegendOptionFunc(gocharts.LegendOption{Data: []string{"Price", "Drawdown %"}}),
	)
	return render(gocharts.Render(gocharts.ChartOption{SeriesList: series}, opts...))
}

func (r *Renderer) histogram(caption string, h illustrations.Histogram) ([]byte, error) {
	freqs := make([]float64, len(h.Bins))
	labels := make([]string, len(h.Bins))
	for i, b := range h.Bins {
		freqs[i] = b.Freq
		labels[i] = fmt.Sprintf("%.1f", b.Return)
	}

	subtitle := fmt.Sprintf("%s • VaR 95%% %.1f%% • ES 95%% %.1f%%", caption, h.VaR95, h.ES95)
	opts := append(r.base("VaR & Expected Shortfall", subtitle),
		gocharts.XAxisDataOptionFunc(labels),
	)
	return render(gocharts.BarRender([][]float64{freqs}, opts...))
}

func (r *Renderer) frontierLesson(caption string, f illustrations.FrontierSample) ([]byte, error) {
	curve := make([]xy, len(f.Curve))
	for i, p := range f.Curve {
		curve[i] = xy{X: p.Vol, Y: p.Ret}
	}
	scatter := make([]xy, len(f.Scatter))
	for i, p := range f.Scatter {
		scatter[i] = xy{X: p.Vol, Y: p.Ret}
	}

	lo, hi := paddedRange(append(xs(curve), xs(scatter)...), 0.05)
	grid := vgrid(math.Max(0, lo), hi, frontierGridSize)

	values := append([][]float64{resample(curve, grid)}, scatterLayers(scatter, grid)...)
	series := gocharts.NewSeriesListDataFromValues(values, gocharts.ChartTypeLine)
	series[0].Name = "Efficient frontier"
	for i := 1; i < len(series); i++ {
		series[i].Name = "Sampled portfolios"
	}

	yMin, yMax := paddedRange(flatten(values), 0.05)
	opts := append(r.base("Efficient Frontier", caption),
		gocharts.ThemeOptionFunc(lessonFrontierTheme),
		gocharts.XAxisOptionFunc(gocharts.XAxisOption{
			Data:        gridLabels(grid, func(v float64) string { return fmt.Sprintf("%.1f", v) }),
			BoundaryGap: gocharts.FalseFlag(),
			SplitNumber: splitFor(len(grid)),
		}),
		gocharts.YAxisOptionFunc(gocharts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		gocharts.LegendOptionFunc(gocharts.LegendOption{Data: []string{"Efficient frontier", "Sampled portfolios"}}),
	)
	return render(gocharts.Render(gocharts.ChartOption{SeriesList: series}, opts...))
}

func xs(points []xy) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.X
	}
	return out
}

func flatten(values [][]float64) []float64 {
	var out []float64
	for _, v := range values {
		out = append(out, v...)
	}
	return out
}

func render(p *gocharts.Painter, err error) ([]byte, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return p.Bytes()
}

// paddedRange returns [min, max] widened by frac of the span on each side.
// Null values are skipped; with no values the range is [-1, 1].
func paddedRange(values []float64, frac float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v == gocharts.GetNullValue() {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return -1, 1
	}
	pad := (hi - lo) * frac
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}

// splitFor picks an x-axis label count that keeps labels readable.
func splitFor(n int) int {
	switch {
	case n > 500:
		return 10
	case n > 50:
		return 8
	default:
		return 0
	}
}
