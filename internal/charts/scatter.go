package charts

import (
	"math"
	"sort"
	"strconv"
	"strings"

	gocharts "github.com/vicanso/go-charts/v2"

	"github.com/bobmcallan/allocation-lab/internal/analytics"
)

// Line charts in go-charts only have a category x-axis, so continuous
// vol/ret plots are drawn on an evenly spaced vol grid. Points that do not
// belong to a series at a grid index are null and leave a gap.

const (
	frontierGridSize = 61
	curveColor       = "#3b82f6"
	scatterColor     = "#94a3b8"
	maxScatterLayers = 32

	frontierTheme       = "allocation-frontier"
	lessonFrontierTheme = "allocation-lesson-frontier"
)

// frontierRoles fixes the series order, and so the theme color, of markers.
var frontierRoles = []analytics.SpecialRole{
	analytics.RoleMinVariance,
	analytics.RoleMaxSharpe,
	analytics.RoleCurrent,
}

func init() {
	colors := []gocharts.Color{hexColor(curveColor)}
	for _, role := range frontierRoles {
		colors = append(colors, hexColor(analytics.RoleColor(role)))
	}
	addLightTheme(frontierTheme, colors)

	colors = []gocharts.Color{hexColor(curveColor)}
	for i := 0; i < maxScatterLayers; i++ {
		colors = append(colors, hexColor(scatterColor))
	}
	addLightTheme(lessonFrontierTheme, colors)
}

func addLightTheme(name string, series []gocharts.Color) {
	light := gocharts.NewTheme(gocharts.ThemeLight)
	gocharts.AddTheme(name, gocharts.ThemeOption{
		AxisStrokeColor:    light.GetAxisStrokeColor(),
		AxisSplitLineColor: light.GetAxisSplitLineColor(),
		BackgroundColor:    light.GetBackgroundColor(),
		TextColor:          light.GetTextColor(),
		SeriesColors:       series,
	})
}

// hexColor parses "#rrggbb". Anything else is opaque black.
func hexColor(s string) gocharts.Color {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || len(s) != 7 {
		return gocharts.Color{A: 255}
	}
	return gocharts.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// xy is one point of a continuous series.
type xy struct {
	X, Y float64
}

// vgrid returns n evenly spaced values over [lo, hi].
func vgrid(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	g := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range g {
		g[i] = lo + float64(i)*step
	}
	return g
}

// nearestIndex returns the grid index closest to x, clamped to the grid.
func nearestIndex(grid []float64, x float64) int {
	if len(grid) < 2 {
		return 0
	}
	step := (grid[len(grid)-1] - grid[0]) / float64(len(grid)-1)
	if step <= 0 {
		return 0
	}
	i := int(math.Round((x - grid[0]) / step))
	return max(0, min(len(grid)-1, i))
}

func nullSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = gocharts.GetNullValue()
	}
	return s
}

// resample linearly interpolates points onto the grid. Grid values outside
// the points' x span are null. A single point lands on its nearest index.
func resample(points []xy, grid []float64) []float64 {
	out := nullSeries(len(grid))
	if len(points) == 0 {
		return out
	}

	sorted := make([]xy, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	if len(sorted) == 1 {
		out[nearestIndex(grid, sorted[0].X)] = sorted[0].Y
		return out
	}

	lo, hi := sorted[0].X, sorted[len(sorted)-1].X
	for i, x := range grid {
		if x < lo || x > hi {
			continue
		}
		j := sort.Search(len(sorted), func(k int) bool { return sorted[k].X >= x })
		if j == 0 {
			out[i] = sorted[0].Y
			continue
		}
		a, b := sorted[j-1], sorted[j]
		if b.X == a.X {
			out[i] = b.Y
			continue
		}
		t := (x - a.X) / (b.X - a.X)
		out[i] = a.Y + t*(b.Y-a.Y)
	}
	return out
}

// pointSeries places a single value at its nearest grid index.
func pointSeries(grid []float64, p xy) []float64 {
	s := nullSeries(len(grid))
	s[nearestIndex(grid, p.X)] = p.Y
	return s
}

// scatterLayers spreads points over series so that no series holds two
// points on the same or adjacent grid indices; a line series then draws
// each point as an isolated dot. Points beyond maxScatterLayers layers are
// dropped.
func scatterLayers(points []xy, grid []float64) [][]float64 {
	var layers [][]float64
	for _, p := range points {
		idx := nearestIndex(grid, p.X)
		placed := false
		for _, layer := range layers {
			if isFree(layer, idx) {
				layer[idx] = p.Y
				placed = true
				break
			}
		}
		if placed || len(layers) == maxScatterLayers {
			continue
		}
		layer := nullSeries(len(grid))
		layer[idx] = p.Y
		layers = append(layers, layer)
	}
	return layers
}

func isFree(layer []float64, idx int) bool {
	null := gocharts.GetNullValue()
	for i := idx - 1; i <= idx+1; i++ {
		if i >= 0 && i < len(layer) && layer[i] != null {
			return false
		}
	}
	return true
}

// gridLabels formats each grid value with format.
func gridLabels(grid []float64, format func(float64) string) []string {
	labels := make([]string, len(grid))
	for i, v := range grid {
		labels[i] = format(v)
	}
	return labels
}
