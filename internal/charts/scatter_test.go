package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gocharts "github.com/vicanso/go-charts/v2"

	"github.com/bobmcallan/allocation-lab/internal/analytics"
	"github.com/bobmcallan/allocation-lab/internal/illustrations"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

func TestVgrid(t *testing.T) {
	g := vgrid(0, 1, 5)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, g)
	assert.Equal(t, []float64{3}, vgrid(3, 9, 1))
}

func TestNearestIndex_Clamps(t *testing.T) {
	g := vgrid(0, 1, 11)
	assert.Equal(t, 3, nearestIndex(g, 0.31))
	assert.Equal(t, 0, nearestIndex(g, -5))
	assert.Equal(t, 10, nearestIndex(g, 5))
}

func TestResample_InterpolatesUnevenSpacing(t *testing.T) {
	null := gocharts.GetNullValue()
	g := vgrid(0, 4, 5)

	out := resample([]xy{{X: 3, Y: 30}, {X: 1, Y: 10}, {X: 1.5, Y: 20}}, g)

	assert.Equal(t, null, out[0])
	assert.InDelta(t, 10, out[1], 1e-12)
	assert.InDelta(t, 20+10.0/3, out[2], 1e-12)
	assert.InDelta(t, 30, out[3], 1e-12)
	assert.Equal(t, null, out[4])
}

func TestResample_SinglePoint(t *testing.T) {
	out := resample([]xy{{X: 0.49, Y: 7}}, vgrid(0, 1, 3))
	assert.Equal(t, 7.0, out[1])
	assert.Equal(t, gocharts.GetNullValue(), out[0])
}

func TestScatterLayers_NoAdjacentPoints(t *testing.T) {
	null := gocharts.GetNullValue()
	g := vgrid(0, 10, 11)
	points := []xy{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}, {X: 5, Y: 4}, {X: 9, Y: 5}}

	layers := scatterLayers(points, g)

	placed := 0
	for _, layer := range layers {
		for i, v := range layer {
			if v == null {
				continue
			}
			placed++
			if i > 0 {
				assert.Equal(t, null, layer[i-1], "adjacent points in one layer")
			}
		}
	}
	assert.Equal(t, len(points), placed)
	assert.Len(t, layers, 3)
}

func TestHexColor(t *testing.T) {
	c := hexColor("#3b82f6")
	assert.Equal(t, gocharts.Color{R: 0x3b, G: 0x82, B: 0xf6, A: 255}, c)
	assert.Equal(t, gocharts.Color{A: 255}, hexColor("blue"))
}

func TestFrontier_DrawsOverDomain(t *testing.T) {
	g := analytics.BuildFrontierGeometry(models.FrontierResponse{
		Frontier:  []models.FrontierPoint{{Vol: 0.04, Ret: 0.03}, {Vol: 0.06, Ret: 0.05}, {Vol: 0.22, Ret: 0.09}},
		MinVar:    models.SpecialPoint{Vol: 0.04, Ret: 0.03},
		MaxSharpe: models.SpecialPoint{Vol: 0.10, Ret: 0.07},
		Current:   models.SpecialPoint{Vol: 0.15, Ret: 0.06},
	})
	r := NewRenderer(0, 0)

	first, err := r.Frontier(g)
	require.NoError(t, err)

	g.Domain = [2]float64{0, 5}
	second, err := r.Frontier(g)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(second, pngMagic))
	assert.False(t, bytes.Equal(first, second), "domain must change the drawing")
}

func TestFrontier_MissingMarker(t *testing.T) {
	g := analytics.FrontierGeometry{
		Domain: [2]float64{0.03, 0.24},
		Curve:  []models.FrontierPoint{{Vol: 0.04, Ret: 0.03}, {Vol: 0.22, Ret: 0.09}},
		Markers: []analytics.Marker{
			{Role: analytics.RoleCurrent, Vol: 0.1, Ret: 0.05, Color: analytics.RoleColor(analytics.RoleCurrent)},
		},
	}
	img, err := NewRenderer(0, 0).Frontier(g)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestFrontierLesson_PlotsScatter(t *testing.T) {
	f := illustrations.FrontierIllustration()
	r := NewRenderer(0, 0)

	withScatter, err := r.frontierLesson("c", f)
	require.NoError(t, err)

	f.Scatter = nil
	curveOnly, err := r.frontierLesson("c", f)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(withScatter, curveOnly))
}
