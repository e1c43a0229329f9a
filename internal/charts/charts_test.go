package charts

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/allocation-lab/internal/analytics"
	"github.com/bobmcallan/allocation-lab/internal/illustrations"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestFrontier_RendersPNG(t *testing.T) {
	g := analytics.BuildFrontierGeometry(models.FrontierResponse{
		Frontier: []models.FrontierPoint{{Vol: 0.04, Ret: 0.03}, {Vol: 0.10, Ret: 0.06}, {Vol: 0.22, Ret: 0.09}},
	})
	img, err := NewRenderer(0, 0).Frontier(g)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestFrontier_EmptyCurve(t *testing.T) {
	_, err := NewRenderer(0, 0).Frontier(analytics.BuildFrontierGeometry(models.FrontierResponse{}))
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestAllocation_RendersPNG(t *testing.T) {
	img, err := NewRenderer(600, 400).Allocation(analytics.Allocation([]models.AssetWeight{
		{Ticker: "VTI", AssetClass: "equity", Weight: 0.6},
		{Ticker: "BND", AssetClass: "fixed_income", Weight: 0.4},
		{Ticker: "ZERO", AssetClass: "cash", Weight: 0},
	}))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestAllocation_NoWeights(t *testing.T) {
	_, err := NewRenderer(0, 0).Allocation(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRiskContributions_RendersPNG(t *testing.T) {
	img, err := NewRenderer(0, 0).RiskContributions([]models.RiskContribution{
		{Ticker: "BTC", ContributionPct: 40}, {Ticker: "VTI", ContributionPct: 35}, {Ticker: "BND", ContributionPct: 25},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestPriceAndDrawdown_RenderPNG(t *testing.T) {
	prices := []models.PricePoint{
		{Date: "2020-01-01", Price: 100}, {Date: "2020-02-01", Price: 90, Drawdown: -0.1}, {Date: "2020-03-01", Price: 105},
	}
	r := NewRenderer(0, 0)

	img, err := r.Price("SPY", prices, []models.MarketEvent{{Date: "2020-02-01", Label: "dip"}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	img, err = r.Drawdown("SPY", prices)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	_, err = r.Price("SPY", nil, nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLesson_EverySlugRenders(t *testing.T) {
	r := NewRenderer(0, 0)
	for _, slug := range illustrations.Slugs() {
		t.Run(slug, func(t *testing.T) {
			img, err := r.Lesson(slug)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(img, pngMagic))
		})
	}
}

func TestLesson_UnknownSlug(t *testing.T) {
	_, err := NewRenderer(0, 0).Lesson("nope")
	assert.Error(t, err)
}

func TestPaddedRange(t *testing.T) {
	lo, hi := paddedRange([]float64{10, 20}, 0.1)
	assert.InDelta(t, 9.0, lo, 1e-12)
	assert.InDelta(t, 21.0, hi, 1e-12)

	lo, hi = paddedRange([]float64{5, 5}, 0.1)
	assert.Equal(t, 4.0, lo)
	assert.Equal(t, 6.0, hi)
}
