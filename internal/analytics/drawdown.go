// Package analytics derives display structures from optimizer responses.
// Every function here is pure: inputs are never modified and results are new values.
package analytics

import (
	"math"

	"github.com/bobmcallan/allocation-lab/internal/models"
)

// DrawdownPoint is one step of a running-peak scan.
type DrawdownPoint struct {
	Price    float64 `json:"price"`
	Peak     float64 `json:"peak"`
	Drawdown float64 `json:"drawdown"` // (price - peak) / peak, always <= 0
}

// DeriveDrawdowns scans prices left to right and returns the running peak and
// drawdown at every index. Each element depends only on prices[0..i].
func DeriveDrawdowns(prices []float64) []DrawdownPoint {
	out := make([]DrawdownPoint, len(prices))
	if len(prices) == 0 {
		return out
	}

	peak := prices[0]
	for i, price := range prices {
		if price > peak {
			peak = price
		}
		dd := 0.0
		if peak > 0 && price < peak {
			dd = (price - peak) / peak
		}
		out[i] = DrawdownPoint{Price: price, Peak: peak, Drawdown: dd}
	}
	return out
}

// MaxDrawdown returns the deepest drawdown and the index where it occurs.
// The index is -1 for an empty series.
func MaxDrawdown(points []DrawdownPoint) (float64, int) {
	worst, idx := 0.0, -1
	for i, p := range points {
		if idx == -1 || p.Drawdown < worst {
			worst, idx = p.Drawdown, i
		}
	}
	return worst, idx
}

// ApplyDrawdowns returns a copy of a price history with drawdown re-derived
// from the prices.
func ApplyDrawdowns(points []models.PricePoint) []models.PricePoint {
	derived := DeriveDrawdowns(priceValues(points))
	out := make([]models.PricePoint, len(points))
	for i, p := range points {
		out[i] = models.PricePoint{Date: p.Date, Price: p.Price, Drawdown: derived[i].Drawdown}
	}
	return out
}

// DrawdownMismatch records a point where the supplied drawdown disagrees with the derived one.
type DrawdownMismatch struct {
	Index    int     `json:"index"`
	Date     string  `json:"date"`
	Reported float64 `json:"reported"`
	Derived  float64 `json:"derived"`
}

// VerifyDrawdowns compares the drawdowns carried by a history response with the
// ones derived from its prices and returns every point off by more than tolerance.
func VerifyDrawdowns(points []models.PricePoint, tolerance float64) []DrawdownMismatch {
	derived := DeriveDrawdowns(priceValues(points))
	var mismatches []DrawdownMismatch
	for i, p := range points {
		if math.Abs(p.Drawdown-derived[i].Drawdown) > tolerance {
			mismatches = append(mismatches, DrawdownMismatch{
				Index:    i,
				Date:     p.Date,
				Reported: p.Drawdown,
				Derived:  derived[i].Drawdown,
			})
		}
	}
	return mismatches
}

func priceValues(points []models.PricePoint) []float64 {
	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.Price
	}
	return prices
}
