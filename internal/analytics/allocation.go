package analytics

import (
	"math"

	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

// AllocationSlice is one segment of the allocation pie.
type AllocationSlice struct {
	Ticker     string  `json:"ticker"`
	AssetClass string  `json:"asset_class"`
	Value      float64 `json:"value"` // percent, one decimal
	Color      string  `json:"color"`
}

// Allocation converts weights to pie slices in input order.
func Allocation(weights []models.AssetWeight) []AllocationSlice {
	out := make([]AllocationSlice, len(weights))
	for i, w := range weights {
		out[i] = AllocationSlice{
			Ticker:     w.Ticker,
			AssetClass: w.AssetClass,
			Value:      math.Round(w.Weight*1000) / 10,
			Color:      ClassColor(w.AssetClass),
		}
	}
	return out
}

// WeightRow is a weights table row with its display fields resolved.
type WeightRow struct {
	Ticker     string  `json:"ticker"`
	Name       string  `json:"name"`
	AssetClass string  `json:"asset_class"`
	ClassLabel string  `json:"class_label"`
	Weight     float64 `json:"weight"`
	WeightPct  string  `json:"weight_pct"`
	BarPercent float64 `json:"bar_percent"`
	Color      string  `json:"color"`
}

// WeightRows filters and orders weights, then resolves each row's display fields.
func WeightRows(weights []models.AssetWeight, filter string) []WeightRow {
	filtered := FilterWeights(weights, filter)
	out := make([]WeightRow, len(filtered))
	for i, w := range filtered {
		out[i] = WeightRow{
			Ticker:     w.Ticker,
			Name:       w.Name,
			AssetClass: w.AssetClass,
			ClassLabel: common.FormatClass(w.AssetClass),
			Weight:     w.Weight,
			WeightPct:  common.FormatPct(w.Weight, 1),
			BarPercent: WeightBarPercent(w.Weight),
			Color:      ClassColor(w.AssetClass),
		}
	}
	return out
}
