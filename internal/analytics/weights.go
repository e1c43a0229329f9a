package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/bobmcallan/allocation-lab/internal/models"
)

// ClassOrder is the display precedence of asset classes in the weights table.
var ClassOrder = []string{
	"crypto", "equity", "intl_equity", "reit", "fixed_income", "commodity", "cash",
}

// classRank returns the precedence of an asset class. Unknown classes rank
// after every known one.
func classRank(class string) int {
	for i, c := range ClassOrder {
		if c == class {
			return i
		}
	}
	return len(ClassOrder)
}

// FilterWeights keeps the weights whose ticker, name or asset class contains
// filter (case-insensitive) and orders them by class precedence, then weight
// descending. Entries that tie keep their original relative order.
func FilterWeights(weights []models.AssetWeight, filter string) []models.AssetWeight {
	needle := strings.ToLower(filter)

	out := make([]models.AssetWeight, 0, len(weights))
	for _, w := range weights {
		if strings.Contains(strings.ToLower(w.Ticker), needle) ||
			strings.Contains(strings.ToLower(w.Name), needle) ||
			strings.Contains(strings.ToLower(w.AssetClass), needle) {
			out = append(out, w)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := classRank(out[i].AssetClass), classRank(out[j].AssetClass)
		if ri != rj {
			return ri < rj
		}
		return out[i].Weight > out[j].Weight
	})
	return out
}

// weightBarScale is the weight that fills the inline bar completely.
const weightBarScale = 0.3

// WeightBarPercent returns the fill percentage of a weight's inline bar, capped at 100.
func WeightBarPercent(weight float64) float64 {
	return math.Min(weight*100/weightBarScale, 100)
}
