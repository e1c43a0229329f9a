package analytics

import (
	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

// Card is a labeled headline figure.
type Card struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Raw   float64 `json:"raw"`
	Note  string  `json:"note,omitempty"`
}

// MetricCards returns the risk metric cards of an optimize result.
func MetricCards(m models.RiskMetrics) []Card {
	return []Card{
		pctCard("Annual Vol", m.VolAnnual, ""),
		pctCard("Max Drawdown", m.MaxDrawdown, ""),
		pctCard("VaR 95%", m.VaR95, ""),
		pctCard("ES 95%", m.ES95, ""),
		ratioCard("Sharpe", m.Sharpe),
		ratioCard("Sortino", m.Sortino),
		ratioCard("Beta (SPY)", m.BetaSPY),
	}
}

// Chip is a short constraint caption.
type Chip struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ConstraintChips returns the applied constraints as captions.
func ConstraintChips(c models.ConstraintsSummary) []Chip {
	return []Chip{
		{Label: "BTC ≤", Value: common.FormatPct(c.BTCCap, 0)},
		{Label: "Cash ≤", Value: common.FormatPct(c.CashCap, 0)},
		{Label: "Per-Asset ≤", Value: common.FormatPct(c.PerAssetCap, 0)},
		{Label: "Budgets", Value: c.BudgetsProfile},
	}
}

// StatCards returns the headline statistics of an asset history.
func StatCards(s models.AssetStats) []Card {
	return []Card{
		pctCard("Total Return", s.TotalReturn, ""),
		pctCard("CAGR", s.CAGR, "annualized"),
		pctCard("Volatility", s.VolAnnual, "annualized"),
		pctCard("Max Drawdown", s.MaxDrawdown, ""),
		pctCard("Worst Period", s.WorstMonth, "single period"),
	}
}

func pctCard(label string, v float64, note string) Card {
	return Card{Label: label, Value: common.FormatPct(v, 1), Raw: v, Note: note}
}

func ratioCard(label string, v float64) Card {
	return Card{Label: label, Value: common.FormatRatio(v), Raw: v}
}
