package models

import (
	"fmt"
	"strings"
)

// HistoryRange selects how many years of simulated history to fetch.
type HistoryRange string

const (
	Range1Y HistoryRange = "1y"
	Range3Y HistoryRange = "3y"
	Range5Y HistoryRange = "5y"
)

// Ranges lists the accepted ranges in display order.
var Ranges = []HistoryRange{Range1Y, Range3Y, Range5Y}

// Valid reports whether r is one of the known ranges.
func (r HistoryRange) Valid() bool {
	for _, known := range Ranges {
		if r == known {
			return true
		}
	}
	return false
}

// Label returns the human label shown on the range selector.
func (r HistoryRange) Label() string {
	switch r {
	case Range1Y:
		return "1 Year"
	case Range3Y:
		return "3 Years"
	case Range5Y:
		return "5 Years"
	default:
		return string(r)
	}
}

// NormalizeTicker upper-cases and trims a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// ValidateHistoryQuery checks a ticker/range pair before it is sent upstream.
func ValidateHistoryQuery(ticker string, r HistoryRange) error {
	if NormalizeTicker(ticker) == "" {
		return fmt.Errorf("ticker is required")
	}
	if !r.Valid() {
		return fmt.Errorf("range %q is not one of 1y, 3y, 5y", r)
	}
	return nil
}

// EventType classifies a market-context annotation.
type EventType string

const (
	EventCrisis EventType = "crisis"
	EventMacro  EventType = "macro"
	EventCrypto EventType = "crypto"
	EventBull   EventType = "bull"
	EventInfo   EventType = "info"
)

// PricePoint is one sample of a simulated price history.
// Date is a calendar day in YYYY-MM-DD form.
type PricePoint struct {
	Date     string  `json:"date"`
	Price    float64 `json:"price"`
	Drawdown float64 `json:"drawdown"`
}

// AssetStats are summary statistics for a price history.
type AssetStats struct {
	CAGR        float64 `json:"cagr"`
	VolAnnual   float64 `json:"vol_annual"`
	MaxDrawdown float64 `json:"max_drawdown"`
	WorstMonth  float64 `json:"worst_month"`
	TotalReturn float64 `json:"total_return"`
}

// MarketEvent is a dated market-context annotation.
type MarketEvent struct {
	Date        string    `json:"date"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
}

// AssetHistoryResponse is the body returned by GET /asset-history.
type AssetHistoryResponse struct {
	Ticker     string        `json:"ticker"`
	Name       string        `json:"name"`
	RangeYears int           `json:"range_years"`
	Prices     []PricePoint  `json:"prices"`
	Stats      AssetStats    `json:"stats"`
	Events     []MarketEvent `json:"events"`
}

// TickerMeta is a static catalog entry returned by GET /tickers.
type TickerMeta struct {
	Ticker     string `json:"ticker"`
	Name       string `json:"name"`
	AssetClass string `json:"asset_class"`
}

// BackendHealth is the body returned by the optimizer's GET /health.
type BackendHealth struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
