// Package models holds the wire types exchanged with the optimizer service.
// JSON field names are the optimizer's contract and must not change.
package models

import (
	"fmt"
	"strings"
)

// Profile is the risk profile driving the optimizer's base budgets.
type Profile string

const (
	ProfileConservative Profile = "conservative"
	ProfileBalanced     Profile = "balanced"
	ProfileGrowth       Profile = "growth"
)

// Profiles lists the accepted profiles in display order.
var Profiles = []Profile{ProfileConservative, ProfileBalanced, ProfileGrowth}

// Valid reports whether p is one of the known profiles.
func (p Profile) Valid() bool {
	for _, known := range Profiles {
		if p == known {
			return true
		}
	}
	return false
}

// Constraint bounds accepted by the optimizer.
const (
	MaxBTCCap      = 0.30
	MaxCashCap     = 0.30
	MinPerAssetCap = 0.05
	MaxPerAssetCap = 0.40
)

// OptimizeRequest is the body of POST /optimize and POST /frontier.
type OptimizeRequest struct {
	Profile     Profile `json:"profile"`
	BTCMax      float64 `json:"btc_max"`
	CashMax     float64 `json:"cash_max"`
	PerAssetMax float64 `json:"per_asset_max"`
}

// DefaultOptimizeRequest returns the parameters a fresh optimize view starts with.
func DefaultOptimizeRequest() OptimizeRequest {
	return OptimizeRequest{
		Profile:     ProfileBalanced,
		BTCMax:      0.15,
		CashMax:     0.20,
		PerAssetMax: 0.35,
	}
}

// Validate checks the request against the optimizer's accepted ranges.
func (r OptimizeRequest) Validate() error {
	var issues []string
	if !r.Profile.Valid() {
		issues = append(issues, fmt.Sprintf("profile %q is not one of conservative, balanced, growth", r.Profile))
	}
	if r.BTCMax < 0 || r.BTCMax > MaxBTCCap {
		issues = append(issues, fmt.Sprintf("btc_max %.2f outside [0, %.2f]", r.BTCMax, MaxBTCCap))
	}
	if r.CashMax < 0 || r.CashMax > MaxCashCap {
		issues = append(issues, fmt.Sprintf("cash_max %.2f outside [0, %.2f]", r.CashMax, MaxCashCap))
	}
	if r.PerAssetMax < MinPerAssetCap || r.PerAssetMax > MaxPerAssetCap {
		issues = append(issues, fmt.Sprintf("per_asset_max %.2f outside [%.2f, %.2f]", r.PerAssetMax, MinPerAssetCap, MaxPerAssetCap))
	}
	if len(issues) > 0 {
		return fmt.Errorf("invalid optimize request: %s", strings.Join(issues, "; "))
	}
	return nil
}

// AssetWeight is one holding of an optimized portfolio.
type AssetWeight struct {
	Ticker     string  `json:"ticker"`
	AssetClass string  `json:"asset_class"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
}

// RiskMetrics are the portfolio-level risk figures computed by the optimizer.
type RiskMetrics struct {
	VolAnnual   float64 `json:"vol_annual"`
	MaxDrawdown float64 `json:"max_drawdown"`
	VaR95       float64 `json:"var95"`
	ES95        float64 `json:"es95"`
	Sharpe      float64 `json:"sharpe"`
	Sortino     float64 `json:"sortino"`
	BetaSPY     float64 `json:"beta_spy"`
}

// RiskContribution is the share of portfolio variance attributed to one asset (0-100).
type RiskContribution struct {
	Ticker          string  `json:"ticker"`
	ContributionPct float64 `json:"contribution_pct"`
}

// ConstraintsSummary echoes the caps the optimizer applied.
type ConstraintsSummary struct {
	CashCap        float64 `json:"cash_cap"`
	BTCCap         float64 `json:"btc_cap"`
	PerAssetCap    float64 `json:"per_asset_cap"`
	BudgetsProfile string  `json:"budgets_profile"`
}

// OptimizeResponse is the body returned by POST /optimize.
type OptimizeResponse struct {
	Weights            []AssetWeight      `json:"weights"`
	RiskMetrics        RiskMetrics        `json:"risk_metrics"`
	ConstraintsSummary ConstraintsSummary `json:"constraints_summary"`
	RiskContributions  []RiskContribution `json:"risk_contributions"`
}

// FrontierPoint is one point on the efficient-frontier curve.
type FrontierPoint struct {
	Vol    float64 `json:"vol"`
	Ret    float64 `json:"ret"`
	Sharpe float64 `json:"sharpe"`
}

// SpecialPoint is a named portfolio overlaid on the frontier.
type SpecialPoint struct {
	Vol   float64 `json:"vol"`
	Ret   float64 `json:"ret"`
	Label string  `json:"label"`
}

// FrontierResponse is the body returned by POST /frontier.
type FrontierResponse struct {
	Frontier  []FrontierPoint `json:"frontier"`
	Current   SpecialPoint    `json:"current"`
	MinVar    SpecialPoint    `json:"min_var"`
	MaxSharpe SpecialPoint    `json:"max_sharpe"`
}
