package analytics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

// Axis padding keeps boundary markers off the plot edge.
const (
	frontierPadLow  = 0.01
	frontierPadHigh = 0.02
)

// SpecialRole identifies one of the three named portfolios on the frontier chart.
type SpecialRole string

const (
	RoleMinVariance SpecialRole = "min_var"
	RoleMaxSharpe   SpecialRole = "max_sharpe"
	RoleCurrent     SpecialRole = "current"
)

// Marker is a special point packaged with its presentation color.
type Marker struct {
	Role   SpecialRole `json:"role"`
	Label  string      `json:"label"`
	Vol    float64     `json:"vol"`
	Ret    float64     `json:"ret"`
	Color  string      `json:"color"`
	Legend string      `json:"legend"` // "vol / ret" as whole percents
}

// FrontierGeometry is everything the frontier chart needs to draw.
type FrontierGeometry struct {
	Domain  [2]float64             `json:"domain"`
	Curve   []models.FrontierPoint `json:"curve"`
	Markers []Marker               `json:"markers"`
}

// FrontierDomain returns the horizontal axis domain for a curve:
// [max(0, min(vol) - 0.01), max(vol) + 0.02]. An empty curve yields [0, 0.02].
func FrontierDomain(curve []models.FrontierPoint) [2]float64 {
	if len(curve) == 0 {
		return [2]float64{0, frontierPadHigh}
	}
	vols := make([]float64, len(curve))
	for i, p := range curve {
		vols[i] = p.Vol
	}
	return [2]float64{
		math.Max(0, floats.Min(vols)-frontierPadLow),
		floats.Max(vols) + frontierPadHigh,
	}
}

// BuildFrontierGeometry derives the axis domain and the colored markers for a
// frontier response. Markers are always min-variance, max-Sharpe, current.
func BuildFrontierGeometry(resp models.FrontierResponse) FrontierGeometry {
	curve := make([]models.FrontierPoint, len(resp.Frontier))
	copy(curve, resp.Frontier)

	return FrontierGeometry{
		Domain: FrontierDomain(curve),
		Curve:  curve,
		Markers: []Marker{
			newMarker(RoleMinVariance, resp.MinVar),
			newMarker(RoleMaxSharpe, resp.MaxSharpe),
			newMarker(RoleCurrent, resp.Current),
		},
	}
}

func newMarker(role SpecialRole, p models.SpecialPoint) Marker {
	return Marker{
		Role:   role,
		Label:  p.Label,
		Vol:    p.Vol,
		Ret:    p.Ret,
		Color:  RoleColor(role),
		Legend: common.FormatPct(p.Vol, 0) + " / " + common.FormatPct(p.Ret, 0),
	}
}
