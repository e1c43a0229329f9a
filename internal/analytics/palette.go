package analytics

import "github.com/bobmcallan/allocation-lab/internal/models"

// DefaultColor is returned for any key the palettes do not name.
const DefaultColor = "#6366f1"

var classColors = map[string]string{
	"crypto":       "#f97316",
	"equity":       "#3b82f6",
	"intl_equity":  "#06b6d4",
	"fixed_income": "#22c55e",
	"commodity":    "#eab308",
	"reit":         "#ec4899",
	"cash":         "#94a3b8",
}

var eventColors = map[models.EventType]string{
	models.EventCrisis: "#ef4444",
	models.EventMacro:  "#f59e0b",
	models.EventCrypto: "#f97316",
	models.EventBull:   "#22c55e",
	models.EventInfo:   "#3b82f6",
}

var roleColors = map[SpecialRole]string{
	RoleMinVariance: "#22c55e",
	RoleMaxSharpe:   "#f59e0b",
	RoleCurrent:     "#a855f7",
}

var roleLegends = map[SpecialRole]string{
	RoleMinVariance: "Min Variance",
	RoleMaxSharpe:   "Max Sharpe",
	RoleCurrent:     "Your Portfolio",
}

// ClassColor returns the color of an asset class.
func ClassColor(class string) string {
	if c, ok := classColors[class]; ok {
		return c
	}
	return DefaultColor
}

// EventColor returns the color of a market event type.
func EventColor(t models.EventType) string {
	if c, ok := eventColors[t]; ok {
		return c
	}
	return DefaultColor
}

// RoleColor returns the marker color of a special frontier point.
func RoleColor(role SpecialRole) string {
	if c, ok := roleColors[role]; ok {
		return c
	}
	return DefaultColor
}

// RoleLegend returns the legend caption of a special frontier point.
func RoleLegend(role SpecialRole) string {
	if l, ok := roleLegends[role]; ok {
		return l
	}
	return string(role)
}
