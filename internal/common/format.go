package common

import (
	"math"
	"strconv"
	"strings"
)

// FormatPct renders a fraction as a percentage with the given decimals:
// FormatPct(0.1234, 1) -> "12.3%".
func FormatPct(v float64, decimals int) string {
	return strconv.FormatFloat(v*100, 'f', decimals, 64) + "%"
}

// FormatRatio renders a plain number with two decimals.
func FormatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatClass renders an asset class key for display: "intl_equity" -> "intl equity".
func FormatClass(class string) string {
	return strings.ReplaceAll(class, "_", " ")
}

// Round rounds v to the given number of decimal places.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
