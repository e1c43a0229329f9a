// Package illustrations generates the fixed teaching datasets behind the
// learn pages. Output is closed-form and identical on every call.
package illustrations

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/bobmcallan/allocation-lab/internal/analytics"
	"github.com/bobmcallan/allocation-lab/internal/common"
)

// WalkPoint is one step of the dual random walk.
type WalkPoint struct {
	Step    int     `json:"step"`
	LowVol  float64 `json:"low_vol"`
	HighVol float64 `json:"high_vol"`
}

var walkSteps = []float64{
	0.12, -0.05, 0.08, -0.03, 0.11, -0.07, 0.06, 0.02, -0.04, 0.09,
	0.04, -0.06, 0.10, -0.02, 0.07, -0.01, 0.05, -0.08, 0.12, -0.03,
}

const (
	walkBase      = 100.0
	lowVolScale   = 0.3
	highVolScale  = 1.1
	displayDigits = 2
)

// DualRandomWalk returns two compounding price paths driven by the same step
// sequence at different scales.
func DualRandomWalk() []WalkPoint {
	out := make([]WalkPoint, len(walkSteps))
	low, high := walkBase, walkBase
	for i, s := range walkSteps {
		low *= 1 + s*lowVolScale
		high *= 1 + s*highVolScale
		out[i] = WalkPoint{
			Step:    i,
			LowVol:  common.Round(low, displayDigits),
			HighVol: common.Round(high, displayDigits),
		}
	}
	return out
}

// DrawdownSample pairs a price with its drawdown in percent.
type DrawdownSample struct {
	Step        int     `json:"step"`
	Price       float64 `json:"price"`
	Peak        float64 `json:"peak"`
	DrawdownPct float64 `json:"drawdown_pct"`
}

var drawdownPath = []float64{
	100, 105, 112, 118, 122, 119, 108, 92, 85, 89, 96,
	100, 106, 114, 120, 116, 110, 103, 98, 105, 112,
}

// PriceDrawdownPair returns the reference price path with its running drawdown.
func PriceDrawdownPair() []DrawdownSample {
	derived := analytics.DeriveDrawdowns(drawdownPath)
	out := make([]DrawdownSample, len(derived))
	for i, d := range derived {
		out[i] = DrawdownSample{
			Step:        i,
			Price:       d.Price,
			Peak:        d.Peak,
			DrawdownPct: common.Round(d.Drawdown*100, 1),
		}
	}
	return out
}

// HistogramBin is one bucket of the return distribution.
type HistogramBin struct {
	Return float64 `json:"return"` // percent
	Freq   float64 `json:"freq"`
}

// Histogram is a fat-tailed return distribution with its tail markers.
type Histogram struct {
	Bins  []HistogramBin `json:"bins"`
	VaR95 float64        `json:"var95"` // percent
	ES95  float64        `json:"es95"`  // percent
	Peak  float64        `json:"peak"`
}

const (
	histogramBins  = 40
	histogramStart = -0.10
	histogramWidth = 0.005
	histogramVaR   = -2.5
	histogramES    = -4.5
)

// FatTailHistogram returns a normal body plus a left-tail hump, binned.
func FatTailHistogram() Histogram {
	bins := make([]HistogramBin, histogramBins)
	freqs := make([]float64, histogramBins)
	for i := range bins {
		x := histogramStart + float64(i)*histogramWidth
		f := math.Exp(-0.5 * math.Pow((x-0.0005)/0.013, 2))
		if x < -0.03 {
			f += 0.25 * math.Exp(-0.5*math.Pow((x+0.045)/0.012, 2))
		}
		bins[i] = HistogramBin{Return: common.Round(x*100, 1), Freq: common.Round(f, 3)}
		freqs[i] = bins[i].Freq
	}
	return Histogram{Bins: bins, VaR95: histogramVaR, ES95: histogramES, Peak: floats.Max(freqs)}
}

// CurvePoint is a (vol, ret) pair in percent.
type CurvePoint struct {
	Vol float64 `json:"vol"`
	Ret float64 `json:"ret"`
}

// FrontierSample is an idealized frontier with feasible portfolios beneath it.
type FrontierSample struct {
	Curve   []CurvePoint `json:"curve"`
	Scatter []CurvePoint `json:"scatter"`
}

const (
	frontierCurvePoints   = 20
	frontierScatterPoints = 60
)

// FrontierIllustration returns a logarithmic frontier curve and a
// deterministic cloud of sub-optimal portfolios.
func FrontierIllustration() FrontierSample {
	curve := make([]CurvePoint, frontierCurvePoints)
	for i := range curve {
		vol := 0.05 + float64(i)*0.016
		ret := 0.04 + 0.044*math.Log(vol/0.05)
		curve[i] = CurvePoint{Vol: common.Round(vol*100, 1), Ret: common.Round(ret*100, 1)}
	}

	scatter := make([]CurvePoint, frontierScatterPoints)
	for i := range scatter {
		v := 5 + math.Mod(float64(i)*0.7, 28)
		maxRet := 0.04 + 0.044*math.Log(v/5)*100
		r := maxRet * (0.5 + math.Abs(math.Sin(float64(i)*2.1))*0.45)
		scatter[i] = CurvePoint{Vol: common.Round(v, 1), Ret: common.Round(r, 1)}
	}

	return FrontierSample{Curve: curve, Scatter: scatter}
}
