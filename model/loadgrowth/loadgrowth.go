// Package loadgrowth checks announced US data-center load growth against the
// global supply of AI chips.
//
// Global capacity reached by 2030 grows linearly with the chip supply CAGR.
// The line is fitted on the LEI and EPRI scenarios:
//
//	capacityGW = 48.6 + 130.5 * rate
package loadgrowth

import (
	"fmt"

	computemonth "github.com/superdango/compute-month"
	"gonum.org/v1/gonum/stat"
)

const (
	BaseCapacityGW    = 48.6
	CapacityPerRateGW = 130.5

	// MillionChipsPerGW converts capacity into AI chips: 1 GW is about 615k chips.
	MillionChipsPerGW = 0.615

	// MaxGrowthRate is the top of the CAGR range, in percent.
	MaxGrowthRate     = 150.0
	DefaultGrowthRate = 30.0

	MarketShareStep = 5
)

// Benchmark is a published scenario the capacity line is calibrated on.
type Benchmark struct {
	Label       string  `yaml:"label"`
	Source      string  `yaml:"source"`
	RatePercent float64 `yaml:"rate_percent"`
	// Input is the rate fed to the formula. It can differ from RatePercent/100
	// when the report rounds its growth figure.
	Input      float64 `yaml:"input"`
	CapacityGW float64 `yaml:"capacity_gw"`
}

func Benchmarks() []Benchmark {
	return []Benchmark{
		{Label: "LEI Conservative", Source: "London Economics International (2024)", RatePercent: 11, Input: 0.107, CapacityGW: 62.6},
		{Label: "Hyperscaler Trend", Source: "EPRI Analysis (2024)", RatePercent: 40, Input: 0.40, CapacityGW: 100.8},
		{Label: "Aggressive Scale-up", Source: "EpochAI Projection (2024)", RatePercent: 70, Input: 0.70, CapacityGW: 139.95},
	}
}

// Model is a linear capacity projection.
type Model struct {
	InterceptGW float64 `json:"intercept_gw"`
	SlopeGW     float64 `json:"slope_gw"`
}

func DefaultModel() Model {
	return Model{InterceptGW: BaseCapacityGW, SlopeGW: CapacityPerRateGW}
}

// GlobalCapacityGW is the capacity reached with a supply CAGR of ratePercent.
func (m Model) GlobalCapacityGW(ratePercent float64) float64 {
	return m.InterceptGW + m.SlopeGW*ratePercent/100
}

// GlobalCapacityGW projects ratePercent with the default model.
func GlobalCapacityGW(ratePercent float64) float64 {
	return DefaultModel().GlobalCapacityGW(ratePercent)
}

// Calibrate fits a model on the benchmarks with an ordinary least squares
// regression.
func Calibrate(benchmarks []Benchmark) (Model, error) {
	if len(benchmarks) < 2 {
		return Model{}, fmt.Errorf("calibration needs at least 2 benchmarks, got %d", len(benchmarks))
	}

	xs := make([]float64, len(benchmarks))
	ys := make([]float64, len(benchmarks))
	for i, b := range benchmarks {
		xs[i], ys[i] = b.Input, b.CapacityGW
	}
	if stat.Variance(xs, nil) == 0 {
		return Model{}, fmt.Errorf("calibration benchmarks must have distinct inputs")
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Model{InterceptGW: alpha, SlopeGW: beta}, nil
}

// CheckGrowthRate rejects rates outside of the slider range.
func CheckGrowthRate(ratePercent float64) error {
	if !(ratePercent >= 0 && ratePercent <= MaxGrowthRate) {
		return computemonth.InvalidParameter("growth_rate", ratePercent, fmt.Sprintf("must be between 0 and %g", MaxGrowthRate))
	}
	return nil
}

// MillionChips converts a capacity into millions of AI chips.
func MillionChips(capacityGW float64) float64 {
	return capacityGW * MillionChipsPerGW
}

// Point is the US share of the global capacity.
type Point struct {
	MarketShare  float64 `json:"market_share"`
	CapacityGW   float64 `json:"capacity_gw"`
	MillionChips float64 `json:"million_chips"`
}

// MarketShareSeries splits the global capacity by US market share, from 0 to
// 100% in steps of 5.
func (m Model) MarketShareSeries(ratePercent float64) []Point {
	total := m.GlobalCapacityGW(ratePercent)
	points := make([]Point, 0, 100/MarketShareStep+1)
	for share := 0; share <= 100; share += MarketShareStep {
		capacity := total * float64(share) / 100
		points = append(points, Point{
			MarketShare:  float64(share),
			CapacityGW:   capacity,
			MillionChips: MillionChips(capacity),
		})
	}
	return points
}

// LoadAtHalfShare is the load the US can absorb when it buys half of the chips.
func (m Model) LoadAtHalfShare(ratePercent float64) float64 {
	return m.GlobalCapacityGW(ratePercent) * 0.5
}

// NotchPosition places a benchmark on a slider ranging from 0 to maxRate, as
// a percentage from the bottom.
func NotchPosition(ratePercent, maxRate float64) float64 {
	if maxRate <= 0 {
		return 0
	}
	return ratePercent / maxRate * 100
}
