// Package economics computes the total cost of ownership of a facility and the
// revenue earned by selling its compute.
package economics

import (
	"math"

	computemonth "github.com/superdango/compute-month"
)

const (
	// WACC is the weighted average cost of capital.
	WACC = 0.10
	// MonthlyRate is the WACC applied per month.
	MonthlyRate = WACC / 12

	ComputeCapexShare        = 0.70
	InfrastructureCapexShare = 0.30

	// Servers are written off over 4 years, buildings over 15.
	ComputeAmortizationMonths        = 48
	InfrastructureAmortizationMonths = 180

	// OperationsShare of the power bill spent on operations.
	OperationsShare = 0.20

	// DefaultTrainingRate is the spot price of an H100-hour in dollars.
	DefaultTrainingRate = 2.19
	// DefaultInferenceRate is the blended API price of 1M tokens in dollars.
	DefaultInferenceRate = 0.60
)

// Amortize returns the level monthly payment repaying principal over n months
// at the given monthly rate. A zero rate spreads the principal evenly.
func Amortize(principal, monthlyRate float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if monthlyRate <= 0 {
		return principal / float64(n)
	}
	return principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(n)))
}

type Params struct {
	FacilityPowerMW float64
	Capex           CapexModel
	PowerCostPerKWh float64
	Months          int
}

func (p Params) Validate() error {
	err := computemonth.FirstError(
		computemonth.CheckPositive("facility_power_mw", p.FacilityPowerMW),
		computemonth.CheckNonNegative("power_cost_per_kwh", p.PowerCostPerKWh),
		computemonth.CheckAtLeast("months", float64(p.Months), 1),
	)
	if err != nil {
		return err
	}
	if !p.Capex.valid() {
		return computemonth.InvalidParameter("capex_model", float64(p.Capex), "unknown capex model")
	}
	return nil
}

// Breakdown itemizes the monthly cost by category.
type Breakdown struct {
	Amortization float64 `json:"amortization"`
	Power        float64 `json:"power"`
	Operations   float64 `json:"operations"`
}

type Result struct {
	TotalCapex          float64   `json:"total_capex"`
	MonthlyAmortization float64   `json:"monthly_amortization"`
	MonthlyPower        float64   `json:"monthly_power"`
	MonthlyOperations   float64   `json:"monthly_operations"`
	MonthlyTCO          float64   `json:"monthly_tco"`
	TotalTCO            float64   `json:"total_tco"`
	Breakdown           Breakdown `json:"breakdown"`
}

// Compute returns the cost of owning and running the facility for p.Months.
func Compute(p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	totalCapex := p.FacilityPowerMW / 1000 * p.Capex.CostPerGW()
	amortization := Amortize(totalCapex*ComputeCapexShare, MonthlyRate, ComputeAmortizationMonths) +
		Amortize(totalCapex*InfrastructureCapexShare, MonthlyRate, InfrastructureAmortizationMonths)

	power := p.FacilityPowerMW * computemonth.HoursPerMonth * p.PowerCostPerKWh * 1000
	operations := power * OperationsShare
	monthly := amortization + power + operations

	return Result{
		TotalCapex:          totalCapex,
		MonthlyAmortization: amortization,
		MonthlyPower:        power,
		MonthlyOperations:   operations,
		MonthlyTCO:          monthly,
		TotalTCO:            monthly * float64(p.Months),
		Breakdown: Breakdown{
			Amortization: amortization,
			Power:        power,
			Operations:   operations,
		},
	}, nil
}

type RevenueParams struct {
	TrainingHours    float64
	InferenceQueries float64
	// TrainingRate in dollars per H100-hour.
	TrainingRate float64
	// InferenceRate in dollars per million.
	InferenceRate float64
}

func (p RevenueParams) Validate() error {
	return computemonth.FirstError(
		computemonth.CheckNonNegative("training_hours", p.TrainingHours),
		computemonth.CheckNonNegative("inference_queries", p.InferenceQueries),
		computemonth.CheckNonNegative("training_rate", p.TrainingRate),
		computemonth.CheckNonNegative("inference_rate", p.InferenceRate),
	)
}

type Revenue struct {
	Training  float64 `json:"training"`
	Inference float64 `json:"inference"`
	Total     float64 `json:"total"`
}

// ComputeRevenue prices hours and queries linearly.
func ComputeRevenue(p RevenueParams) (Revenue, error) {
	if err := p.Validate(); err != nil {
		return Revenue{}, err
	}
	r := Revenue{
		Training:  p.TrainingHours * p.TrainingRate,
		Inference: p.InferenceQueries / 1e6 * p.InferenceRate,
	}
	r.Total = r.Training + r.Inference
	return r, nil
}

// Margin is the share of revenue left after paying the TCO, in percent.
// It is zero when there is no revenue.
func Margin(revenue, tco float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return (revenue - tco) / revenue * 100
}
