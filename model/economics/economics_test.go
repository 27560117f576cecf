package economics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	computemonth "github.com/superdango/compute-month"
)

func TestAmortize(t *testing.T) {
	assert.InDelta(t, 635_586_340.8747663, Amortize(35.8e9*0.7, MonthlyRate, 48), 1e-3)
	assert.InDelta(t, 115_412_589.64185186, Amortize(35.8e9*0.3, MonthlyRate, 180), 1e-3)

	// no interest spreads the principal evenly
	assert.Equal(t, 25.0, Amortize(1200, 0, 48))
	assert.Equal(t, 0.0, Amortize(1200, MonthlyRate, 0))

	// a level payment always repays more than the principal
	assert.Greater(t, Amortize(1200, MonthlyRate, 48)*48, 1200.0)
}

func TestCompute(t *testing.T) {
	r, err := Compute(Params{
		FacilityPowerMW: 1000,
		Capex:           CapexValidated,
		PowerCostPerKWh: 0.08,
		Months:          12,
	})
	require.NoError(t, err)

	assert.Equal(t, 35.8e9, r.TotalCapex)
	assert.InDelta(t, 750_998_930.5166183, r.MonthlyAmortization, 1e-3)
	assert.InDelta(t, 58_400_000, r.MonthlyPower, 1e-6)
	assert.InDelta(t, 11_680_000, r.MonthlyOperations, 1e-6)
	assert.Equal(t, r.MonthlyAmortization+r.MonthlyPower+r.MonthlyOperations, r.MonthlyTCO)
	assert.Equal(t, r.MonthlyTCO*12, r.TotalTCO)
	assert.Equal(t, Breakdown{
		Amortization: r.MonthlyAmortization,
		Power:        r.MonthlyPower,
		Operations:   r.MonthlyOperations,
	}, r.Breakdown)
}

func TestComputeScalesWithCapexModel(t *testing.T) {
	costs := map[CapexModel]float64{}
	for _, m := range CapexModels() {
		r, err := Compute(Params{FacilityPowerMW: 2000, Capex: m, PowerCostPerKWh: 0, Months: 1})
		require.NoError(t, err)
		assert.Equal(t, 2*m.CostPerGW(), r.TotalCapex)
		assert.Equal(t, 0.0, r.MonthlyPower)
		costs[m] = r.MonthlyTCO
	}
	assert.Less(t, costs[CapexValidated], costs[CapexEpochAI])
	assert.Less(t, costs[CapexEpochAI], costs[CapexStargate])
}

func TestComputeRejectsInvalidParams(t *testing.T) {
	for _, p := range []Params{
		{FacilityPowerMW: 0, Capex: CapexValidated, PowerCostPerKWh: 0.08, Months: 12},
		{FacilityPowerMW: 1000, Capex: CapexValidated, PowerCostPerKWh: -0.08, Months: 12},
		{FacilityPowerMW: 1000, Capex: CapexValidated, PowerCostPerKWh: 0.08, Months: 0},
		{FacilityPowerMW: 1000, Capex: CapexModel(5), PowerCostPerKWh: 0.08, Months: 12},
	} {
		_, err := Compute(p)
		assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)
	}
}

func TestComputeRevenue(t *testing.T) {
	r, err := ComputeRevenue(RevenueParams{
		TrainingHours:    1_000_000,
		InferenceQueries: 5e9,
		TrainingRate:     DefaultTrainingRate,
		InferenceRate:    DefaultInferenceRate,
	})
	require.NoError(t, err)
	assert.InDelta(t, 2_190_000, r.Training, 1e-6)
	assert.InDelta(t, 3_000, r.Inference, 1e-9)
	assert.Equal(t, r.Training+r.Inference, r.Total)

	_, err = ComputeRevenue(RevenueParams{TrainingHours: -1})
	assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)
}

func TestMargin(t *testing.T) {
	assert.Equal(t, 25.0, Margin(100, 75))
	assert.Equal(t, -50.0, Margin(100, 150))
	assert.Equal(t, 0.0, Margin(0, 150))
}
