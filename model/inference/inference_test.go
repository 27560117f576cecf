package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	computemonth "github.com/superdango/compute-month"
)

func TestComputeStandardClasses(t *testing.T) {
	results, err := Compute(Params{
		GPUCount:         654_107,
		InferencePercent: 100,
		Utilization:      0.7,
		ReasoningPercent: 0,
		Scenario:         ReasoningMedium,
	}, DefaultModelClasses())
	require.NoError(t, err)
	require.Len(t, results.Standard, 3)

	// ~4.2 tokens/s per GPU for a 280B model, 13.1B queries per month
	assert.InDelta(t, 4.1875, results.Standard[0].Class.TokensPerSecond(0.7), 1e-9)
	assert.InEpsilon(t, 13.0878e9, results.Standard[0].QueriesPerMonth, 1e-4)
	assert.InEpsilon(t, 71.983e9, results.Standard[1].QueriesPerMonth, 1e-4)
	assert.InEpsilon(t, 899.786e9, results.Standard[2].QueriesPerMonth, 1e-4)

	assert.Equal(t, 0.0, results.Reasoning.QueriesPerMonth)
	assert.Equal(t, 10.0, results.Reasoning.Multiplier)
}

func TestComputeReasoning(t *testing.T) {
	results, err := Compute(Params{
		GPUCount:         654_107,
		InferencePercent: 100,
		Utilization:      0.7,
		ReasoningPercent: 100,
		Scenario:         ReasoningMedium,
	}, DefaultModelClasses())
	require.NoError(t, err)

	assert.Equal(t, ReasoningMedium, results.Reasoning.Scenario)
	assert.InEpsilon(t, 7.1983e9, results.Reasoning.QueriesPerMonth, 1e-4)
	for _, c := range results.Standard {
		assert.Equal(t, 0.0, c.QueriesPerMonth)
	}

	// deeper reasoning serves proportionally fewer queries
	extreme, err := Compute(Params{
		GPUCount:         654_107,
		InferencePercent: 100,
		Utilization:      0.7,
		ReasoningPercent: 100,
		Scenario:         ReasoningExtreme,
	}, DefaultModelClasses())
	require.NoError(t, err)
	assert.InEpsilon(t, results.Reasoning.QueriesPerMonth/100, extreme.Reasoning.QueriesPerMonth, 1e-12)
}

func TestLinearScaling(t *testing.T) {
	base := Params{GPUCount: 100_000, InferencePercent: 20, Utilization: 0.35, ReasoningPercent: 20, Scenario: ReasoningHigh}
	reference, err := Compute(base, DefaultModelClasses())
	require.NoError(t, err)

	doubledUtilization := base
	doubledUtilization.Utilization = 0.7
	doubledGPUs := base
	doubledGPUs.GPUCount = 200_000

	for _, p := range []Params{doubledUtilization, doubledGPUs} {
		doubled, err := Compute(p, DefaultModelClasses())
		require.NoError(t, err)
		for i := range reference.Standard {
			assert.Equal(t, 2*reference.Standard[i].QueriesPerMonth, doubled.Standard[i].QueriesPerMonth)
		}
		assert.Equal(t, 2*reference.Reasoning.QueriesPerMonth, doubled.Reasoning.QueriesPerMonth)
	}
}

func TestGPUSplit(t *testing.T) {
	p := Params{GPUCount: 1000, InferencePercent: 20, Utilization: 0.7, ReasoningPercent: 25}
	assert.Equal(t, 200.0, p.InferenceGPUs())
	assert.Equal(t, 150.0, p.StandardGPUs())
	assert.Equal(t, 50.0, p.ReasoningGPUs())
}

func TestNoInferenceAllocation(t *testing.T) {
	results, err := Compute(Params{GPUCount: 1000, InferencePercent: 0, Utilization: 0.7, ReasoningPercent: 20}, DefaultModelClasses())
	require.NoError(t, err)
	assert.Equal(t, 0.0, results.TotalQueries())
}

func TestTotalQueries(t *testing.T) {
	results := Results{
		Standard:  []ClassCapacity{{QueriesPerMonth: 1}, {QueriesPerMonth: 2}},
		Reasoning: ReasoningCapacity{QueriesPerMonth: 0.5},
	}
	assert.Equal(t, 3.5, results.TotalQueries())
}

func TestComputeRejectsInvalidParams(t *testing.T) {
	for _, p := range []Params{
		{GPUCount: -1, InferencePercent: 20, Utilization: 0.7},
		{GPUCount: 10, InferencePercent: 120, Utilization: 0.7},
		{GPUCount: 10, InferencePercent: 20, Utilization: 0},
		{GPUCount: 10, InferencePercent: 20, Utilization: 1.5},
		{GPUCount: 10, InferencePercent: 20, Utilization: 0.7, ReasoningPercent: -5},
		{GPUCount: 10, InferencePercent: 20, Utilization: 0.7, Scenario: ReasoningScenario(9)},
	} {
		_, err := Compute(p, DefaultModelClasses())
		assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)
	}
}
