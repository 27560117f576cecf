package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	computemonth "github.com/superdango/compute-month"
	"github.com/superdango/compute-month/model/inference"
)

func TestComputeTraining(t *testing.T) {
	profile, ok := DefaultProfiles().LookupTraining("GPT-4.5")
	require.True(t, ok)

	r, err := ComputeTraining(TrainingParams{
		GPUCount:        654_107,
		TrainingPercent: 80,
		Profile:         profile,
		Revenue:         1e9,
	})
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0313959176e15, r.MonthlyThroughput, 1e-9)
	assert.InEpsilon(t, 51.56979588, r.DatasetCompletions, 1e-9)
	assert.InEpsilon(t, 0.96955978, r.RevenuePerMillion, 1e-6)
}

func TestComputeTrainingWithoutGPUs(t *testing.T) {
	profile, _ := DefaultProfiles().LookupTraining("GPT-4")
	r, err := ComputeTraining(TrainingParams{GPUCount: 1000, TrainingPercent: 0, Profile: profile, Revenue: 50})
	require.NoError(t, err)
	assert.Equal(t, TrainingResult{}, r)
}

func TestComputeInference(t *testing.T) {
	profile, ok := DefaultProfiles().LookupInference("GPT-4 class (280B)")
	require.True(t, ok)

	r, err := ComputeInference(InferenceParams{
		QueriesPerMonth:  13_087_789_105.9,
		Profile:          profile,
		Scenario:         inference.ReasoningMedium,
		ReasoningPercent: 20,
		Revenue:          1e6,
	})
	require.NoError(t, err)
	assert.InEpsilon(t, 5.758627206596e12, r.StandardTokens, 1e-9)
	assert.InEpsilon(t, 1.439656801649e13, r.ReasoningTokens, 1e-9)
	assert.Equal(t, r.StandardTokens+r.ReasoningTokens, r.TotalTokens)
	// 0.8*550 + 0.2*550*10
	assert.InDelta(t, 1540, r.AvgTokensPerQuery, 1e-6)
	assert.InEpsilon(t, 1e6/r.TotalTokens*1e6, r.RevenuePerMillion, 1e-12)
}

func TestComputeInferenceWithoutQueries(t *testing.T) {
	profile, _ := DefaultProfiles().LookupInference("Llama 8B class")
	r, err := ComputeInference(InferenceParams{
		Profile:          profile,
		Scenario:         inference.ReasoningExtreme,
		ReasoningPercent: 50,
		Revenue:          100,
	})
	require.NoError(t, err)
	assert.Equal(t, InferenceResult{}, r)
}

func TestComputeRejectsInvalidParams(t *testing.T) {
	training, _ := DefaultProfiles().LookupTraining("GPT-4")
	_, err := ComputeTraining(TrainingParams{GPUCount: 10, TrainingPercent: 101, Profile: training})
	assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)
	_, err = ComputeTraining(TrainingParams{GPUCount: 10, TrainingPercent: 50, Profile: TrainingProfile{Name: "empty"}})
	assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)

	serving, _ := DefaultProfiles().LookupInference("Llama 70B class")
	_, err = ComputeInference(InferenceParams{QueriesPerMonth: -1, Profile: serving})
	assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)
	_, err = ComputeInference(InferenceParams{QueriesPerMonth: 1, Profile: serving, Scenario: inference.ReasoningScenario(42)})
	assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)
}

func TestFormatTokens(t *testing.T) {
	for input, expected := range map[float64]string{
		0:        "0",
		999.4:    "999",
		1000:     "1.0K",
		1550:     "1.6K",
		2.5e6:    "2.5M",
		999.99e6: "1000.0M",
		1e9:      "1.0B",
		3.14e12:  "3.1T",
		2.5e15:   "2500.0T",
	} {
		assert.Equal(t, expected, FormatTokens(input), "formatting %g", input)
	}
}
