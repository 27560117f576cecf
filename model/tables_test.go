package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	computemonth "github.com/superdango/compute-month"
)

func TestDefaultTables(t *testing.T) {
	tables := DefaultTables()
	require.NoError(t, tables.Validate())
	assert.Len(t, tables.Accelerators, 9)
	assert.Len(t, tables.TrainingModels, 10)
	assert.Len(t, tables.ModelClasses, 3)
	assert.Len(t, tables.Regions, 9)
}

func TestLoadTables(t *testing.T) {
	tables, err := LoadTables(strings.NewReader(`
accelerators:
  - name: H100 SXM
    tdp_kw: 0.75
    peak_tflops: 989
regions:
  - name: Quebec
    power_cost_per_kwh: 0.05
    carbon_intensity: 2
training_models:
  - name: Frontier 2027
    total_flops: 5e26
    mfu: 0.4
`))
	require.NoError(t, err)

	h100, found := tables.Accelerators.Lookup("H100 SXM")
	require.True(t, found)
	assert.Equal(t, 0.75, h100.TDPKW)
	assert.Len(t, tables.Accelerators, 9)

	assert.Equal(t, 2.0, tables.Regions.Get("Quebec").CarbonIntensity)
	assert.Len(t, tables.TrainingModels, 11)
	assert.Len(t, tables.ModelClasses, 3)

	s := DefaultScenario()
	s.Region = "Quebec"
	r, err := Evaluate(s, tables)
	require.NoError(t, err)
	assert.Contains(t, r.Training, "Frontier 2027")
	assert.Less(t, r.Physical.GPUCount, 654_107)
	assert.InDelta(t, 1460, r.Environmental.MonthlyCO2Tonnes, 1e-6)
}

func TestLoadTablesRejectsInvalidEntries(t *testing.T) {
	_, err := LoadTables(strings.NewReader(`
model_classes:
  - name: weightless
    parameters: 0
    tokens_per_query: 100
`))
	assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)

	_, err = LoadTables(strings.NewReader("regions: {"))
	assert.Error(t, err)

	tables, err := LoadTables(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultTables(), tables)
}
