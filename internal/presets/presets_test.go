package presets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/superdango/compute-month/internal/presets"
	"github.com/superdango/compute-month/model"
)

func TestPresetsEvaluate(t *testing.T) {
	reports, err := model.Sweep(context.Background(), model.DefaultTables(), presets.Scenarios())
	require.NoError(t, err)
	require.Len(t, reports, len(presets.Names()))

	for i, p := range presets.All() {
		assert.Equal(t, p.Name, p.Scenario.Name)
		assert.Equal(t, p.Name, reports[i].Scenario.Name)
	}
}

func TestGet(t *testing.T) {
	s, found := presets.Get("Low-Carbon")
	require.True(t, found)
	assert.Equal(t, "California", s.Region)

	s, found = presets.Get("compute-month")
	require.True(t, found)
	assert.Equal(t, model.DefaultScenario(), s)

	_, found = presets.Get("moonbase")
	assert.False(t, found)
}

func TestPresetNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range presets.Names() {
		assert.False(t, seen[name], name)
		seen[name] = true
	}
	assert.Equal(t, "compute-month", presets.Names()[0])
}
