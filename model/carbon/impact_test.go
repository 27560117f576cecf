package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	computemonth "github.com/superdango/compute-month"
)

func TestComputeImpact(t *testing.T) {
	impact, err := ComputeImpact(1, DefaultRegions().Get(DefaultRegion))
	require.NoError(t, err)

	assert.Equal(t, 384.0, impact.CarbonIntensity)
	assert.Equal(t, 730_000.0, impact.MonthlyEnergyMWh)
	assert.InDelta(t, 280_320, impact.MonthlyCO2Tonnes, 1e-6)
	assert.InDelta(t, 289_268_340, impact.MonthlyWaterGallons, 1e-3)
}

func TestComputeImpactScalesWithPower(t *testing.T) {
	texas := DefaultRegions().Get("Texas (ERCOT)")
	one, err := ComputeImpact(1, texas)
	require.NoError(t, err)
	five, err := ComputeImpact(5, texas)
	require.NoError(t, err)

	assert.InEpsilon(t, 5*one.MonthlyCO2Tonnes, five.MonthlyCO2Tonnes, 1e-12)
	assert.InEpsilon(t, 5*one.MonthlyWaterGallons, five.MonthlyWaterGallons, 1e-12)

	// water does not depend on the grid
	oregon, err := ComputeImpact(1, DefaultRegions().Get("Oregon"))
	require.NoError(t, err)
	assert.Equal(t, one.MonthlyWaterGallons, oregon.MonthlyWaterGallons)
}

func TestComputeImpactRejectsInvalidParams(t *testing.T) {
	_, err := ComputeImpact(-1, DefaultRegions().Get(DefaultRegion))
	assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)

	_, err = ComputeImpact(1, Region{Name: "broken", CarbonIntensity: -3})
	assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)
}
