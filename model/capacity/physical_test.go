package capacity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	computemonth "github.com/superdango/compute-month"
)

func TestComputeOneGigawatt(t *testing.T) {
	result, err := Compute(Params{FacilityPowerMW: 1000, PUE: 1.2, ITOverhead: 1.82, GPUTDPKW: 0.7})
	require.NoError(t, err)

	assert.InDelta(t, 833.333, result.ITPowerMW, 0.001)
	// published as 458.3 MW after rounding
	assert.InDelta(t, 458.3, result.ServerPowerMW, 0.5)
	assert.Equal(t, 654_107, result.GPUCount)
	// published as 654,762 GPUs / 477,976,260 H100-hours from the rounded server power
	assert.InEpsilon(t, 654_762, result.GPUCount, 0.002)
	assert.Equal(t, 477_498_110.0, result.H100HoursPerMonth)
	assert.InEpsilon(t, 477_976_260, result.H100HoursPerMonth, 0.002)
	assert.InEpsilon(t, 1.700084270844e27, result.TotalFlopsPerMonth, 1e-9)
}

func TestComputeLegacyOverhead(t *testing.T) {
	result, err := Compute(Params{FacilityPowerMW: 1000, PUE: 1.2, ITOverhead: 1.14, GPUTDPKW: 0.7})
	require.NoError(t, err)
	// 762.3M H100-hours per GW-month
	assert.InDelta(t, 762.3e6, result.H100HoursPerMonth, 0.1e6)
}

func TestPowerDerating(t *testing.T) {
	for _, p := range []Params{
		{FacilityPowerMW: 1, PUE: 1, ITOverhead: 1, GPUTDPKW: 0.7},
		{FacilityPowerMW: 250, PUE: 1.5, ITOverhead: 1.3, GPUTDPKW: 1.2},
		{FacilityPowerMW: 5000, PUE: 2, ITOverhead: 3, GPUTDPKW: 0.28},
	} {
		result, err := Compute(p)
		require.NoError(t, err)
		assert.LessOrEqual(t, result.ServerPowerMW, result.ITPowerMW)
		assert.LessOrEqual(t, result.ITPowerMW, p.FacilityPowerMW)
		assert.GreaterOrEqual(t, result.GPUCount, 0)
	}
}

func TestGPUCountMonotonic(t *testing.T) {
	base := Params{FacilityPowerMW: 100, PUE: 1.2, ITOverhead: 1.82, GPUTDPKW: 0.7}
	previous := -1
	for mw := 1.0; mw <= 2000; mw *= 1.7 {
		p := base
		p.FacilityPowerMW = mw
		result, err := Compute(p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.GPUCount, previous)
		previous = result.GPUCount
	}

	reference, _ := Compute(base)
	for _, worse := range []Params{
		{FacilityPowerMW: 100, PUE: 1.4, ITOverhead: 1.82, GPUTDPKW: 0.7},
		{FacilityPowerMW: 100, PUE: 1.2, ITOverhead: 2.0, GPUTDPKW: 0.7},
		{FacilityPowerMW: 100, PUE: 1.2, ITOverhead: 1.82, GPUTDPKW: 1.2},
	} {
		result, err := Compute(worse)
		require.NoError(t, err)
		assert.LessOrEqual(t, result.GPUCount, reference.GPUCount)
	}
}

func TestComputeSmallFacility(t *testing.T) {
	// less power than one accelerator
	result, err := Compute(Params{FacilityPowerMW: 0.0005, PUE: 1, ITOverhead: 1, GPUTDPKW: 0.7})
	require.NoError(t, err)
	assert.Equal(t, 0, result.GPUCount)
	assert.Equal(t, 0.0, result.H100HoursPerMonth)
	assert.Equal(t, 0.0, result.TotalFlopsPerMonth)
}

func TestComputeRejectsInvalidParams(t *testing.T) {
	for _, p := range []Params{
		{FacilityPowerMW: 0, PUE: 1.2, ITOverhead: 1.82, GPUTDPKW: 0.7},
		{FacilityPowerMW: -10, PUE: 1.2, ITOverhead: 1.82, GPUTDPKW: 0.7},
		{FacilityPowerMW: 10, PUE: 0.9, ITOverhead: 1.82, GPUTDPKW: 0.7},
		{FacilityPowerMW: 10, PUE: 1.2, ITOverhead: 0.5, GPUTDPKW: 0.7},
		{FacilityPowerMW: 10, PUE: 1.2, ITOverhead: 1.82, GPUTDPKW: 0},
		{FacilityPowerMW: math.Inf(1), PUE: 1.2, ITOverhead: 1.82, GPUTDPKW: 0.7},
		{FacilityPowerMW: 10, PUE: math.Inf(1), ITOverhead: 1.82, GPUTDPKW: 0.7},
	} {
		_, err := Compute(p)
		assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)
	}
}

func TestComputeRejectsOverflowingGPUCount(t *testing.T) {
	result, err := Compute(Params{FacilityPowerMW: 1e18, PUE: 1.2, ITOverhead: 1.82, GPUTDPKW: 0.7})
	assert.ErrorIs(t, err, computemonth.ErrInvalidParameter)
	assert.ErrorContains(t, err, "facility_power_mw")
	assert.Zero(t, result.GPUCount)

	// largest facilities still fit and keep a positive count
	result, err = Compute(Params{FacilityPowerMW: 1e16, PUE: 1.2, ITOverhead: 1.82, GPUTDPKW: 0.7})
	require.NoError(t, err)
	assert.Greater(t, result.GPUCount, 0)
	assert.Greater(t, result.H100HoursPerMonth, 0.0)
}
