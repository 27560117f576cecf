// Package capacity converts facility power into accelerator counts and monthly compute.
package capacity

import (
	"math"

	computemonth "github.com/superdango/compute-month"
)

// Params are the physical inputs of a facility.
type Params struct {
	FacilityPowerMW float64
	// PUE is total facility power over IT power.
	PUE float64
	// ITOverhead is IT power over accelerator power (networking, storage, CPUs).
	ITOverhead float64
	GPUTDPKW   float64
}

func (p Params) Validate() error {
	return computemonth.FirstError(
		computemonth.CheckPositive("facility_power_mw", p.FacilityPowerMW),
		computemonth.CheckAtLeast("pue", p.PUE, 1),
		computemonth.CheckAtLeast("it_overhead", p.ITOverhead, 1),
		computemonth.CheckPositive("gpu_tdp_kw", p.GPUTDPKW),
	)
}

// Result is the physical capacity of a facility for one month.
type Result struct {
	ITPowerMW          float64 `json:"it_power_mw"`
	ServerPowerMW      float64 `json:"server_power_mw"`
	GPUCount           int     `json:"gpu_count"`
	H100HoursPerMonth  float64 `json:"h100_hours_per_month"`
	TotalFlopsPerMonth float64 `json:"total_flops_per_month"`
}

// Compute derates facility power by PUE then IT overhead and fits whole GPUs in
// what is left. FLOPs are always expressed against the H100 baseline.
func Compute(p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	itPower := p.FacilityPowerMW / p.PUE
	serverPower := itPower / p.ITOverhead
	gpus := math.Floor(serverPower * 1000 / p.GPUTDPKW)
	if gpus >= math.MaxInt {
		return Result{}, computemonth.InvalidParameter("facility_power_mw", p.FacilityPowerMW, "gpu count overflows")
	}
	gpuCount := int(gpus)
	h100Hours := float64(gpuCount) * computemonth.HoursPerMonth

	return Result{
		ITPowerMW:          itPower,
		ServerPowerMW:      serverPower,
		GPUCount:           gpuCount,
		H100HoursPerMonth:  h100Hours,
		TotalFlopsPerMonth: h100Hours * computemonth.H100BaselineTFLOPS * 1e12 * computemonth.SecondsPerHour,
	}, nil
}
