package carbon

import (
	computemonth "github.com/superdango/compute-month"
)

// WaterPerKWh is the closed-loop liquid cooling consumption in liters.
const WaterPerKWh = 1.5

// Impact is the monthly environmental footprint of a facility.
type Impact struct {
	CarbonIntensity     float64 `json:"carbon_intensity"`
	MonthlyEnergyMWh    float64 `json:"monthly_energy_mwh"`
	MonthlyCO2Tonnes    float64 `json:"monthly_co2_tonnes"`
	MonthlyWaterGallons float64 `json:"monthly_water_gallons"`
}

// ComputeImpact estimates what a facility drawing facilityGW all month long
// emits in region and how much water it evaporates.
func ComputeImpact(facilityGW float64, region Region) (Impact, error) {
	err := computemonth.FirstError(
		computemonth.CheckNonNegative("facility_gw", facilityGW),
		region.Validate(),
	)
	if err != nil {
		return Impact{}, err
	}

	energyMWh := computemonth.GigaWatts(facilityGW).MWhPerMonth()
	kwh := energyMWh * 1000

	return Impact{
		CarbonIntensity:     region.CarbonIntensity,
		MonthlyEnergyMWh:    energyMWh,
		MonthlyCO2Tonnes:    computemonth.Emissions(kwh * region.CarbonIntensity).TCO2eq(),
		MonthlyWaterGallons: computemonth.Water(kwh * WaterPerKWh).Gallons(),
	}, nil
}
