// Package carbon holds the regional grid data and estimates the emissions and
// water use of a facility.
package carbon

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"
	"strings"

	computemonth "github.com/superdango/compute-month"
	"github.com/superdango/compute-month/internal/must"
)

//go:embed data/regions.csv
var regionsCSV []byte

// DefaultRegion is the US average used when a region is unknown.
const DefaultRegion = "Weighted Average"

// Region is a grid area with its electricity price and carbon intensity.
type Region struct {
	Name            string  `yaml:"name"`
	PowerCostPerKWh float64 `yaml:"power_cost_per_kwh"`
	// CarbonIntensity in gCO2eq/kWh
	CarbonIntensity float64 `yaml:"carbon_intensity"`
}

func (r Region) Validate() error {
	return computemonth.FirstError(
		computemonth.CheckNonNegative(r.Name+".power_cost_per_kwh", r.PowerCostPerKWh),
		computemonth.CheckNonNegative(r.Name+".carbon_intensity", r.CarbonIntensity),
	)
}

// Regions is an ordered list of regions.
type Regions []Region

var regions Regions

func init() {
	csvRegions := csv.NewReader(bytes.NewReader(regionsCSV))
	csvRegions.Read() // skip header line
	for {
		record, err := csvRegions.Read()
		if err == io.EOF {
			break
		}
		must.NoError(err)
		must.Assert(len(record) == 3, "region csv line must be 3 fields length")

		regions = append(regions, Region{
			Name:            record[0],
			PowerCostPerKWh: must.CastFloat64(record[1]),
			CarbonIntensity: must.CastFloat64(record[2]),
		})
	}
	_, found := regions.Lookup(DefaultRegion)
	must.Assert(found, "default region not set")
}

// DefaultRegions returns a copy of the embedded region table.
func DefaultRegions() Regions {
	return append(Regions(nil), regions...)
}

func (rs Regions) Names() []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}

// Lookup finds a region by name, ignoring case.
func (rs Regions) Lookup(name string) (Region, bool) {
	name = strings.TrimSpace(name)
	for _, r := range rs {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Region{}, false
}

// Get returns the named region or the weighted average when it is unknown.
func (rs Regions) Get(name string) Region {
	if r, found := rs.Lookup(name); found {
		return r
	}
	if r, found := rs.Lookup(DefaultRegion); found {
		return r
	}
	r, _ := regions.Lookup(DefaultRegion)
	return r
}

// Merge returns a table where regions from other replace or extend rs.
func (rs Regions) Merge(other Regions) Regions {
	return computemonth.MergeByName(rs, other, func(r Region) string { return r.Name })
}

// Cleanest returns the region with the lowest carbon intensity.
func (rs Regions) Cleanest() Region {
	cleanest := rs.Get(DefaultRegion)
	for _, r := range rs {
		if r.CarbonIntensity < cleanest.CarbonIntensity {
			cleanest = r
		}
	}
	return cleanest
}
