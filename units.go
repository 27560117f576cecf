package computemonth

const (
	// HoursPerMonth is the average month used everywhere (30.4 days).
	HoursPerMonth = 730.0
	// SecondsPerHour converts hourly figures to per second rates.
	SecondsPerHour = 3600.0
	// H100BaselineTFLOPS is the dense peak used to express compute in H100-equivalents.
	H100BaselineTFLOPS = 989.0
	// LitersToGallons converts liters to US gallons.
	LitersToGallons = 0.264172
)

// Power in megawatts
type Power float64

func MegaWatts(mw float64) Power {
	return Power(mw)
}

func GigaWatts(gw float64) Power {
	return Power(gw * 1000)
}

func (p Power) MW() float64 {
	return float64(p)
}

func (p Power) GW() float64 {
	return float64(p) / 1000
}

func (p Power) KW() float64 {
	return float64(p) * 1000
}

// MWhPerMonth is the energy drawn when running at p for a whole month.
func (p Power) MWhPerMonth() float64 {
	return float64(p) * HoursPerMonth
}

// Emissions in gCO2eq
type Emissions float64

func (e Emissions) KgCO2eq() float64 {
	return float64(e) / 1000
}

func (e Emissions) TCO2eq() float64 {
	return e.KgCO2eq() / 1000
}

// Water in liters
type Water float64

func (w Water) Gallons() float64 {
	return float64(w) * LitersToGallons
}

// SecondsPerMonth is the number of seconds in HoursPerMonth.
func SecondsPerMonth() float64 {
	return HoursPerMonth * SecondsPerHour
}
