package metrics

import "math"

const (
	ReferenceTemperature = 300.0
	ColdReservoir        = 290.0
)

// DeltaT is the excess over the reference temperature, floored at zero.
func DeltaT(temperature float64) float64 {
	return math.Max(0, temperature-ReferenceTemperature)
}

// Efficiency is the Carnot limit 1 - Tc/T against the cold reservoir, in
// percent. It is only defined above Tc and reported as 0 otherwise.
func Efficiency(temperature float64) float64 {
	if temperature <= ColdReservoir {
		return 0
	}
	return math.Max(0, 1-ColdReservoir/temperature) * 100
}

// HasEfficiency reports whether the efficiency readout should be shown.
func HasEfficiency(temperature float64) bool {
	return temperature > ColdReservoir
}

// TSPoint is one point on a T-S chart: entropy and temperature in kelvin.
type TSPoint struct{ S, T float64 }

// ReferenceCurve is the illustrative T-S curve drawn behind measured states.
var ReferenceCurve = []TSPoint{
	{0.05, 150},
	{0.15, 200},
	{0.25, 300},
	{0.35, 450},
	{0.5, 700},
	{0.7, 1000},
	{0.9, 1500},
}

// ChartMaxT is the top of a T-S chart's temperature axis: the hotter of the
// reference curve and t, with ten percent headroom.
func ChartMaxT(t float64) float64 {
	return math.Max(ReferenceCurve[len(ReferenceCurve)-1].T, t) * 1.1
}
