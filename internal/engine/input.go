// ABOUTME: Input coercion for the recommendation engine.
// ABOUTME: Maps partial or malformed numeric input to safe defaults.
package engine

import (
	"math"

	"github.com/harperreed/hydration/internal/models"
)

// NormalizeInput coerces a SessionInput so the model always has usable numbers.
// Negative duration and intake figures become 0, non-finite optionals become
// absent, and a non-positive body mass counts as unknown.
func NormalizeInput(in models.SessionInput) models.SessionInput {
	if in.DurationMin < 0 {
		in.DurationMin = 0
	}
	in.FluidPriorL = nonNegative(in.FluidPriorL)
	in.CaffeineMg = nonNegative(in.CaffeineMg)
	in.AlcoholDrinks = nonNegative(in.AlcoholDrinks)
	in.TempC = finiteOrNil(in.TempC)
	in.HumidityPct = finiteOrNil(in.HumidityPct)
	in.UVIndex = finiteOrNil(in.UVIndex)
	in.MassKg = finiteOrNil(in.MassKg)
	if in.MassKg != nil && *in.MassKg <= 0 {
		in.MassKg = nil
	}
	return in
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func finiteOrNil(p *float64) *float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return nil
	}
	return p
}
