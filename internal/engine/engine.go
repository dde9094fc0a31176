// ABOUTME: Hydration recommendation engine: sweat-rate model and fluid plan.
// ABOUTME: Pure functions; coerces inputs instead of failing.
package engine

import (
	"math"

	"github.com/harperreed/hydration/internal/models"
)

// Defaults used when an environmental or urine reading is absent.
const (
	DefaultTempC       = 20.0
	DefaultHumidityPct = 40.0
	DefaultUVIndex     = 3.0
	NeutralUrineColor  = 5
)

// Sodium guidance band in mg/L. Display only.
const (
	SodiumLowMgPerL  = 300
	SodiumHighMgPerL = 600
)

// duringShare is the fraction of sweat loss to replace while exercising.
const duringShare = 0.70

// Breakdown carries every intermediate quantity of the model at full precision.
type Breakdown struct {
	SweatRateRPE float64
	TempFactor   float64
	HumidFactor  float64
	UVFactor     float64
	SweatRate    float64
	SweatLoss    float64
	Slider       float64
	Urine        float64
	BlendedStart float64
	Alcohol      float64
	Caffeine     float64
	FluidPrior   float64
	EffectivePre float64
	DrinkDuring  float64
	DrinkPost    float64
	TotalTarget  float64
	PctMassLoss  *float64
}

// Estimate runs the model without rounding.
func Estimate(in models.SessionInput) Breakdown {
	in = NormalizeInput(in)

	var b Breakdown
	b.SweatRateRPE = 0.18 + 0.12*float64(in.RPE)
	b.TempFactor = TempFactor(valueOr(in.TempC, DefaultTempC))
	b.HumidFactor = HumidityFactor(valueOr(in.HumidityPct, DefaultHumidityPct))
	b.UVFactor = UVFactor(valueOr(in.UVIndex, DefaultUVIndex))
	b.SweatRate = b.SweatRateRPE * b.TempFactor * b.HumidFactor * b.UVFactor
	b.SweatLoss = b.SweatRate * float64(in.DurationMin) / 60

	urineColor := NeutralUrineColor
	if in.UrineColor != nil {
		urineColor = *in.UrineColor
	}
	b.Slider = 0.25 * float64(in.PreScore-3)
	b.Urine = clamp(0.5*float64(5-urineColor)/4, -0.5, 0.5)
	b.BlendedStart = 0.6*b.Urine + 0.4*b.Slider

	b.Alcohol = 0.10 * in.AlcoholDrinks
	b.Caffeine = 0.10 * math.Max(in.CaffeineMg-200, 0) / 200
	b.FluidPrior = in.FluidPriorL
	b.EffectivePre = b.FluidPrior + b.BlendedStart - (b.Alcohol + b.Caffeine)

	// No session, nothing to drink: a negative preload alone never asks for fluid.
	if in.DurationMin > 0 {
		b.DrinkDuring = math.Max(0, duringShare*b.SweatLoss-b.EffectivePre)
		b.DrinkPost = math.Max(0, b.SweatLoss-b.DrinkDuring-b.EffectivePre)
	}
	b.TotalTarget = b.DrinkDuring + b.DrinkPost

	if in.MassKg != nil {
		pct := b.SweatLoss / *in.MassKg * 100
		b.PctMassLoss = &pct
	}
	return b
}

// ComputePlan converts a session into a rounded HydrationPlan.
func ComputePlan(in models.SessionInput) models.HydrationPlan {
	b := Estimate(in)

	plan := models.HydrationPlan{
		SweatRate:    Round2(b.SweatRate),
		SweatLoss:    Round2(b.SweatLoss),
		DrinkDuring:  Round2(b.DrinkDuring),
		DrinkPost:    Round2(b.DrinkPost),
		TotalTargetL: Round2(b.TotalTarget),
		Adjustments: models.Adjustments{
			Slider:       Round2(b.Slider),
			Urine:        Round2(b.Urine),
			BlendedStart: Round2(b.BlendedStart),
			Alcohol:      Round2(b.Alcohol),
			Caffeine:     Round2(b.Caffeine),
			FluidPrior:   Round2(b.FluidPrior),
			EffectivePre: Round2(b.EffectivePre),
		},
		Factors: models.Factors{
			Temp:     Round2(b.TempFactor),
			Humidity: Round2(b.HumidFactor),
			UV:       Round2(b.UVFactor),
		},
		Sodium:       models.SodiumBand{Low: SodiumLowMgPerL, High: SodiumHighMgPerL},
		SodiumMgPerL: (SodiumLowMgPerL + SodiumHighMgPerL) / 2,
	}
	if b.PctMassLoss != nil {
		plan.PctBodyMassLoss = models.Float(Round2(*b.PctMassLoss))
	}
	return plan
}

// TempFactor scales sweat rate by air temperature, clamped to [0.7, 2.0].
func TempFactor(tempC float64) float64 {
	return clamp(1+0.03*(tempC-20), 0.7, 2.0)
}

// HumidityFactor scales sweat rate by relative humidity, clamped to [0.8, 1.6].
func HumidityFactor(humidityPct float64) float64 {
	return clamp(1+0.004*(humidityPct-40), 0.8, 1.6)
}

// UVFactor scales sweat rate by UV index, clamped to [0.9, 1.4].
func UVFactor(uvIndex float64) float64 {
	return clamp(1+0.02*(uvIndex-3), 0.9, 1.4)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func valueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
