// ABOUTME: Derives the pre-workout hydration context from a day's record.
// ABOUTME: Seeds a session form with fluid, alcohol, caffeine and urine readings.
package daily

import "github.com/harperreed/hydration/internal/models"

// HydrationContext is what a day's record says about readiness before a workout.
type HydrationContext struct {
	FluidPriorL   float64             `json:"fluidPriorL"`
	AlcoholDrinks float64             `json:"alcoholDrinks"`
	CaffeineMg    float64             `json:"caffeineMg"`
	Urine         *models.UrineSample `json:"urine,omitempty"`
}

// ContextFor reads the well-known metrics and latest urine sample of rec.
// A nil record yields the zero context.
func ContextFor(rec *models.DailyRecord) HydrationContext {
	if rec == nil {
		return HydrationContext{}
	}
	ctx := HydrationContext{
		FluidPriorL:   rec.MetricFloat(models.MetricFluidL),
		AlcoholDrinks: rec.MetricFloat(models.MetricAlcohol),
		Urine:         LatestUrine(rec),
	}
	if c, ok := rec.CaffeineMetric(); ok {
		ctx.CaffeineMg = c.Milligrams()
	}
	return ctx
}

// Seed fills the daily fields of a session form. Intake figures recorded for
// the day override the form; a urine color already on the form is kept.
func (c HydrationContext) Seed(in models.SessionInput) models.SessionInput {
	if c.FluidPriorL > 0 {
		in.FluidPriorL = c.FluidPriorL
	}
	if c.AlcoholDrinks > 0 {
		in.AlcoholDrinks = c.AlcoholDrinks
	}
	if c.CaffeineMg > 0 {
		in.CaffeineMg = c.CaffeineMg
	}
	if in.UrineColor == nil && c.Urine != nil {
		in.UrineColor = models.Int(c.Urine.Level)
	}
	return in
}
