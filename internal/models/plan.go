// ABOUTME: HydrationPlan model produced by the recommendation engine.
// ABOUTME: Persisted verbatim inside a LogEntry.
package models

// HydrationPlan is the fluid and electrolyte recommendation for one session.
// Liter and rate values are rounded to two decimals.
type HydrationPlan struct {
	SweatRate       float64     `json:"sweatRate" yaml:"sweat_rate"`
	SweatLoss       float64     `json:"sweatLoss" yaml:"sweat_loss"`
	DrinkDuring     float64     `json:"drinkDuring" yaml:"drink_during"`
	DrinkPost       float64     `json:"drinkPost" yaml:"drink_post"`
	TotalTargetL    float64     `json:"totalTargetL" yaml:"total_target_l"`
	Adjustments     Adjustments `json:"adjustments" yaml:"adjustments"`
	Factors         Factors     `json:"factors" yaml:"factors"`
	Sodium          SodiumBand  `json:"sodium" yaml:"sodium"`
	SodiumMgPerL    int         `json:"sodiumMgPerL" yaml:"sodium_mg_per_l"`
	PctBodyMassLoss *float64    `json:"pctBodyMassLoss" yaml:"pct_body_mass_loss"`
}

// Adjustments breaks down the pre-hydration offset, in liters.
type Adjustments struct {
	Slider       float64 `json:"slider" yaml:"slider"`
	Urine        float64 `json:"urine" yaml:"urine"`
	BlendedStart float64 `json:"blendedStart" yaml:"blended_start"`
	Alcohol      float64 `json:"alcohol" yaml:"alcohol"`
	Caffeine     float64 `json:"caffeine" yaml:"caffeine"`
	FluidPrior   float64 `json:"fluidPrior" yaml:"fluid_prior"`
	EffectivePre float64 `json:"effectivePre" yaml:"effective_pre"`
}

// Factors are the unitless environmental multipliers applied to the sweat rate.
type Factors struct {
	Temp     float64 `json:"temp" yaml:"temp"`
	Humidity float64 `json:"humidity" yaml:"humidity"`
	UV       float64 `json:"uv" yaml:"uv"`
}

// SodiumBand is a sodium concentration range in mg per liter.
type SodiumBand struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}
