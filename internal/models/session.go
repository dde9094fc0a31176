// ABOUTME: SessionInput model describing one planned workout session.
// ABOUTME: Optional numerics are pointers so "absent" is distinct from zero.
package models

// SessionInput holds everything the recommendation engine needs for one session.
// TempC, HumidityPct, UVIndex, UrineColor and MassKg are optional.
type SessionInput struct {
	WorkoutType   string   `json:"workoutType,omitempty" yaml:"workout_type,omitempty"`
	RPE           int      `json:"rpe" yaml:"rpe"`
	DurationMin   int      `json:"durationMin" yaml:"duration_min"`
	TempC         *float64 `json:"tempC,omitempty" yaml:"temp_c,omitempty"`
	HumidityPct   *float64 `json:"humidityPct,omitempty" yaml:"humidity_pct,omitempty"`
	PreScore      int      `json:"preScore" yaml:"pre_score"`
	UVIndex       *float64 `json:"uvIndex,omitempty" yaml:"uv_index,omitempty"`
	FluidPriorL   float64  `json:"fluidPriorL" yaml:"fluid_prior_l"`
	CaffeineMg    float64  `json:"caffeineMg" yaml:"caffeine_mg"`
	AlcoholDrinks float64  `json:"alcoholDrinks" yaml:"alcohol_drinks"`
	UrineColor    *int     `json:"urineColor,omitempty" yaml:"urine_color,omitempty"`
	MassKg        *float64 `json:"massKg,omitempty" yaml:"mass_kg,omitempty"`
}

// NewSessionInput creates a SessionInput with the required fields set.
func NewSessionInput(workoutType string, rpe, durationMin, preScore int) *SessionInput {
	return &SessionInput{
		WorkoutType: workoutType,
		RPE:         rpe,
		DurationMin: durationMin,
		PreScore:    preScore,
	}
}

// WithWeather sets temperature, humidity and UV index.
func (s *SessionInput) WithWeather(tempC, humidityPct, uvIndex float64) *SessionInput {
	s.TempC = &tempC
	s.HumidityPct = &humidityPct
	s.UVIndex = &uvIndex
	return s
}

// WithUrineColor sets the urine color level.
func (s *SessionInput) WithUrineColor(level int) *SessionInput {
	s.UrineColor = &level
	return s
}

// WithMass sets body mass in kilograms.
func (s *SessionInput) WithMass(kg float64) *SessionInput {
	s.MassKg = &kg
	return s
}

// Float returns a pointer to v. Handy for optional fields.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}

// Clone returns a copy that shares no pointers with s.
func (s SessionInput) Clone() SessionInput {
	c := s
	c.TempC = cloneFloat(s.TempC)
	c.HumidityPct = cloneFloat(s.HumidityPct)
	c.UVIndex = cloneFloat(s.UVIndex)
	c.MassKg = cloneFloat(s.MassKg)
	if s.UrineColor != nil {
		c.UrineColor = Int(*s.UrineColor)
	}
	return c
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return Float(*p)
}
