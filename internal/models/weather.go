// ABOUTME: Weather snapshot model stored alongside a log entry.
// ABOUTME: Fields are optional because the upstream provider may omit any of them.
package models

// Weather is a normalized current-conditions snapshot.
type Weather struct {
	TempC        *float64 `json:"tempC" yaml:"temp_c,omitempty"`
	FeelslikeC   *float64 `json:"feelslikeC" yaml:"feelslike_c,omitempty"`
	HumidityPct  *float64 `json:"humidityPct" yaml:"humidity_pct,omitempty"`
	UVIndex      *float64 `json:"uvIndex" yaml:"uv_index,omitempty"`
	WindKph      *float64 `json:"windKph" yaml:"wind_kph,omitempty"`
	WindMps      *float64 `json:"windMps" yaml:"wind_mps,omitempty"`
	WindDir      string   `json:"windDir,omitempty" yaml:"wind_dir,omitempty"`
	PressureMb   *float64 `json:"pressureMb" yaml:"pressure_mb,omitempty"`
	CloudPct     *float64 `json:"cloudPct" yaml:"cloud_pct,omitempty"`
	VisibilityKm *float64 `json:"visibilityKm" yaml:"visibility_km,omitempty"`
	City         string   `json:"city,omitempty" yaml:"city,omitempty"`
	Region       string   `json:"region,omitempty" yaml:"region,omitempty"`
	Country      string   `json:"country,omitempty" yaml:"country,omitempty"`
}

// ApplyToSession fills the session's temperature, humidity and UV index
// from the snapshot where the session left them unset.
func (w *Weather) ApplyToSession(in *SessionInput) {
	if w == nil || in == nil {
		return
	}
	if in.TempC == nil && w.TempC != nil {
		in.TempC = Float(*w.TempC)
	}
	if in.HumidityPct == nil && w.HumidityPct != nil {
		in.HumidityPct = Float(*w.HumidityPct)
	}
	if in.UVIndex == nil && w.UVIndex != nil {
		in.UVIndex = Float(*w.UVIndex)
	}
}

// Clone returns a deep copy of the snapshot, or nil.
func (w *Weather) Clone() *Weather {
	if w == nil {
		return nil
	}
	c := *w
	c.TempC = cloneFloat(w.TempC)
	c.FeelslikeC = cloneFloat(w.FeelslikeC)
	c.HumidityPct = cloneFloat(w.HumidityPct)
	c.UVIndex = cloneFloat(w.UVIndex)
	c.WindKph = cloneFloat(w.WindKph)
	c.WindMps = cloneFloat(w.WindMps)
	c.PressureMb = cloneFloat(w.PressureMb)
	c.CloudPct = cloneFloat(w.CloudPct)
	c.VisibilityKm = cloneFloat(w.VisibilityKm)
	return &c
}
