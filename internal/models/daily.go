// ABOUTME: DailyRecord model: the single per-date aggregate of non-workout hydration inputs.
// ABOUTME: Holds free-form metrics plus urine and quick-add water logs.
package models

import (
	"math"
	"time"
)

// DateLayout is the date key format for daily records.
const DateLayout = "2006-01-02"

// Well-known metric keys.
const (
	MetricAlcohol  = "alcohol"
	MetricCaffeine = "caffeine"
	MetricFluidL   = "fluidL"
)

// Caffeine units.
const (
	CaffeineUnitMg   = "mg"
	CaffeineUnitCups = "cups"
)

// mgPerCup is the caffeine content assumed for one cup of coffee.
const mgPerCup = 95

// DailyRecord is one user's record for one date. Metrics is free-form; the
// well-known keys are alcohol (drinks), caffeine ({value, unit}) and fluidL (liters).
type DailyRecord struct {
	Date      string         `json:"date" yaml:"date"`
	Metrics   map[string]any `json:"metrics" yaml:"metrics"`
	Urine     *UrineLog      `json:"urine,omitempty" yaml:"urine,omitempty"`
	Hydration *HydrationLog  `json:"hydration,omitempty" yaml:"hydration,omitempty"`
	Note      *string        `json:"note,omitempty" yaml:"note,omitempty"`
	Time      *string        `json:"time,omitempty" yaml:"time,omitempty"`
	Rating    *float64       `json:"rating,omitempty" yaml:"rating,omitempty"`
}

// UrineLog holds the urine color samples of a day.
type UrineLog struct {
	Entries []UrineSample `json:"entries" yaml:"entries"`
}

// UrineSample is one self-assessed urine color reading, 1 (clear) to 10 (dark).
type UrineSample struct {
	Level      int       `json:"level" yaml:"level"`
	RecordedAt time.Time `json:"recordedAt" yaml:"recorded_at"`
}

// HydrationLog is the quick-add water log of a day. TotalL caches the sum of entries.
type HydrationLog struct {
	Entries []HydrationEntry `json:"entries" yaml:"entries"`
	TotalL  float64          `json:"totalL" yaml:"total_l"`
}

// HydrationEntry is one logged drink.
type HydrationEntry struct {
	VolumeL    float64   `json:"volumeL" yaml:"volume_l"`
	RecordedAt time.Time `json:"recordedAt" yaml:"recorded_at"`
}

// Caffeine is the value stored under the caffeine metric.
type Caffeine struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

// Milligrams converts the reading to mg. Cups count as 95 mg each.
func (c Caffeine) Milligrams() float64 {
	if c.Value == 0 || math.IsNaN(c.Value) {
		return 0
	}
	if c.Unit == CaffeineUnitCups {
		return math.Round(c.Value * mgPerCup)
	}
	return c.Value
}

// NewDailyRecord creates an empty record for date.
func NewDailyRecord(date string) *DailyRecord {
	return &DailyRecord{
		Date:    date,
		Metrics: map[string]any{},
	}
}

// WithMetric sets a metric value.
func (d *DailyRecord) WithMetric(key string, value any) *DailyRecord {
	if d.Metrics == nil {
		d.Metrics = map[string]any{}
	}
	d.Metrics[key] = value
	return d
}

// WithCaffeine sets the caffeine metric.
func (d *DailyRecord) WithCaffeine(value float64, unit string) *DailyRecord {
	return d.WithMetric(MetricCaffeine, map[string]any{"value": value, "unit": unit})
}

// WithNote sets the free-text note.
func (d *DailyRecord) WithNote(note string) *DailyRecord {
	d.Note = &note
	return d
}

// MetricFloat reads a numeric metric. Missing or non-numeric values read as 0.
func (d *DailyRecord) MetricFloat(key string) float64 {
	if d == nil || d.Metrics == nil {
		return 0
	}
	return toFloat(d.Metrics[key])
}

// CaffeineMetric reads the caffeine metric in either its typed or decoded-JSON form.
func (d *DailyRecord) CaffeineMetric() (Caffeine, bool) {
	if d == nil || d.Metrics == nil {
		return Caffeine{}, false
	}
	switch v := d.Metrics[MetricCaffeine].(type) {
	case Caffeine:
		return v, true
	case *Caffeine:
		if v == nil {
			return Caffeine{}, false
		}
		return *v, true
	case map[string]any:
		unit, _ := v["unit"].(string)
		return Caffeine{Value: toFloat(v["value"]), Unit: unit}, true
	case nil:
		return Caffeine{}, false
	default:
		// A bare number is taken as mg.
		return Caffeine{Value: toFloat(v), Unit: CaffeineUnitMg}, true
	}
}

// Clone returns a deep copy of the record.
func (d *DailyRecord) Clone() *DailyRecord {
	if d == nil {
		return nil
	}
	c := &DailyRecord{Date: d.Date}
	if d.Metrics != nil {
		c.Metrics = make(map[string]any, len(d.Metrics))
		for k, v := range d.Metrics {
			c.Metrics[k] = CloneValue(v)
		}
	}
	if d.Urine != nil {
		c.Urine = &UrineLog{Entries: append([]UrineSample(nil), d.Urine.Entries...)}
		if d.Urine.Entries != nil && c.Urine.Entries == nil {
			c.Urine.Entries = []UrineSample{}
		}
	}
	if d.Hydration != nil {
		c.Hydration = &HydrationLog{
			Entries: append([]HydrationEntry(nil), d.Hydration.Entries...),
			TotalL:  d.Hydration.TotalL,
		}
		if d.Hydration.Entries != nil && c.Hydration.Entries == nil {
			c.Hydration.Entries = []HydrationEntry{}
		}
	}
	if d.Note != nil {
		c.Note = String(*d.Note)
	}
	if d.Time != nil {
		c.Time = String(*d.Time)
	}
	if d.Rating != nil {
		c.Rating = Float(*d.Rating)
	}
	return c
}

// CloneValue copies nested maps and slices of a decoded metric value.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = CloneValue(inner)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = CloneValue(inner)
		}
		return s
	default:
		return v
	}
}

func toFloat(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
