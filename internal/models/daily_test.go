// ABOUTME: Tests for DailyRecord helpers.
// ABOUTME: Covers metric accessors, caffeine conversion, and deep cloning.
package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCaffeineMilligrams(t *testing.T) {
	tests := []struct {
		name string
		c    Caffeine
		want float64
	}{
		{"mg passthrough", Caffeine{Value: 150, Unit: CaffeineUnitMg}, 150},
		{"cups", Caffeine{Value: 2, Unit: CaffeineUnitCups}, 190},
		{"cups rounded", Caffeine{Value: 1.5, Unit: CaffeineUnitCups}, 143},
		{"zero", Caffeine{Value: 0, Unit: CaffeineUnitCups}, 0},
		{"unknown unit is mg", Caffeine{Value: 80, Unit: "shots"}, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Milligrams(); got != tt.want {
				t.Errorf("Milligrams() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCaffeineMetricDecodedJSON(t *testing.T) {
	var rec DailyRecord
	raw := `{"date":"2024-01-01","metrics":{"caffeine":{"value":2,"unit":"cups"},"alcohol":1}}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	c, ok := rec.CaffeineMetric()
	if !ok {
		t.Fatal("expected caffeine metric")
	}
	if c.Milligrams() != 190 {
		t.Errorf("Milligrams() = %v, want 190", c.Milligrams())
	}
	if got := rec.MetricFloat(MetricAlcohol); got != 1 {
		t.Errorf("MetricFloat(alcohol) = %v, want 1", got)
	}
	if got := rec.MetricFloat(MetricFluidL); got != 0 {
		t.Errorf("MetricFloat(fluidL) = %v, want 0", got)
	}
}

func TestCaffeineMetricTyped(t *testing.T) {
	rec := NewDailyRecord("2024-01-01").WithMetric(MetricCaffeine, Caffeine{Value: 120, Unit: CaffeineUnitMg})
	c, ok := rec.CaffeineMetric()
	if !ok || c.Value != 120 {
		t.Errorf("CaffeineMetric() = %+v, %v", c, ok)
	}

	var nilRec *DailyRecord
	if _, ok := nilRec.CaffeineMetric(); ok {
		t.Error("nil record should have no caffeine")
	}
}

func TestDailyRecordCloneIsDeep(t *testing.T) {
	now := time.Now().UTC()
	rec := NewDailyRecord("2024-01-01").WithCaffeine(50, CaffeineUnitMg).WithNote("hot day")
	rec.Urine = &UrineLog{Entries: []UrineSample{{Level: 3, RecordedAt: now}}}
	rec.Hydration = &HydrationLog{Entries: []HydrationEntry{{VolumeL: 0.5, RecordedAt: now}}, TotalL: 0.5}

	c := rec.Clone()
	c.Metrics[MetricCaffeine].(map[string]any)["value"] = 999.0
	c.Urine.Entries[0].Level = 9
	c.Hydration.Entries[0].VolumeL = 2
	*c.Note = "changed"

	orig, _ := rec.CaffeineMetric()
	if orig.Value != 50 {
		t.Errorf("clone mutated caffeine: %v", orig.Value)
	}
	if rec.Urine.Entries[0].Level != 3 {
		t.Error("clone mutated urine entries")
	}
	if rec.Hydration.Entries[0].VolumeL != 0.5 {
		t.Error("clone mutated hydration entries")
	}
	if *rec.Note != "hot day" {
		t.Error("clone mutated note")
	}
}

func TestCloneKeepsEmptyLists(t *testing.T) {
	rec := NewDailyRecord("2024-01-01")
	rec.Hydration = &HydrationLog{Entries: []HydrationEntry{}}

	c := rec.Clone()
	if c.Hydration.Entries == nil {
		t.Error("expected empty, non-nil entries after clone")
	}
}
