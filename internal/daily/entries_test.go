// ABOUTME: Tests for daily entry helpers and the hydration context.
// ABOUTME: Covers appends, resets, latest-sample lookup, time parsing and form seeding.
package daily

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/harperreed/hydration/internal/models"
)

func TestFindByDate(t *testing.T) {
	list := []*models.DailyRecord{
		models.NewDailyRecord("2025-06-01"),
		nil,
		models.NewDailyRecord("2025-06-02"),
	}
	if got := FindByDate(list, "2025-06-02"); got == nil || got.Date != "2025-06-02" {
		t.Errorf("FindByDate = %v", got)
	}
	if got := FindByDate(list, "2025-06-03"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestLatestUrineStable(t *testing.T) {
	rec := models.NewDailyRecord("2025-06-01")
	rec.Urine = &models.UrineLog{Entries: []models.UrineSample{
		{Level: 2, RecordedAt: at},
		{Level: 6, RecordedAt: at.Add(time.Hour)},
		{Level: 8, RecordedAt: at.Add(time.Hour)},
	}}

	got := LatestUrine(rec)
	if got == nil || got.Level != 6 {
		t.Errorf("LatestUrine = %+v, want level 6", got)
	}
	if rec.Urine.Entries[0].Level != 2 {
		t.Error("LatestUrine reordered the record")
	}

	if LatestUrine(nil) != nil || LatestUrine(models.NewDailyRecord("2025-06-01")) != nil {
		t.Error("expected nil for empty records")
	}
}

func TestLatestHydration(t *testing.T) {
	rec := models.NewDailyRecord("2025-06-01")
	rec.Hydration = &models.HydrationLog{Entries: []models.HydrationEntry{
		{VolumeL: 0.2, RecordedAt: at.Add(2 * time.Hour)},
		{VolumeL: 0.4, RecordedAt: at},
	}}
	if got := LatestHydration(rec); got == nil || got.VolumeL != 0.2 {
		t.Errorf("LatestHydration = %+v", got)
	}
}

func TestAppendHydrationEntry(t *testing.T) {
	rec, err := AppendHydrationEntry(nil, "2025-06-01", models.HydrationEntry{VolumeL: 0.25, RecordedAt: at})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	rec, err = AppendHydrationEntry(rec, "2025-06-01", models.HydrationEntry{VolumeL: 0.5, RecordedAt: at.Add(time.Hour)})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if len(rec.Hydration.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(rec.Hydration.Entries))
	}
	if rec.Hydration.TotalL != 0.75 {
		t.Errorf("TotalL = %v, want 0.75", rec.Hydration.TotalL)
	}

	for _, bad := range []float64{0, -0.5, math.NaN(), math.Inf(1)} {
		if _, err := AppendHydrationEntry(rec, "2025-06-01", models.HydrationEntry{VolumeL: bad}); !errors.Is(err, ErrInvalidVolume) {
			t.Errorf("volume %v: expected ErrInvalidVolume, got %v", bad, err)
		}
	}
}

func TestAppendUrineSampleKeepsMetrics(t *testing.T) {
	existing := models.NewDailyRecord("2025-06-01").WithMetric(models.MetricAlcohol, 1.0)

	rec, err := AppendUrineSample(existing, "2025-06-01", models.UrineSample{Level: 3, RecordedAt: at})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	rec, err = AppendUrineSample(rec, "2025-06-01", models.UrineSample{Level: 15, RecordedAt: at.Add(time.Hour)})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if len(rec.Urine.Entries) != 2 || rec.Urine.Entries[1].Level != 10 {
		t.Errorf("urine = %+v", rec.Urine.Entries)
	}
	if rec.MetricFloat(models.MetricAlcohol) != 1 {
		t.Error("append dropped metrics")
	}

	if _, err := AppendUrineSample(existing, "2025-06-02", models.UrineSample{Level: 3}); !errors.Is(err, ErrDateMismatch) {
		t.Errorf("expected ErrDateMismatch, got %v", err)
	}
}

func TestResetHydration(t *testing.T) {
	rec, err := AppendHydrationEntry(nil, "2025-06-01", models.HydrationEntry{VolumeL: 1, RecordedAt: at})
	if err != nil {
		t.Fatal(err)
	}
	rec, err = ResetHydration(rec, "2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Hydration == nil || len(rec.Hydration.Entries) != 0 || rec.Hydration.TotalL != 0 {
		t.Errorf("hydration after reset = %+v", rec.Hydration)
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{1, 1},
		{4.4, 4},
		{4.6, 5},
		{0, 1},
		{-7, 1},
		{11, 10},
		{math.NaN(), NeutralLevel},
		{math.Inf(-1), NeutralLevel},
	}
	for _, tt := range tests {
		if got := NormalizeLevel(tt.in); got != tt.want {
			t.Errorf("NormalizeLevel(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseRecordedAt(t *testing.T) {
	zone := time.FixedZone("EST", -5*3600)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, zone)

	got, err := ParseRecordedAt("", "2025-06-01", now)
	if err != nil || !got.Equal(now) || got.Location() != time.UTC {
		t.Errorf("empty value = %v, %v", got, err)
	}

	got, err = ParseRecordedAt("2025-06-01T08:15:00Z", "2025-06-01", now)
	if err != nil || !got.Equal(time.Date(2025, 6, 1, 8, 15, 0, 0, time.UTC)) {
		t.Errorf("rfc3339 = %v, %v", got, err)
	}

	got, err = ParseRecordedAt("07:45", "2025-05-30", now)
	if err != nil {
		t.Fatalf("HH:MM: %v", err)
	}
	if want := time.Date(2025, 5, 30, 12, 45, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("HH:MM = %v, want %v", got, want)
	}

	if _, err := ParseRecordedAt("quarter past", "2025-06-01", now); err == nil {
		t.Error("expected error for unparseable time")
	}
}

func TestContextAndSeed(t *testing.T) {
	rec := models.NewDailyRecord("2025-06-01").
		WithMetric(models.MetricFluidL, 0.6).
		WithMetric(models.MetricAlcohol, 2.0).
		WithCaffeine(3, models.CaffeineUnitCups)
	rec.Urine = &models.UrineLog{Entries: []models.UrineSample{{Level: 7, RecordedAt: at}}}

	ctx := ContextFor(rec)
	if ctx.FluidPriorL != 0.6 || ctx.AlcoholDrinks != 2 || ctx.CaffeineMg != 285 {
		t.Errorf("context = %+v", ctx)
	}
	if ctx.Urine == nil || ctx.Urine.Level != 7 {
		t.Errorf("context urine = %+v", ctx.Urine)
	}

	seeded := ctx.Seed(*models.NewSessionInput("run", 6, 45, 3))
	if seeded.FluidPriorL != 0.6 || seeded.AlcoholDrinks != 2 || seeded.CaffeineMg != 285 {
		t.Errorf("seeded = %+v", seeded)
	}
	if seeded.UrineColor == nil || *seeded.UrineColor != 7 {
		t.Errorf("seeded urine = %v", seeded.UrineColor)
	}

	form := models.NewSessionInput("run", 6, 45, 3).WithUrineColor(2)
	if got := ctx.Seed(*form); *got.UrineColor != 2 {
		t.Errorf("form urine color should win, got %d", *got.UrineColor)
	}

	if empty := ContextFor(nil); empty != (HydrationContext{}) {
		t.Errorf("nil record context = %+v", empty)
	}
}
