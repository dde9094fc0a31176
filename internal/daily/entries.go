// ABOUTME: Lookup, append and parsing helpers for daily urine and water entries.
// ABOUTME: Appends build a partial record and go through Merge.
package daily

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/hydration/internal/models"
)

// NeutralLevel is the urine level assumed when a reading is missing or unreadable.
const NeutralLevel = 5

// ErrInvalidVolume is returned when a water entry is not a positive finite volume.
var ErrInvalidVolume = errors.New("volume must be a positive number of liters")

// FindByDate returns the record for date, or nil.
func FindByDate(list []*models.DailyRecord, date string) *models.DailyRecord {
	for _, rec := range list {
		if rec != nil && rec.Date == date {
			return rec
		}
	}
	return nil
}

// LatestUrine returns the most recent urine sample of the record, or nil.
// Samples with equal timestamps keep their insertion order.
func LatestUrine(rec *models.DailyRecord) *models.UrineSample {
	if rec == nil || rec.Urine == nil || len(rec.Urine.Entries) == 0 {
		return nil
	}
	sorted := append([]models.UrineSample(nil), rec.Urine.Entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.After(sorted[j].RecordedAt)
	})
	return &sorted[0]
}

// LatestHydration returns the most recent water entry of the record, or nil.
func LatestHydration(rec *models.DailyRecord) *models.HydrationEntry {
	if rec == nil || rec.Hydration == nil || len(rec.Hydration.Entries) == 0 {
		return nil
	}
	sorted := append([]models.HydrationEntry(nil), rec.Hydration.Entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.After(sorted[j].RecordedAt)
	})
	return &sorted[0]
}

// AppendUrineSample adds one sample to the day's urine list.
func AppendUrineSample(existing *models.DailyRecord, date string, sample models.UrineSample) (*models.DailyRecord, error) {
	var entries []models.UrineSample
	if existing != nil && existing.Urine != nil {
		entries = append(entries, existing.Urine.Entries...)
	}
	entries = append(entries, sample)

	return Merge(existing, models.DailyRecord{
		Date:  date,
		Urine: &models.UrineLog{Entries: entries},
	})
}

// AppendHydrationEntry adds one drink to the day's water log and recomputes the total.
func AppendHydrationEntry(existing *models.DailyRecord, date string, entry models.HydrationEntry) (*models.DailyRecord, error) {
	if !validVolume(entry.VolumeL) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidVolume, entry.VolumeL)
	}

	var entries []models.HydrationEntry
	if existing != nil && existing.Hydration != nil {
		entries = append(entries, existing.Hydration.Entries...)
	}
	entries = append(entries, entry)

	var total float64
	for _, e := range entries {
		if validVolume(e.VolumeL) {
			total += round3(e.VolumeL)
		}
	}

	return Merge(existing, models.DailyRecord{
		Date:      date,
		Hydration: &models.HydrationLog{Entries: entries, TotalL: round3(total)},
	})
}

// ResetHydration clears the day's water log.
func ResetHydration(existing *models.DailyRecord, date string) (*models.DailyRecord, error) {
	return Merge(existing, models.DailyRecord{
		Date:      date,
		Hydration: &models.HydrationLog{Entries: []models.HydrationEntry{}},
	})
}

// NormalizeLevel rounds a raw urine reading onto the 1..10 scale.
// Non-finite input maps to NeutralLevel.
func NormalizeLevel(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NeutralLevel
	}
	return int(math.Min(10, math.Max(1, math.Round(v))))
}

// ParseRecordedAt reads a timestamp given as RFC 3339 or as a bare "HH:MM" on date.
// An empty value means now. The result is in UTC.
func ParseRecordedAt(value, date string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if date == "" {
		date = now.Format(models.DateLayout)
	}
	t, err := time.ParseInLocation(models.DateLayout+" 15:04", date+" "+value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse recorded time %q: expected RFC 3339 or HH:MM", value)
	}
	return t.UTC(), nil
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
