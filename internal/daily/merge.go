// ABOUTME: Incremental merge of partial daily-record updates into the stored record.
// ABOUTME: Overwrites metrics per key, replaces urine and water lists wholesale, normalizes entries.
package daily

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/harperreed/hydration/internal/models"
)

var (
	// ErrMissingDate is returned when the incoming record has no date.
	ErrMissingDate = errors.New("daily record requires a date")
	// ErrDateMismatch is returned when the stored and incoming dates differ.
	ErrDateMismatch = errors.New("daily record date mismatch")
)

// Merge folds a partial update into the existing record for the same date.
// existing may be nil. Neither argument is modified.
func Merge(existing *models.DailyRecord, incoming models.DailyRecord) (*models.DailyRecord, error) {
	return MergeAt(existing, incoming, time.Now())
}

// MergeAt is Merge with an explicit clock. Entries without a timestamp are stamped with now.
func MergeAt(existing *models.DailyRecord, incoming models.DailyRecord, now time.Time) (*models.DailyRecord, error) {
	if incoming.Date == "" {
		return nil, ErrMissingDate
	}
	if existing != nil && existing.Date != "" && existing.Date != incoming.Date {
		return nil, fmt.Errorf("%w: stored %s, incoming %s", ErrDateMismatch, existing.Date, incoming.Date)
	}

	out := existing.Clone()
	if out == nil {
		out = models.NewDailyRecord(incoming.Date)
	}
	out.Date = incoming.Date
	if out.Metrics == nil {
		out.Metrics = map[string]any{}
	}

	mergeMetrics(out.Metrics, incoming.Metrics)

	if incoming.Note != nil {
		out.Note = models.String(*incoming.Note)
	}
	if incoming.Time != nil {
		out.Time = models.String(*incoming.Time)
	}
	if incoming.Rating != nil {
		out.Rating = models.Float(*incoming.Rating)
	}

	if incoming.Urine != nil {
		out.Urine = normalizeUrine(incoming.Urine, now)
	} else if out.Urine != nil {
		out.Urine = normalizeUrine(out.Urine, now)
	}

	if incoming.Hydration != nil {
		out.Hydration = mergeHydration(out.Hydration, incoming.Hydration, now)
	} else if out.Hydration != nil {
		out.Hydration = normalizeHydration(out.Hydration, now)
	}

	return out, nil
}

// mergeMetrics copies src into dst. A non-nil value replaces the whole stored value
// for its key, nested objects included; nil never overwrites.
func mergeMetrics(dst, src map[string]any) {
	for k, v := range src {
		if v == nil {
			continue
		}
		dst[k] = models.CloneValue(v)
	}
}

func mergeHydration(current, incoming *models.HydrationLog, now time.Time) *models.HydrationLog {
	merged := &models.HydrationLog{}
	switch {
	case incoming.Entries != nil:
		merged.Entries = incoming.Entries
	case current != nil:
		merged.Entries = current.Entries
	}

	// The total travels with the side that supplied it.
	if incoming.Entries != nil || incoming.TotalL != 0 || current == nil {
		merged.TotalL = incoming.TotalL
	} else {
		merged.TotalL = current.TotalL
	}
	return normalizeHydration(merged, now)
}

func normalizeUrine(log *models.UrineLog, now time.Time) *models.UrineLog {
	entries := make([]models.UrineSample, 0, len(log.Entries))
	for _, s := range log.Entries {
		s = NormalizeSample(s)
		s.RecordedAt = stamp(s.RecordedAt, now)
		entries = append(entries, s)
	}
	return &models.UrineLog{Entries: entries}
}

func normalizeHydration(log *models.HydrationLog, now time.Time) *models.HydrationLog {
	entries := make([]models.HydrationEntry, 0, len(log.Entries))
	for _, e := range log.Entries {
		if !validVolume(e.VolumeL) {
			continue
		}
		entries = append(entries, models.HydrationEntry{
			VolumeL:    round3(e.VolumeL),
			RecordedAt: stamp(e.RecordedAt, now),
		})
	}
	total := log.TotalL
	if !validVolume(total) {
		total = 0
	}
	return &models.HydrationLog{Entries: entries, TotalL: total}
}

// NormalizeSample clamps the level to 1..10 and moves the timestamp to UTC.
// A zero level means the reading was absent and becomes the neutral 5.
func NormalizeSample(s models.UrineSample) models.UrineSample {
	level := s.Level
	if level == 0 {
		level = NeutralLevel
	}
	return models.UrineSample{
		Level:      NormalizeLevel(float64(level)),
		RecordedAt: utc(s.RecordedAt),
	}
}

// stamp returns t in UTC, or now when t was never set.
func stamp(t, now time.Time) time.Time {
	if t.IsZero() {
		return now.UTC()
	}
	return t.UTC()
}

func validVolume(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
