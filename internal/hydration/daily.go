// ABOUTME: Daily record operations: partial updates, urine samples and water log.
// ABOUTME: Each write reads the stored record, merges, persists, then mirrors.
package hydration

import (
	"context"
	"errors"
	"time"

	"github.com/harperreed/hydration/internal/daily"
	"github.com/harperreed/hydration/internal/models"
	"github.com/harperreed/hydration/internal/storage"
)

// RecordDaily merges a partial record into the user's record for incoming.Date.
func (s *Service) RecordDaily(ctx context.Context, email string, incoming models.DailyRecord) (*models.DailyRecord, error) {
	return s.updateDaily(ctx, email, incoming.Date, "set", func(existing *models.DailyRecord) (*models.DailyRecord, error) {
		return daily.MergeAt(existing, incoming, s.now())
	})
}

// LogUrine appends a urine color sample. level is rounded and clamped to 1..10;
// a zero at means now.
func (s *Service) LogUrine(ctx context.Context, email, date string, level float64, at time.Time) (*models.DailyRecord, error) {
	date = s.dateOrToday(date)
	if at.IsZero() {
		at = s.now()
	}
	sample := models.UrineSample{Level: daily.NormalizeLevel(level), RecordedAt: at}
	return s.updateDaily(ctx, email, date, "urine", func(existing *models.DailyRecord) (*models.DailyRecord, error) {
		return daily.AppendUrineSample(existing, date, sample)
	})
}

// LogWater appends a drink to the water log. liters must be positive.
func (s *Service) LogWater(ctx context.Context, email, date string, liters float64, at time.Time) (*models.DailyRecord, error) {
	date = s.dateOrToday(date)
	if at.IsZero() {
		at = s.now()
	}
	entry := models.HydrationEntry{VolumeL: liters, RecordedAt: at}
	return s.updateDaily(ctx, email, date, "water", func(existing *models.DailyRecord) (*models.DailyRecord, error) {
		return daily.AppendHydrationEntry(existing, date, entry)
	})
}

// ResetWater clears the water log for date.
func (s *Service) ResetWater(ctx context.Context, email, date string) (*models.DailyRecord, error) {
	date = s.dateOrToday(date)
	return s.updateDaily(ctx, email, date, "reset", func(existing *models.DailyRecord) (*models.DailyRecord, error) {
		return daily.ResetHydration(existing, date)
	})
}

// DailyFor returns the user's record for date, or an empty record when none is stored.
func (s *Service) DailyFor(ctx context.Context, email, date string) (*models.DailyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email, err := checkEmail(email)
	if err != nil {
		return nil, err
	}
	date = s.dateOrToday(date)

	rec, err := s.storedDaily(email, date)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return models.NewDailyRecord(date), nil
	}
	return rec, nil
}

// ListDaily returns the user's most recent records.
func (s *Service) ListDaily(ctx context.Context, email string, limit int) ([]*models.DailyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email, err := checkEmail(email)
	if err != nil {
		return nil, err
	}
	return s.repo.ListDaily(email, limit)
}

func (s *Service) storedDaily(email, date string) (*models.DailyRecord, error) {
	rec, err := s.repo.GetDaily(email, date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (s *Service) updateDaily(ctx context.Context, email, date, kind string, apply func(*models.DailyRecord) (*models.DailyRecord, error)) (*models.DailyRecord, error) {
	if date == "" {
		return nil, daily.ErrMissingDate
	}
	u, err := s.User(ctx, email)
	if err != nil {
		return nil, err
	}

	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()

	existing, err := s.storedDaily(u.Email, date)
	if err != nil {
		return nil, err
	}
	merged, err := apply(existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.PutDaily(u.Email, merged); err != nil {
		return nil, err
	}
	s.countDailyWrite(kind)

	mirrored := merged.Clone()
	s.mirrorAsync("daily", func(m Mirror) error { return m.MirrorDaily(u.Email, mirrored) })
	return merged, nil
}
