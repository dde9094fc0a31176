// ABOUTME: Session planning and intake recording on top of the engine.
// ABOUTME: Seeds forms from the daily record and the profile, stores each plan as a log.
package hydration

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/harperreed/hydration/internal/daily"
	"github.com/harperreed/hydration/internal/engine"
	"github.com/harperreed/hydration/internal/models"
	"github.com/harperreed/hydration/internal/storage"
)

// Prepare fills a session form from the day's record, the weather snapshot and
// the user's profile, without storing anything.
func (s *Service) Prepare(ctx context.Context, email, date string, form models.SessionInput, w *models.Weather) (models.SessionInput, error) {
	u, err := s.User(ctx, email)
	if err != nil {
		return form, err
	}
	rec, err := s.storedDaily(u.Email, s.dateOrToday(date))
	if err != nil {
		return form, err
	}

	form = daily.ContextFor(rec).Seed(form)
	w.ApplyToSession(&form)
	if form.MassKg == nil && u.MassKg != nil {
		form.MassKg = models.Float(*u.MassKg)
	}
	return form, nil
}

// PlanToday computes a plan for the form and stores it as a new log entry.
func (s *Service) PlanToday(ctx context.Context, email, date string, form models.SessionInput, w *models.Weather) (*models.LogEntry, error) {
	input, err := s.Prepare(ctx, email, date, form, w)
	if err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)
	plan := engine.ComputePlan(input)

	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()

	entry := models.NewLogEntry(s.now(), input, plan).WithWeather(w)
	// ts is the log identity; step past any entry already stored at this millisecond.
	for {
		_, err := s.repo.GetLog(email, entry.TS)
		if errors.Is(err, storage.ErrNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		entry.TS++
	}

	if err := s.repo.CreateLog(email, entry); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.CounterPlans.Inc()
	}

	mirrored := entry.Clone()
	s.mirrorAsync("log", func(m Mirror) error { return m.MirrorLog(email, mirrored) })
	return entry, nil
}

// RecordIntake sets the liters actually drunk for a logged session. It can be
// set once; a second call returns ErrIntakeAlreadyRecorded.
func (s *Service) RecordIntake(ctx context.Context, email string, ts int64, liters float64) (*models.LogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email, err := checkEmail(email)
	if err != nil {
		return nil, err
	}
	if liters < 0 || math.IsNaN(liters) || math.IsInf(liters, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidVolume, liters)
	}

	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()

	entry, err := s.repo.GetLog(email, ts)
	if err != nil {
		return nil, wrapNotFound(err, "record intake")
	}
	if entry.ActualIntakeL != nil {
		return nil, ErrIntakeAlreadyRecorded
	}
	if err := s.repo.SetActualIntake(email, ts, liters); err != nil {
		return nil, err
	}
	entry.ActualIntakeL = models.Float(liters)

	mirrored := entry.Clone()
	s.mirrorAsync("log", func(m Mirror) error { return m.MirrorLog(email, mirrored) })
	return entry, nil
}

// ListLogs returns the user's most recent session logs.
func (s *Service) ListLogs(ctx context.Context, email string, limit int) ([]*models.LogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email, err := checkEmail(email)
	if err != nil {
		return nil, err
	}
	return s.repo.ListLogs(email, limit)
}

// Goal returns the day's drinking goal: the profile's base goal plus the
// needs of sessions planned that day.
func (s *Service) Goal(ctx context.Context, email, date string) (engine.Goal, error) {
	u, err := s.User(ctx, email)
	if err != nil {
		return engine.Goal{}, err
	}
	logs, err := s.repo.ListLogs(u.Email, 0)
	if err != nil {
		return engine.Goal{}, err
	}
	return engine.DailyGoal(u.HydrationGoalL, logs, s.dateOrToday(date)), nil
}
