// ABOUTME: Hydration service: plans sessions, records daily inputs, manages profiles.
// ABOUTME: Persists through a Repository and mirrors writes in the background.
package hydration

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/hydration/internal/daily"
	"github.com/harperreed/hydration/internal/metrics"
	"github.com/harperreed/hydration/internal/models"
	"github.com/harperreed/hydration/internal/storage"
	log "github.com/sirupsen/logrus"
)

var (
	ErrMissingEmail          = errors.New("email is required")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrIntakeAlreadyRecorded = errors.New("intake already recorded for this session")
	ErrInvalidVolume         = daily.ErrInvalidVolume
)

// Mirror receives copies of successful local writes.
type Mirror interface {
	MirrorUser(u *models.User) error
	MirrorLog(email string, l *models.LogEntry) error
	MirrorDaily(email string, rec *models.DailyRecord) error
}

// Service coordinates the engine, merge rules and storage for one process.
type Service struct {
	repo    storage.Repository
	mirror  Mirror
	now     func() time.Time
	metrics *metrics.Manager

	// dailyMu serializes read-merge-write cycles on daily records and logs.
	dailyMu sync.Mutex
	wg      sync.WaitGroup
}

// Option customizes a Service.
type Option func(*Service)

// WithMirror mirrors writes to m on a best-effort basis.
func WithMirror(m Mirror) Option {
	return func(s *Service) { s.mirror = m }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics records plan, write and mirror counters on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service over repo.
func NewService(repo storage.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository exposes the underlying storage.
func (s *Service) Repository() storage.Repository {
	return s.repo
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Today returns the service clock's local date.
func (s *Service) Today() string {
	return s.now().Format(models.DateLayout)
}

// Close waits for in-flight mirror writes. It does not close the repository.
func (s *Service) Close() {
	s.wg.Wait()
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) dateOrToday(date string) string {
	if date == "" {
		return s.Today()
	}
	return date
}

// mirrorAsync runs fn against the mirror in the background. Failures are
// logged and counted, never returned.
func (s *Service) mirrorAsync(kind string, fn func(Mirror) error) {
	if s.mirror == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := fn(s.mirror); err != nil {
			log.Errorf("mirror %s write failed: %s", kind, err)
			if s.metrics != nil {
				s.metrics.CounterMirrorErrors.WithLabelValues(kind).Inc()
			}
			return
		}
		log.Debugf("mirror %s write ok", kind)
	}()
}

func (s *Service) countDailyWrite(kind string) {
	if s.metrics != nil {
		s.metrics.CounterDailyWrites.WithLabelValues(kind).Inc()
	}
}

func checkEmail(email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", ErrMissingEmail
	}
	return email, nil
}

func wrapNotFound(err error, what string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, err)
	}
	return err
}
