// ABOUTME: User, session log and daily record operations for Charm KV storage.
// ABOUTME: Implements storage.Repository plus the mirror hooks used by the service.
package charm

import (
	"errors"
	"fmt"
	"sort"

	"github.com/harperreed/hydration/internal/models"
	"github.com/harperreed/hydration/internal/storage"
)

// errNotFound aliases the storage sentinel so callers can match either backend.
var errNotFound = storage.ErrNotFound

// CreateUser stores a new user. Returns storage.ErrUserExists if the email is taken.
func (s *Store) CreateUser(u *models.User) error {
	ok, err := s.exists(UserKey(u.Email))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if ok {
		return fmt.Errorf("create user %s: %w", u.Email, storage.ErrUserExists)
	}
	return s.putUser(u)
}

// GetUser retrieves a user by email.
func (s *Store) GetUser(email string) (*models.User, error) {
	data, err := s.get(UserKey(email))
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", email, err)
	}
	u, err := unmarshalJSON[models.User](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return u, nil
}

// UpdateUser overwrites an existing user.
func (s *Store) UpdateUser(u *models.User) error {
	ok, err := s.exists(UserKey(u.Email))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if !ok {
		return fmt.Errorf("update user %s: %w", u.Email, storage.ErrNotFound)
	}
	return s.putUser(u)
}

// ListUsers returns all users ordered by email.
func (s *Store) ListUsers() ([]*models.User, error) {
	allData, err := s.listByPrefix(UserPrefix)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var users []*models.User
	for _, data := range allData {
		u, err := unmarshalJSON[models.User](data)
		if err != nil {
			continue // Skip invalid entries
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Email < users[j].Email
	})
	return users, nil
}

func (s *Store) putUser(u *models.User) error {
	data, err := marshalJSON(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.set(UserKey(u.Email), data)
}

// CreateLog stores a session log. The owning user must exist.
func (s *Store) CreateLog(email string, l *models.LogEntry) error {
	ok, err := s.exists(UserKey(email))
	if err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	if !ok {
		return fmt.Errorf("create log for %s: %w", email, storage.ErrNotFound)
	}
	if dup, err := s.exists(LogKey(email, l.TS)); err != nil {
		return fmt.Errorf("create log: %w", err)
	} else if dup {
		return fmt.Errorf("create log: ts %d already exists", l.TS)
	}
	return s.putLog(email, l)
}

// GetLog retrieves one log by its timestamp.
func (s *Store) GetLog(email string, ts int64) (*models.LogEntry, error) {
	data, err := s.get(LogKey(email, ts))
	if err != nil {
		return nil, fmt.Errorf("get log %d: %w", ts, err)
	}
	l, err := unmarshalJSON[models.LogEntry](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal log: %w", err)
	}
	return l, nil
}

// ListLogs returns the user's logs, newest first. limit <= 0 means all.
func (s *Store) ListLogs(email string, limit int) ([]*models.LogEntry, error) {
	allData, err := s.listByPrefix(logPrefixFor(email))
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	var logs []*models.LogEntry
	for _, data := range allData {
		l, err := unmarshalJSON[models.LogEntry](data)
		if err != nil {
			continue // Skip invalid entries
		}
		logs = append(logs, l)
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].TS > logs[j].TS
	})
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

// SetActualIntake records the liters drunk for a logged session.
func (s *Store) SetActualIntake(email string, ts int64, liters float64) error {
	l, err := s.GetLog(email, ts)
	if err != nil {
		return fmt.Errorf("set actual intake: %w", err)
	}
	l.ActualIntakeL = models.Float(liters)
	return s.putLog(email, l)
}

func (s *Store) putLog(email string, l *models.LogEntry) error {
	data, err := marshalJSON(l)
	if err != nil {
		return fmt.Errorf("marshal log: %w", err)
	}
	return s.set(LogKey(email, l.TS), data)
}

// GetDaily retrieves the user's record for date.
func (s *Store) GetDaily(email, date string) (*models.DailyRecord, error) {
	data, err := s.get(DailyKey(email, date))
	if err != nil {
		return nil, fmt.Errorf("get daily %s: %w", date, err)
	}
	rec, err := decodeDaily(data)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// PutDaily inserts or replaces the user's record for rec.Date.
func (s *Store) PutDaily(email string, rec *models.DailyRecord) error {
	if rec.Date == "" {
		return errors.New("put daily: record has no date")
	}
	data, err := marshalJSON(rec)
	if err != nil {
		return fmt.Errorf("marshal daily: %w", err)
	}
	return s.set(DailyKey(email, rec.Date), data)
}

// ListDaily returns the user's records, most recent date first. limit <= 0 means all.
func (s *Store) ListDaily(email string, limit int) ([]*models.DailyRecord, error) {
	allData, err := s.listByPrefix(dailyPrefixFor(email))
	if err != nil {
		return nil, fmt.Errorf("list daily: %w", err)
	}

	var records []*models.DailyRecord
	for _, data := range allData {
		rec, err := decodeDaily(data)
		if err != nil {
			continue // Skip invalid entries
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// GetAllData retrieves all data for export.
func (s *Store) GetAllData() (*storage.ExportData, error) {
	return storage.Collect(s)
}

// ImportData imports data from an export file.
func (s *Store) ImportData(data *storage.ExportData) error {
	return storage.Restore(s, data)
}

// MirrorUser upserts a user profile.
func (s *Store) MirrorUser(u *models.User) error {
	return s.putUser(u)
}

// MirrorLog upserts a session log without checking for its owner.
func (s *Store) MirrorLog(email string, l *models.LogEntry) error {
	return s.putLog(email, l)
}

// MirrorDaily upserts a daily record.
func (s *Store) MirrorDaily(email string, rec *models.DailyRecord) error {
	return s.PutDaily(email, rec)
}

func decodeDaily(data []byte) (*models.DailyRecord, error) {
	rec, err := unmarshalJSON[models.DailyRecord](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal daily: %w", err)
	}
	if rec.Metrics == nil {
		rec.Metrics = map[string]any{}
	}
	return rec, nil
}

var _ storage.Repository = (*Store)(nil)
