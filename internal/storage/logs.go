// ABOUTME: Session log operations for SQLite storage.
// ABOUTME: Logs are identified by (email, ts) and listed newest first.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/hydration/internal/models"
)

const logColumns = `ts, input, plan, actual_intake_l, weather`

// CreateLog stores a session log for the user.
func (d *DB) CreateLog(email string, l *models.LogEntry) error {
	input, err := json.Marshal(l.Input)
	if err != nil {
		return fmt.Errorf("marshal input: %w", err)
	}
	plan, err := json.Marshal(l.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	var weather sql.NullString
	if l.Weather != nil {
		w, err := json.Marshal(l.Weather)
		if err != nil {
			return fmt.Errorf("marshal weather: %w", err)
		}
		weather = sql.NullString{String: string(w), Valid: true}
	}

	_, err = d.db.Exec(`
		INSERT INTO logs (email, ts, workout_type, input, plan, actual_intake_l, weather)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, email, l.TS, l.Input.WorkoutType, string(input), string(plan), nullFloat(l.ActualIntakeL), weather)
	if err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	return nil
}

// GetLog retrieves one log by its timestamp.
func (d *DB) GetLog(email string, ts int64) (*models.LogEntry, error) {
	row := d.db.QueryRow(`SELECT `+logColumns+` FROM logs WHERE email = ? AND ts = ?`, email, ts)
	l, err := scanLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get log %d: %w", ts, ErrNotFound)
		}
		return nil, fmt.Errorf("get log: %w", err)
	}
	return l, nil
}

// ListLogs returns the user's logs, newest first. limit <= 0 means all.
func (d *DB) ListLogs(email string, limit int) ([]*models.LogEntry, error) {
	query := `SELECT ` + logColumns + ` FROM logs WHERE email = ? ORDER BY ts DESC`
	args := []any{email}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.LogEntry
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// SetActualIntake records the liters drunk for a logged session.
func (d *DB) SetActualIntake(email string, ts int64, liters float64) error {
	result, err := d.db.Exec(`UPDATE logs SET actual_intake_l = ? WHERE email = ? AND ts = ?`, liters, email, ts)
	if err != nil {
		return fmt.Errorf("set actual intake: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set actual intake: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set actual intake %d: %w", ts, ErrNotFound)
	}
	return nil
}

func scanLog(s scanner) (*models.LogEntry, error) {
	var l models.LogEntry
	var input, plan string
	var actual sql.NullFloat64
	var weather sql.NullString

	if err := s.Scan(&l.TS, &input, &plan, &actual, &weather); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(input), &l.Input); err != nil {
		return nil, fmt.Errorf("unmarshal input: %w", err)
	}
	if err := json.Unmarshal([]byte(plan), &l.Plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	if actual.Valid {
		l.ActualIntakeL = &actual.Float64
	}
	if weather.Valid && weather.String != "" {
		var w models.Weather
		if err := json.Unmarshal([]byte(weather.String), &w); err != nil {
			return nil, fmt.Errorf("unmarshal weather: %w", err)
		}
		l.Weather = &w
	}
	return &l, nil
}
