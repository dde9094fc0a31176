// ABOUTME: Daily record operations for SQLite storage.
// ABOUTME: One JSON document per (email, date); writes replace the stored document.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/hydration/internal/models"
)

// GetDaily retrieves the user's record for date.
func (d *DB) GetDaily(email, date string) (*models.DailyRecord, error) {
	var raw string
	err := d.db.QueryRow(`SELECT record FROM daily_records WHERE email = ? AND date = ?`, email, date).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get daily %s: %w", date, ErrNotFound)
		}
		return nil, fmt.Errorf("get daily: %w", err)
	}
	return decodeDaily(raw)
}

// PutDaily inserts or replaces the user's record for rec.Date.
func (d *DB) PutDaily(email string, rec *models.DailyRecord) error {
	if rec.Date == "" {
		return fmt.Errorf("put daily: record has no date")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal daily: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO daily_records (email, date, record, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(email, date) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at
	`, email, rec.Date, string(data))
	if err != nil {
		return fmt.Errorf("put daily: %w", err)
	}
	return nil
}

// ListDaily returns the user's records, most recent date first. limit <= 0 means all.
func (d *DB) ListDaily(email string, limit int) ([]*models.DailyRecord, error) {
	query := `SELECT record FROM daily_records WHERE email = ? ORDER BY date DESC`
	args := []any{email}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list daily: %w", err)
	}
	defer rows.Close()

	var records []*models.DailyRecord
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan daily: %w", err)
		}
		rec, err := decodeDaily(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func decodeDaily(raw string) (*models.DailyRecord, error) {
	var rec models.DailyRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal daily: %w", err)
	}
	if rec.Metrics == nil {
		rec.Metrics = map[string]any{}
	}
	return &rec, nil
}
