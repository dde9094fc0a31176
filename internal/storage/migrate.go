// ABOUTME: Data migration between hydration storage backends.
// ABOUTME: Copies users, session logs and daily records from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Users int
	Logs  int
	Daily int
}

// MigrateData copies all data from src to dst storage, user by user.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	users, err := src.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list source users: %w", err)
	}

	for _, u := range users {
		if err := dst.CreateUser(u); err != nil {
			return nil, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		summary.Users++

		logs, err := src.ListLogs(u.Email, 0)
		if err != nil {
			return nil, fmt.Errorf("list logs for %s: %w", u.Email, err)
		}
		for _, l := range logs {
			if err := dst.CreateLog(u.Email, l); err != nil {
				return nil, fmt.Errorf("create log %d: %w", l.TS, err)
			}
			summary.Logs++
		}

		records, err := src.ListDaily(u.Email, 0)
		if err != nil {
			return nil, fmt.Errorf("list daily for %s: %w", u.Email, err)
		}
		for _, rec := range records {
			if err := dst.PutDaily(u.Email, rec); err != nil {
				return nil, fmt.Errorf("put daily %s: %w", rec.Date, err)
			}
			summary.Daily++
		}
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
