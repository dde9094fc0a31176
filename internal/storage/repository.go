// ABOUTME: Repository interface for hydration data storage.
// ABOUTME: Defines the contract for users, session logs and daily records.
package storage

import (
	"errors"

	"github.com/harperreed/hydration/internal/models"
)

// ErrNotFound is returned when a user, log or daily record does not exist.
var ErrNotFound = errors.New("not found")

// ErrUserExists is returned when creating a user whose email is taken.
var ErrUserExists = errors.New("user already exists")

// Repository defines the storage interface for hydration data.
// Logs and daily records are owned by a user and addressed by the user's email.
type Repository interface {
	// User operations
	CreateUser(u *models.User) error
	GetUser(email string) (*models.User, error)
	UpdateUser(u *models.User) error
	ListUsers() ([]*models.User, error)

	// Session log operations
	CreateLog(email string, l *models.LogEntry) error
	GetLog(email string, ts int64) (*models.LogEntry, error)
	ListLogs(email string, limit int) ([]*models.LogEntry, error)
	SetActualIntake(email string, ts int64, liters float64) error

	// Daily record operations
	GetDaily(email, date string) (*models.DailyRecord, error)
	PutDaily(email string, rec *models.DailyRecord) error
	ListDaily(email string, limit int) ([]*models.DailyRecord, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
