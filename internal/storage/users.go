// ABOUTME: User profile CRUD operations for SQLite storage.
// ABOUTME: Users are keyed by email; the private key is the stable owner id.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/hydration/internal/models"
)

const userColumns = `email, private_key, name, password_hash, mass_kg, hydration_goal_l, sweat_rate_lph, units, created_at`

// CreateUser stores a new user. Returns ErrUserExists if the email is taken.
func (d *DB) CreateUser(u *models.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.Exec(query,
		u.Email,
		u.PrivateKey.String(),
		u.Name,
		u.PasswordHash,
		nullFloat(u.MassKg),
		u.HydrationGoalL,
		u.SweatRateLph,
		u.Units,
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("create user %s: %w", u.Email, ErrUserExists)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by email.
func (d *DB) GetUser(email string) (*models.User, error) {
	row := d.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateUser overwrites the profile fields of an existing user.
func (d *DB) UpdateUser(u *models.User) error {
	result, err := d.db.Exec(`
		UPDATE users
		SET name = ?, password_hash = ?, mass_kg = ?, hydration_goal_l = ?, sweat_rate_lph = ?, units = ?
		WHERE email = ?
	`, u.Name, u.PasswordHash, nullFloat(u.MassKg), u.HydrationGoalL, u.SweatRateLph, u.Units, u.Email)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update user %s: %w", u.Email, ErrNotFound)
	}
	return nil
}

// ListUsers returns all users ordered by email.
func (d *DB) ListUsers() ([]*models.User, error) {
	rows, err := d.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	var u models.User
	var key, createdAt string
	var name, hash sql.NullString
	var mass sql.NullFloat64

	if err := s.Scan(&u.Email, &key, &name, &hash, &mass, &u.HydrationGoalL, &u.SweatRateLph, &u.Units, &createdAt); err != nil {
		return nil, err
	}

	u.PrivateKey, _ = uuid.Parse(key)
	u.Name = name.String
	u.PasswordHash = hash.String
	if mass.Valid {
		u.MassKg = &mass.Float64
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
