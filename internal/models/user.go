// ABOUTME: User profile model that owns logs and daily records.
// ABOUTME: PrivateKey is the storage owner id; Email is the lookup key.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit systems for display.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

// DefaultSweatRateLph is the baseline sweat rate assumed for a new profile.
const DefaultSweatRateLph = 1.0

// User is a hydration profile. PasswordHash is the client-supplied SHA-256 hex digest.
type User struct {
	Email          string    `json:"email" yaml:"email"`
	PrivateKey     uuid.UUID `json:"privateKey" yaml:"private_key"`
	Name           string    `json:"name,omitempty" yaml:"name,omitempty"`
	PasswordHash   string    `json:"passwordHash,omitempty" yaml:"-"`
	MassKg         *float64  `json:"massKg" yaml:"mass_kg,omitempty"`
	HydrationGoalL float64   `json:"hydrationGoalL" yaml:"hydration_goal_l"`
	SweatRateLph   float64   `json:"sweatRateLph" yaml:"sweat_rate_lph"`
	Units          string    `json:"units" yaml:"units"`
	CreatedAt      time.Time `json:"createdAt" yaml:"created_at"`
}

// NewUser creates a User with a generated private key and default profile values.
func NewUser(email string) *User {
	return &User{
		Email:        email,
		PrivateKey:   uuid.New(),
		SweatRateLph: DefaultSweatRateLph,
		Units:        UnitsMetric,
		CreatedAt:    time.Now(),
	}
}

// WithName sets the display name.
func (u *User) WithName(name string) *User {
	u.Name = name
	return u
}

// WithPasswordHash sets the password hash.
func (u *User) WithPasswordHash(hash string) *User {
	u.PasswordHash = hash
	return u
}

// WithMass sets body mass in kilograms.
func (u *User) WithMass(kg float64) *User {
	u.MassKg = &kg
	return u
}

// WithGoal sets the base daily hydration goal in liters.
func (u *User) WithGoal(liters float64) *User {
	u.HydrationGoalL = liters
	return u
}
