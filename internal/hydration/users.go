// ABOUTME: User registration, login and profile updates.
// ABOUTME: Password hashes are opaque client-side digests compared in constant time.
package hydration

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"math"

	"github.com/harperreed/hydration/internal/models"
	"github.com/harperreed/hydration/internal/storage"
)

// ProfileUpdate lists the profile fields to change. Nil fields are left alone.
type ProfileUpdate struct {
	Name           *string
	MassKg         *float64
	HydrationGoalL *float64
	SweatRateLph   *float64
	Units          *string
}

// Register creates a user. Returns storage.ErrUserExists if the email is taken.
func (s *Service) Register(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email, err := checkEmail(email)
	if err != nil {
		return nil, err
	}

	u := models.NewUser(email).WithName(name).WithPasswordHash(passwordHash)
	u.CreatedAt = s.now()
	if err := s.repo.CreateUser(u); err != nil {
		return nil, err
	}

	mirrored := *u
	s.mirrorAsync("user", func(m Mirror) error { return m.MirrorUser(&mirrored) })
	return u, nil
}

// Login checks a password hash against the stored one.
func (s *Service) Login(ctx context.Context, email, passwordHash string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := s.repo.GetUser(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" || subtle.ConstantTimeCompare([]byte(u.PasswordHash), []byte(passwordHash)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// User returns the profile for email, creating a default one on first use.
func (s *Service) User(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email, err := checkEmail(email)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetUser(email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	u = models.NewUser(email)
	u.CreatedAt = s.now()
	if err := s.repo.CreateUser(u); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return s.repo.GetUser(email)
		}
		return nil, err
	}
	mirrored := *u
	s.mirrorAsync("user", func(m Mirror) error { return m.MirrorUser(&mirrored) })
	return u, nil
}

// UpdateProfile applies upd to the user's profile.
func (s *Service) UpdateProfile(ctx context.Context, email string, upd ProfileUpdate) (*models.User, error) {
	u, err := s.User(ctx, email)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.MassKg != nil {
		if *upd.MassKg <= 0 || math.IsNaN(*upd.MassKg) || math.IsInf(*upd.MassKg, 0) {
			u.MassKg = nil
		} else {
			u.MassKg = models.Float(*upd.MassKg)
		}
	}
	if upd.HydrationGoalL != nil {
		if *upd.HydrationGoalL < 0 || math.IsNaN(*upd.HydrationGoalL) {
			return nil, fmt.Errorf("hydration goal must be >= 0, got %v", *upd.HydrationGoalL)
		}
		u.HydrationGoalL = *upd.HydrationGoalL
	}
	if upd.SweatRateLph != nil {
		if *upd.SweatRateLph <= 0 || math.IsNaN(*upd.SweatRateLph) {
			return nil, fmt.Errorf("sweat rate must be > 0, got %v", *upd.SweatRateLph)
		}
		u.SweatRateLph = *upd.SweatRateLph
	}
	if upd.Units != nil {
		switch *upd.Units {
		case models.UnitsMetric, models.UnitsImperial:
			u.Units = *upd.Units
		default:
			return nil, fmt.Errorf("unknown units %q (use %s or %s)", *upd.Units, models.UnitsMetric, models.UnitsImperial)
		}
	}

	if err := s.repo.UpdateUser(u); err != nil {
		return nil, err
	}
	mirrored := *u
	s.mirrorAsync("user", func(m Mirror) error { return m.MirrorUser(&mirrored) })
	return u, nil
}
