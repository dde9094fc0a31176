// ABOUTME: Tests for SessionInput, User and Weather builders.
// ABOUTME: Validates optional fields and weather application.
package models

import "testing"

func TestNewSessionInputBuilders(t *testing.T) {
	in := NewSessionInput("run", 7, 60, 3).WithWeather(30, 60, 5).WithUrineColor(4).WithMass(70)

	if in.RPE != 7 || in.DurationMin != 60 || in.PreScore != 3 {
		t.Errorf("unexpected required fields: %+v", in)
	}
	if in.TempC == nil || *in.TempC != 30 {
		t.Error("expected TempC 30")
	}
	if in.UrineColor == nil || *in.UrineColor != 4 {
		t.Error("expected UrineColor 4")
	}
	if in.MassKg == nil || *in.MassKg != 70 {
		t.Error("expected MassKg 70")
	}
}

func TestWeatherApplyToSessionKeepsFormValues(t *testing.T) {
	w := &Weather{TempC: Float(25), HumidityPct: Float(55), UVIndex: Float(7)}
	in := &SessionInput{TempC: Float(18)}

	w.ApplyToSession(in)

	if *in.TempC != 18 {
		t.Errorf("TempC = %v, want form value 18", *in.TempC)
	}
	if in.HumidityPct == nil || *in.HumidityPct != 55 {
		t.Error("expected humidity from weather")
	}
	if in.UVIndex == nil || *in.UVIndex != 7 {
		t.Error("expected UV from weather")
	}

	var nilWeather *Weather
	nilWeather.ApplyToSession(in)
}

func TestNewUserDefaults(t *testing.T) {
	u := NewUser("a@example.com").WithName("A").WithGoal(2.5)

	if u.PrivateKey.String() == "" {
		t.Error("expected private key")
	}
	if u.SweatRateLph != DefaultSweatRateLph {
		t.Errorf("SweatRateLph = %v", u.SweatRateLph)
	}
	if u.Units != UnitsMetric {
		t.Errorf("Units = %q", u.Units)
	}
	if u.HydrationGoalL != 2.5 {
		t.Errorf("HydrationGoalL = %v", u.HydrationGoalL)
	}
	if u.MassKg != nil {
		t.Error("expected nil mass")
	}
}
