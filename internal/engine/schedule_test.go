// ABOUTME: Tests for the drink schedule helper.
// ABOUTME: Checks interval selection, slot rounding, and degenerate inputs.
package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildDrinkScheduleFortyMinutes(t *testing.T) {
	got := BuildDrinkSchedule(40, 1.0)
	want := []Sip{
		{AtMin: 10, VolumeL: 0.25},
		{AtMin: 20, VolumeL: 0.25},
		{AtMin: 30, VolumeL: 0.25},
		{AtMin: 40, VolumeL: 0.25},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildDrinkSchedule mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDrinkScheduleIntervals(t *testing.T) {
	tests := []struct {
		duration  int
		wantSlots int
		wantLast  int
	}{
		{10, 1, 10},
		{60, 4, 60},
		{70, 5, 70},
		{90, 5, 90},
		{3, 1, 3},
	}

	for _, tt := range tests {
		sips := BuildDrinkSchedule(tt.duration, 1.2)
		if len(sips) != tt.wantSlots {
			t.Errorf("duration %d: slots = %d, want %d", tt.duration, len(sips), tt.wantSlots)
			continue
		}
		if last := sips[len(sips)-1].AtMin; last != tt.wantLast {
			t.Errorf("duration %d: last sip at %d, want %d", tt.duration, last, tt.wantLast)
		}
		for _, s := range sips {
			if s.AtMin > tt.duration {
				t.Errorf("duration %d: sip at %d past end", tt.duration, s.AtMin)
			}
		}
	}
}

func TestBuildDrinkScheduleRoundsToFive(t *testing.T) {
	// 50 min / 15 -> 3 slots spaced 16.67 min: 17, 33, 50 -> 15, 35, 50.
	sips := BuildDrinkSchedule(50, 0.9)
	want := []int{15, 35, 50}
	for i, s := range sips {
		if s.AtMin != want[i] {
			t.Errorf("sip %d at %d, want %d", i, s.AtMin, want[i])
		}
		if s.VolumeL != 0.3 {
			t.Errorf("sip %d volume %v, want 0.3", i, s.VolumeL)
		}
	}
}

func TestBuildDrinkScheduleEmpty(t *testing.T) {
	if got := BuildDrinkSchedule(0, 1); got != nil {
		t.Errorf("expected nil for zero duration, got %v", got)
	}
	if got := BuildDrinkSchedule(60, 0); got != nil {
		t.Errorf("expected nil for zero volume, got %v", got)
	}
	if got := BuildDrinkSchedule(-5, 1); got != nil {
		t.Errorf("expected nil for negative duration, got %v", got)
	}
}
