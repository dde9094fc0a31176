// ABOUTME: Drink schedule: splits the during-workout target into evenly spaced sips.
// ABOUTME: Sip times land on 5-minute marks within the session.
package engine

import "math"

// Sip is one scheduled drink during a session.
type Sip struct {
	AtMin   int     `json:"atMin"`
	VolumeL float64 `json:"volumeL"`
}

// SipInterval returns the target spacing in minutes for a session length.
func SipInterval(durationMin int) int {
	switch {
	case durationMin <= 40:
		return 10
	case durationMin <= 70:
		return 15
	default:
		return 20
	}
}

// BuildDrinkSchedule spreads duringL over the session. Returns nil when there is
// nothing to drink or no time to drink it.
func BuildDrinkSchedule(durationMin int, duringL float64) []Sip {
	if durationMin <= 0 || !(duringL > 0) || math.IsInf(duringL, 0) {
		return nil
	}

	duration := float64(durationMin)
	slots := int(math.Max(1, math.Round(duration/float64(SipInterval(durationMin)))))
	spacing := duration / float64(slots)
	perSlot := Round2(duringL / float64(slots))

	sips := make([]Sip, 0, slots)
	for i := 1; i <= slots; i++ {
		raw := math.Round(spacing * float64(i))
		at := math.Round(raw/5) * 5
		at = math.Min(duration, math.Max(5, at))
		sips = append(sips, Sip{AtMin: int(at), VolumeL: perSlot})
	}
	return sips
}
