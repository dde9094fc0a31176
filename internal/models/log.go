// ABOUTME: LogEntry model for a planned session and its recorded intake.
// ABOUTME: TS (epoch milliseconds) is the entry's identity within one user.
package models

import "time"

// LogEntry is one planned session. ActualIntakeL stays nil until the user records it.
type LogEntry struct {
	TS            int64         `json:"ts" yaml:"ts"`
	Input         SessionInput  `json:"input" yaml:"input"`
	Plan          HydrationPlan `json:"plan" yaml:"plan"`
	ActualIntakeL *float64      `json:"actualIntakeL" yaml:"actual_intake_l"`
	Weather       *Weather      `json:"weather,omitempty" yaml:"weather,omitempty"`
}

// NewLogEntry creates a LogEntry stamped at t.
func NewLogEntry(t time.Time, input SessionInput, plan HydrationPlan) *LogEntry {
	return &LogEntry{
		TS:    t.UnixMilli(),
		Input: input,
		Plan:  plan,
	}
}

// WithWeather attaches a weather snapshot.
func (l *LogEntry) WithWeather(w *Weather) *LogEntry {
	l.Weather = w
	return l
}

// Time returns the entry timestamp as a time.Time in the local zone.
func (l *LogEntry) Time() time.Time {
	return time.UnixMilli(l.TS)
}

// Date returns the local calendar date of the entry as YYYY-MM-DD.
func (l *LogEntry) Date() string {
	return l.Time().Format(DateLayout)
}

// Clone returns a deep copy of the entry, or nil.
func (l *LogEntry) Clone() *LogEntry {
	if l == nil {
		return nil
	}
	c := *l
	c.Input = l.Input.Clone()
	c.Plan.PctBodyMassLoss = cloneFloat(l.Plan.PctBodyMassLoss)
	c.ActualIntakeL = cloneFloat(l.ActualIntakeL)
	c.Weather = l.Weather.Clone()
	return &c
}
