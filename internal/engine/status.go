// ABOUTME: Classification helpers for display: body-mass-loss badge and urine levels.
// ABOUTME: Fixed thresholds, no state.
package engine

import "fmt"

// Level is a coarse severity classification.
type Level string

const (
	LevelUnknown Level = "unknown"
	LevelOK      Level = "ok"
	LevelMonitor Level = "monitor"
	LevelHigh    Level = "high"
)

// Status is a classified reading with a display label.
type Status struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Body-mass-loss thresholds in percent.
const (
	MonitorLossPct = 2.0
	HighLossPct    = 3.0
)

// StatusBadge classifies an estimated percent body mass loss.
func StatusBadge(pctLoss *float64) Status {
	if pctLoss == nil {
		return Status{Level: LevelUnknown, Text: "Set body mass for % loss"}
	}
	pct := *pctLoss
	switch {
	case pct < MonitorLossPct:
		return Status{Level: LevelOK, Text: fmt.Sprintf("%g%% est. loss (OK)", pct)}
	case pct < HighLossPct:
		return Status{Level: LevelMonitor, Text: fmt.Sprintf("%g%% est. loss (Monitor)", pct)}
	default:
		return Status{Level: LevelHigh, Text: fmt.Sprintf("%g%% est. loss (High)", pct)}
	}
}

// UrineLevel describes one step of the 1..10 urine color scale.
type UrineLevel struct {
	Value       int    `json:"value"`
	Color       string `json:"color"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

var urineLevels = []UrineLevel{
	{1, "#f7fadc", "Very Hydrated", "Crystal clear"},
	{2, "#f2f5b0", "Very Hydrated", "Pale lemonade"},
	{3, "#ecef96", "Hydrated", "Light straw"},
	{4, "#e6e06a", "Hydrated", "Sunflower"},
	{5, "#ddc34d", "Normal", "Golden"},
	{6, "#d1a83a", "Monitor", "Amber"},
	{7, "#c18a2c", "Monitor", "Copper"},
	{8, "#ab6b23", "Dehydrated", "Tea"},
	{9, "#924c19", "Dehydrated", "Dark tea"},
	{10, "#783512", "Severely Dehydrated", "Brown"},
}

// UrineLevelMeta returns the scale entry for level. Out-of-range levels map to the darkest entry.
func UrineLevelMeta(level int) UrineLevel {
	if level < 1 || level > len(urineLevels) {
		return urineLevels[len(urineLevels)-1]
	}
	return urineLevels[level-1]
}
