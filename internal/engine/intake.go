// ABOUTME: Intake tracking helpers: plan need, recorded-intake status, daily goal.
// ABOUTME: Operate on stored log entries; pure.
package engine

import (
	"fmt"
	"math"

	"github.com/harperreed/hydration/internal/models"
)

// IntakeState says whether a logged session has a usable intake comparison.
type IntakeState string

const (
	IntakeUnanswered  IntakeState = "unanswered"
	IntakeNoPlanValue IntakeState = "no_plan_value"
	IntakeRecorded    IntakeState = "recorded"
)

// IntakeStatus compares what was drunk with what the plan asked for.
// Ratio is clamped to [0, 1]; Hue runs from 0 (red) to 120 (green).
type IntakeStatus struct {
	State   IntakeState `json:"state"`
	Ratio   float64     `json:"ratio"`
	Percent int         `json:"percent"`
	Hue     int         `json:"hue"`
	Label   string      `json:"label"`
}

// PlanNeed is the liters a plan asks the user to drink.
func PlanNeed(plan models.HydrationPlan) float64 {
	return plan.TotalTargetL
}

// StatusForLog classifies a log entry's recorded intake against its plan.
func StatusForLog(l *models.LogEntry) IntakeStatus {
	if l == nil || l.ActualIntakeL == nil || math.IsNaN(*l.ActualIntakeL) {
		return IntakeStatus{State: IntakeUnanswered, Label: "Unanswered"}
	}
	need := PlanNeed(l.Plan)
	if need <= 0 {
		return IntakeStatus{State: IntakeNoPlanValue, Label: "No plan value"}
	}

	actual := *l.ActualIntakeL
	ratio := clamp(actual/need, 0, 1)
	pct := int(math.Round(actual / need * 100))
	return IntakeStatus{
		State:   IntakeRecorded,
		Ratio:   ratio,
		Percent: pct,
		Hue:     int(math.Round(120 * ratio)),
		Label:   fmt.Sprintf("%d%% of plan", pct),
	}
}

// Goal is a day's drinking target: the profile's base goal plus the needs of
// sessions planned that day.
type Goal struct {
	GoalL      float64 `json:"goalL"`
	BaseGoalL  float64 `json:"baseGoalL"`
	SweatBonus float64 `json:"sweatBonusL"`
}

// DailyGoal adds up the plan needs of logs whose local date is date.
func DailyGoal(baseGoalL float64, logs []*models.LogEntry, date string) Goal {
	if math.IsNaN(baseGoalL) || math.IsInf(baseGoalL, 0) {
		baseGoalL = 0
	}
	var bonus float64
	for _, l := range logs {
		if l == nil || l.TS == 0 || l.Date() != date {
			continue
		}
		bonus += PlanNeed(l.Plan)
	}
	return Goal{
		GoalL:      math.Max(0, Round2(baseGoalL+bonus)),
		BaseGoalL:  baseGoalL,
		SweatBonus: Round2(bonus),
	}
}
