// ABOUTME: Shared terminal formatting for hydration CLI output.
// ABOUTME: Prints plans, schedules and daily records with fatih/color.
package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/hydration/internal/daily"
	"github.com/harperreed/hydration/internal/engine"
	"github.com/harperreed/hydration/internal/models"
)

var faint = color.New(color.Faint)

func printPlan(plan models.HydrationPlan, in models.SessionInput) {
	fmt.Printf("  %s %.2f L/h\n", padRight("Sweat rate", 14), plan.SweatRate)
	fmt.Printf("  %s %.2f L\n", padRight("Sweat loss", 14), plan.SweatLoss)
	fmt.Printf("  %s %.2f L\n", padRight("Drink during", 14), plan.DrinkDuring)
	fmt.Printf("  %s %.2f L\n", padRight("Drink after", 14), plan.DrinkPost)
	fmt.Printf("  %s %.2f L\n", padRight("Total target", 14), plan.TotalTargetL)
	fmt.Printf("  %s %d mg/L %s\n", padRight("Sodium", 14), plan.SodiumMgPerL,
		faint.Sprintf("(%.0f-%.0f)", plan.Sodium.Low, plan.Sodium.High))
	fmt.Printf("  %s %s\n", padRight("Status", 14), statusText(engine.StatusBadge(plan.PctBodyMassLoss)))
	fmt.Printf("  %s %s\n", padRight("Adjustments", 14), faint.Sprintf(
		"start %+.2f, alcohol %.2f, caffeine %.2f, prior %.2f",
		plan.Adjustments.BlendedStart, plan.Adjustments.Alcohol,
		plan.Adjustments.Caffeine, plan.Adjustments.FluidPrior))

	sips := engine.BuildDrinkSchedule(in.DurationMin, plan.DrinkDuring)
	if len(sips) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Drink schedule:")
	for _, sip := range sips {
		fmt.Printf("  %s %.2f L\n", padRight(fmt.Sprintf("%d min", sip.AtMin), 8), sip.VolumeL)
	}
}

func statusText(s engine.Status) string {
	switch s.Level {
	case engine.LevelOK:
		return color.GreenString(s.Text)
	case engine.LevelMonitor:
		return color.YellowString(s.Text)
	case engine.LevelHigh:
		return color.RedString(s.Text)
	default:
		return faint.Sprint(s.Text)
	}
}

func printDaily(rec *models.DailyRecord) {
	fmt.Println(color.New(color.Bold).Sprint(rec.Date))

	if v, ok := rec.Metrics[models.MetricAlcohol]; ok {
		fmt.Printf("  %s %v drinks\n", padRight("Alcohol", 12), v)
	}
	ctx := daily.ContextFor(rec)
	if ctx.CaffeineMg > 0 {
		fmt.Printf("  %s %.0f mg\n", padRight("Caffeine", 12), ctx.CaffeineMg)
	}
	if v, ok := rec.Metrics[models.MetricFluidL]; ok {
		fmt.Printf("  %s %v L\n", padRight("Fluids", 12), v)
	}
	for _, key := range slices.Sorted(maps.Keys(rec.Metrics)) {
		switch key {
		case models.MetricAlcohol, models.MetricCaffeine, models.MetricFluidL:
			continue
		}
		fmt.Printf("  %s %v\n", padRight(key, 12), rec.Metrics[key])
	}

	if rec.Hydration != nil && len(rec.Hydration.Entries) > 0 {
		fmt.Printf("  %s %.2f L %s\n", padRight("Water", 12), rec.Hydration.TotalL,
			faint.Sprintf("(%d entries)", len(rec.Hydration.Entries)))
	}
	if latest := daily.LatestUrine(rec); latest != nil {
		meta := engine.UrineLevelMeta(latest.Level)
		fmt.Printf("  %s %d %s %s\n", padRight("Urine", 12), latest.Level, meta.Status,
			faint.Sprintf("(%s, %s)", meta.Description, latest.RecordedAt.Local().Format("15:04")))
	}
	if rec.Rating != nil {
		fmt.Printf("  %s %g\n", padRight("Rating", 12), *rec.Rating)
	}
	if rec.Note != nil && *rec.Note != "" {
		fmt.Printf("  %s %s\n", padRight("Note", 12), truncate(*rec.Note, 60))
	}
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
