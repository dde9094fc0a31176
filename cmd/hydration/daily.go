// ABOUTME: CLI commands for the per-day record: alcohol, caffeine, fluids, notes.
// ABOUTME: set merges only the flags given; show prints one or more days.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/hydration/internal/models"
	"github.com/spf13/cobra"
)

var (
	dailyDate         string
	dailyAlcohol      float64
	dailyCaffeineMg   float64
	dailyCaffeineCups float64
	dailyFluid        float64
	dailyNote         string
	dailyTime         string
	dailyRating       float64
	dailyMetrics      []string
	dailyDays         int
)

var dailyCmd = &cobra.Command{
	Use:     "daily",
	Aliases: []string{"d"},
	Short:   "Manage the daily record",
	Long: `Record what affects your hydration today.

Only the values you pass are changed; everything else already recorded for
the day is kept.

Examples:
  hydration daily set --alcohol 2
  hydration daily set --caffeine-cups 2 --fluid 0.5
  hydration daily set --metric sleep_h=7.5 --note "long run tomorrow"
  hydration daily show
  hydration daily show --days 7`,
}

var dailySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update values on a day's record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := currentUser()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("caffeine-mg") && flags.Changed("caffeine-cups") {
			return fmt.Errorf("use either --caffeine-mg or --caffeine-cups, not both")
		}

		date := dailyDate
		if date == "" {
			date = svc.Today()
		}
		incoming := models.NewDailyRecord(date)
		if flags.Changed("alcohol") {
			incoming.WithMetric(models.MetricAlcohol, dailyAlcohol)
		}
		if flags.Changed("caffeine-mg") {
			incoming.WithCaffeine(dailyCaffeineMg, models.CaffeineUnitMg)
		}
		if flags.Changed("caffeine-cups") {
			incoming.WithCaffeine(dailyCaffeineCups, models.CaffeineUnitCups)
		}
		if flags.Changed("fluid") {
			incoming.WithMetric(models.MetricFluidL, dailyFluid)
		}
		for _, kv := range dailyMetrics {
			key, value, err := parseMetric(kv)
			if err != nil {
				return err
			}
			incoming.WithMetric(key, value)
		}
		if flags.Changed("note") {
			incoming.WithNote(dailyNote)
		}
		if flags.Changed("time") {
			incoming.Time = models.String(dailyTime)
		}
		if flags.Changed("rating") {
			incoming.Rating = models.Float(dailyRating)
		}

		rec, err := svc.RecordDaily(commandContext(cmd), email, *incoming)
		if err != nil {
			return err
		}
		color.Green("✓ Updated daily record")
		printDaily(rec)
		return nil
	},
}

var dailyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show daily records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := currentUser()
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)

		if dailyDays <= 1 {
			rec, err := svc.DailyFor(ctx, email, dailyDate)
			if err != nil {
				return err
			}
			printDaily(rec)
			goal, err := svc.Goal(ctx, email, rec.Date)
			if err != nil {
				return err
			}
			if goal.GoalL > 0 {
				fmt.Printf("  %s %.2f L %s\n", padRight("Goal", 12), goal.GoalL,
					faint.Sprintf("(base %.2f + workouts %.2f)", goal.BaseGoalL, goal.SweatBonus))
			}
			return nil
		}

		records, err := svc.ListDaily(ctx, email, dailyDays)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No daily records found.")
			return nil
		}
		for i, rec := range records {
			if i > 0 {
				fmt.Println()
			}
			printDaily(rec)
		}
		return nil
	},
}

// parseMetric splits key=value. Numeric values are stored as numbers.
func parseMetric(s string) (string, any, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("invalid metric %q: expected key=value", s)
	}
	value = strings.TrimSpace(value)
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return key, f, nil
	}
	return key, value, nil
}

func init() {
	dailyCmd.PersistentFlags().StringVar(&dailyDate, "date", "", "date YYYY-MM-DD (default: today)")

	f := dailySetCmd.Flags()
	f.Float64Var(&dailyAlcohol, "alcohol", 0, "alcoholic drinks")
	f.Float64Var(&dailyCaffeineMg, "caffeine-mg", 0, "caffeine in mg")
	f.Float64Var(&dailyCaffeineCups, "caffeine-cups", 0, "caffeine in cups of coffee")
	f.Float64Var(&dailyFluid, "fluid", 0, "other fluids in liters")
	f.StringVar(&dailyNote, "note", "", "free-text note")
	f.StringVar(&dailyTime, "time", "", "time of day label")
	f.Float64Var(&dailyRating, "rating", 0, "how the day felt")
	f.StringArrayVar(&dailyMetrics, "metric", nil, "extra metric key=value (repeatable)")

	dailyShowCmd.Flags().IntVarP(&dailyDays, "days", "n", 1, "number of recent days to show")

	dailyCmd.AddCommand(dailySetCmd)
	dailyCmd.AddCommand(dailyShowCmd)
	rootCmd.AddCommand(dailyCmd)
}
