// ABOUTME: CLI command for logging a urine color reading.
// ABOUTME: Levels run from 1 (clear) to 10 (dark) and seed later plans.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/hydration/internal/daily"
	"github.com/harperreed/hydration/internal/engine"
	"github.com/spf13/cobra"
)

var (
	urineAt   string
	urineDate string
)

var urineCmd = &cobra.Command{
	Use:     "urine <level>",
	Aliases: []string{"u"},
	Short:   "Log a urine color reading (1-10)",
	Long: `Log a urine color reading on a 1 (clear) to 10 (dark) scale.

The latest reading of the day replaces the "how hydrated do you feel" guess
when planning a workout.

  1-2  Very Hydrated     6-7  Monitor
  3-4  Hydrated          8-9  Dehydrated
  5    Normal            10   Severely Dehydrated

Examples:
  hydration urine 3
  hydration urine 6 --at 14:30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := currentUser()
		if err != nil {
			return err
		}
		raw, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid level %q: %w", args[0], err)
		}
		at, err := daily.ParseRecordedAt(urineAt, urineDate, svc.Now())
		if err != nil {
			return err
		}

		rec, err := svc.LogUrine(commandContext(cmd), email, urineDate, raw, at)
		if err != nil {
			return err
		}
		level := daily.NormalizeLevel(raw)
		meta := engine.UrineLevelMeta(level)
		color.Green("✓ Logged urine level %d", level)
		fmt.Printf("  %s %s %s\n", rec.Date, meta.Status, faint.Sprintf("(%s)", meta.Description))
		return nil
	},
}

func init() {
	urineCmd.Flags().StringVar(&urineAt, "at", "", "time of the reading (HH:MM or RFC 3339)")
	urineCmd.Flags().StringVar(&urineDate, "date", "", "date YYYY-MM-DD (default: today)")
	rootCmd.AddCommand(urineCmd)
}
