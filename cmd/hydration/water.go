// ABOUTME: CLI commands for the quick-add water log.
// ABOUTME: Adds drinks to a day's record or clears them.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/hydration/internal/daily"
	"github.com/spf13/cobra"
)

var (
	waterAt   string
	waterDate string
)

var waterCmd = &cobra.Command{
	Use:     "water",
	Aliases: []string{"w"},
	Short:   "Log water you drank",
	Long: `Log water you drank during the day.

Examples:
  hydration water add 0.5
  hydration water add 0.25 --at 07:30
  hydration water add 0.5 --date 2026-03-14 --at 2026-03-14T18:00:00Z
  hydration water reset`,
}

var waterAddCmd = &cobra.Command{
	Use:   "add <liters>",
	Short: "Add a drink to the day's water log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := currentUser()
		if err != nil {
			return err
		}
		liters, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid volume %q: %w", args[0], err)
		}
		at, err := daily.ParseRecordedAt(waterAt, waterDate, svc.Now())
		if err != nil {
			return err
		}

		rec, err := svc.LogWater(commandContext(cmd), email, waterDate, liters, at)
		if err != nil {
			return err
		}
		color.Green("✓ Added %.2f L", liters)
		fmt.Printf("  %s %.2f L today %s\n", rec.Date, rec.Hydration.TotalL,
			faint.Sprintf("(%d entries)", len(rec.Hydration.Entries)))
		return nil
	},
}

var waterResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the day's water log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := currentUser()
		if err != nil {
			return err
		}
		rec, err := svc.ResetWater(commandContext(cmd), email, waterDate)
		if err != nil {
			return err
		}
		color.Green("✓ Cleared water log for %s", rec.Date)
		return nil
	},
}

func init() {
	waterCmd.PersistentFlags().StringVar(&waterDate, "date", "", "date YYYY-MM-DD (default: today)")
	waterAddCmd.Flags().StringVar(&waterAt, "at", "", "time of the drink (HH:MM or RFC 3339)")

	waterCmd.AddCommand(waterAddCmd)
	waterCmd.AddCommand(waterResetCmd)
	rootCmd.AddCommand(waterCmd)
}
