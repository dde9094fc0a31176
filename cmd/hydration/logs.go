// ABOUTME: CLI commands for planned workout logs.
// ABOUTME: Lists plans with their intake status and records what was drunk.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/hydration/internal/engine"
	"github.com/harperreed/hydration/internal/models"
	"github.com/spf13/cobra"
)

var logsLimit int

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"l"},
	Short:   "Planned workouts and recorded intake",
	Long: `List planned workouts and record how much you actually drank.

Examples:
  hydration logs list
  hydration logs list -n 5
  hydration logs intake 1773480600000 0.8`,
}

var logsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent plans",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := currentUser()
		if err != nil {
			return err
		}
		logs, err := svc.ListLogs(commandContext(cmd), email, logsLimit)
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			fmt.Println("No plans found.")
			return nil
		}
		for _, l := range logs {
			printLogLine(l)
		}
		return nil
	},
}

var logsIntakeCmd = &cobra.Command{
	Use:   "intake <ts> <liters>",
	Short: "Record the liters drunk for a plan",
	Long: `Record how much you actually drank for a planned workout.

Intake can be recorded once per plan.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := currentUser()
		if err != nil {
			return err
		}
		ts, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ts %q: %w", args[0], err)
		}
		liters, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid volume %q: %w", args[1], err)
		}

		entry, err := svc.RecordIntake(commandContext(cmd), email, ts, liters)
		if err != nil {
			return err
		}
		color.Green("✓ Recorded %.2f L", liters)
		printLogLine(entry)
		return nil
	},
}

func printLogLine(l *models.LogEntry) {
	status := engine.StatusForLog(l)
	var label string
	switch {
	case status.State != engine.IntakeRecorded:
		label = faint.Sprint(status.Label)
	case status.Ratio >= 0.9:
		label = color.GreenString(status.Label)
	case status.Ratio >= 0.6:
		label = color.YellowString(status.Label)
	default:
		label = color.RedString(status.Label)
	}

	workout := l.Input.WorkoutType
	if workout == "" {
		workout = "workout"
	}
	fmt.Printf("%s %s %s RPE %d, %d min  target %.2f L  %s\n",
		faint.Sprint(l.TS),
		faint.Sprint(l.Time().Format("2006-01-02 15:04")),
		padRight(truncate(workout, 12), 12),
		l.Input.RPE,
		l.Input.DurationMin,
		l.Plan.TotalTargetL,
		label)
}

func init() {
	logsListCmd.Flags().IntVarP(&logsLimit, "limit", "n", 20, "maximum number of plans")

	logsCmd.AddCommand(logsListCmd)
	logsCmd.AddCommand(logsIntakeCmd)
	rootCmd.AddCommand(logsCmd)
}
