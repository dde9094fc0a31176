// ABOUTME: CLI commands for the user profile.
// ABOUTME: Creates profiles, shows them, and updates mass, goal and units.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/hydration/internal/hydration"
	"github.com/harperreed/hydration/internal/models"
	"github.com/spf13/cobra"
)

var (
	userName      string
	userPassword  string
	userDefault   bool
	userMass      float64
	userGoal      float64
	userSweatRate float64
	userUnits     string
	userSetName   string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage your profile",
	Long: `Create and update hydration profiles.

Examples:
  hydration user add ada@example.com --name Ada --default
  hydration user show
  hydration user set --mass 68 --goal 2.5 --units metric`,
}

var userAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Create a profile",
	Long: `Create a profile. A --password is only needed to sign in to the
web API served by 'hydration serve'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var hash string
		if userPassword != "" {
			hash = hashPassword(userPassword)
		}
		u, err := svc.Register(commandContext(cmd), args[0], userName, hash)
		if err != nil {
			return err
		}
		color.Green("✓ Created profile %s", u.Email)

		if userDefault {
			cfg.DefaultUser = u.Email
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Println(faint.Sprint("  set as default user"))
		}
		return nil
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := currentUser()
		if err != nil {
			return err
		}
		u, err := svc.User(commandContext(cmd), email)
		if err != nil {
			return err
		}
		printUser(u)
		return nil
	},
}

var userSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile values",
	Long: `Update profile values. Only the flags you pass are changed.
A --mass of 0 clears the stored body mass.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := currentUser()
		if err != nil {
			return err
		}

		var upd hydration.ProfileUpdate
		flags := cmd.Flags()
		if flags.Changed("name") {
			upd.Name = &userSetName
		}
		if flags.Changed("mass") {
			upd.MassKg = &userMass
		}
		if flags.Changed("goal") {
			upd.HydrationGoalL = &userGoal
		}
		if flags.Changed("sweat-rate") {
			upd.SweatRateLph = &userSweatRate
		}
		if flags.Changed("units") {
			upd.Units = &userUnits
		}

		u, err := svc.UpdateProfile(commandContext(cmd), email, upd)
		if err != nil {
			return err
		}
		color.Green("✓ Updated profile")
		printUser(u)
		return nil
	},
}

func printUser(u *models.User) {
	fmt.Println(color.New(color.Bold).Sprint(u.Email))
	if u.Name != "" {
		fmt.Printf("  %s %s\n", padRight("Name", 12), u.Name)
	}
	if u.MassKg != nil {
		fmt.Printf("  %s %.1f kg\n", padRight("Mass", 12), *u.MassKg)
	} else {
		fmt.Printf("  %s %s\n", padRight("Mass", 12), faint.Sprint("not set"))
	}
	fmt.Printf("  %s %.2f L\n", padRight("Daily goal", 12), u.HydrationGoalL)
	fmt.Printf("  %s %.2f L/h\n", padRight("Sweat rate", 12), u.SweatRateLph)
	fmt.Printf("  %s %s\n", padRight("Units", 12), u.Units)
	fmt.Printf("  %s %s\n", padRight("Since", 12), faint.Sprint(u.CreatedAt.Local().Format("2006-01-02")))
}

// hashPassword returns the SHA-256 hex digest the web client sends.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func init() {
	userAddCmd.Flags().StringVar(&userName, "name", "", "display name")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "password for the web API")
	userAddCmd.Flags().BoolVar(&userDefault, "default", false, "make this the default user")

	f := userSetCmd.Flags()
	f.StringVar(&userSetName, "name", "", "display name")
	f.Float64Var(&userMass, "mass", 0, "body mass in kg")
	f.Float64Var(&userGoal, "goal", 0, "base daily hydration goal in liters")
	f.Float64Var(&userSweatRate, "sweat-rate", 0, "baseline sweat rate in L/h")
	f.StringVar(&userUnits, "units", "", "metric or imperial")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userSetCmd)
	rootCmd.AddCommand(userCmd)
}
