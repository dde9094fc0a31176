// ABOUTME: Root Cobra command for hydration CLI.
// ABOUTME: Opens config, storage and the optional mirror via PersistentPre/PostRunE.
package main

import (
	"errors"
	"fmt"

	"github.com/harperreed/hydration/internal/charm"
	"github.com/harperreed/hydration/internal/config"
	"github.com/harperreed/hydration/internal/hydration"
	"github.com/harperreed/hydration/internal/metrics"
	"github.com/harperreed/hydration/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	repo     storage.Repository
	mirror   *charm.Store
	svc      *hydration.Service
	userFlag string

	promRegistry   *prometheus.Registry
	metricsManager *metrics.Manager
)

// skipStorage marks commands that manage their own storage or need none.
const skipStorage = "skip-storage"

var noStorage = map[string]string{skipStorage: "true"}

func needsStorage(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "completion":
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipStorage] == "true" {
			return false
		}
	}
	return true
}

var rootCmd = &cobra.Command{
	Use:   "hydration",
	Short: "Personal hydration planner",
	Long: `Hydration plans how much to drink around a workout and keeps a daily
record of what you drank, your caffeine and alcohol, and urine color readings.

HOW A PLAN IS MADE:

  Sweat rate comes from effort (RPE 0-10), scaled by temperature, humidity
  and UV. Fluids you drank before, how hydrated you feel and your latest
  urine color reduce the target; alcohol and caffeine raise it. The result
  is split into liters to drink during and after the session.

QUICK START:

  $ hydration user add ada@example.com --default   # Create your profile
  $ hydration user set --mass 68 --goal 2.5         # Body mass and daily goal
  $ hydration urine 3                               # Log a urine color reading
  $ hydration water add 0.5                         # Log a glass of water
  $ hydration daily set --caffeine-cups 2           # Log today's coffee
  $ hydration plan --rpe 7 --duration 60 --temp 28  # Plan a workout

HISTORY:

  $ hydration logs list                  # Recent planned workouts
  $ hydration logs intake <ts> 0.8       # Record what you actually drank
  $ hydration daily show --days 7        # Last week of daily records

SERVERS:

  $ hydration serve                      # JSON API on :3000 (+ /metrics)
  $ hydration mcp                        # MCP server for AI assistants

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/hydration/hydration.db.
  Set "backend": "charm" in ~/.config/hydration/config.json to use Charm KV,
  or "mirror": true to copy every write to Charm Cloud.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsStorage(cmd) {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ConfigureLogging(); err != nil {
			return err
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		promRegistry = metrics.SetupPrometheus()
		metricsManager = metrics.NewManager(metrics.Namespace, metrics.Subsystem, promRegistry)

		opts := []hydration.Option{hydration.WithMetrics(metricsManager)}
		mirror, err = cfg.OpenMirror()
		if err != nil {
			return fmt.Errorf("failed to open charm mirror: %w", err)
		}
		if mirror != nil {
			opts = append(opts, hydration.WithMirror(mirror))
		}

		svc = hydration.NewService(repo, opts...)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeAll()
	},
}

// closeAll waits for mirror writes and closes storage.
func closeAll() error {
	var errs []error
	if svc != nil {
		svc.Close()
		svc = nil
	}
	if mirror != nil {
		errs = append(errs, mirror.Close())
		mirror = nil
	}
	if repo != nil {
		errs = append(errs, repo.Close())
		repo = nil
	}
	return errors.Join(errs...)
}

// currentUser returns the --user flag or the configured default user.
func currentUser() (string, error) {
	if userFlag != "" {
		return hydration.NormalizeEmail(userFlag), nil
	}
	if cfg != nil && cfg.DefaultUser != "" {
		return hydration.NormalizeEmail(cfg.DefaultUser), nil
	}
	return "", fmt.Errorf("no user selected: pass --user or run 'hydration user add <email> --default'")
}

// Execute runs the root command, closing storage even when a command fails.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeAll(); err == nil {
		err = cerr
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "user email (default: config default_user)")
}
