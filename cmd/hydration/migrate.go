// ABOUTME: CLI command for copying data between the SQLite and Charm KV backends.
// ABOUTME: Refuses to write into a destination that already holds data unless --force.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/hydration/internal/charm"
	"github.com/harperreed/hydration/internal/config"
	"github.com/harperreed/hydration/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy all users, plans and daily records from one backend to another.

BACKENDS:

  sqlite   Local database at ~/.local/share/hydration/hydration.db
  charm    Charm KV, encrypted and synced to Charm Cloud

IMPORTANT:

  - The destination should be empty; pass --force to write anyway
  - Run with --dry-run first to see what would be copied
  - Switch "backend" in ~/.config/hydration/config.json afterwards

USAGE:

  hydration migrate --from charm --to sqlite --dry-run
  hydration migrate --from sqlite --to charm`,
	Annotations: noStorage,
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("--from and --to must differ")
		}
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		src, err := openBackend(c, migrateFrom)
		if err != nil {
			return fmt.Errorf("open %s: %w", migrateFrom, err)
		}
		defer src.Close()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
			summary, err := countData(src)
			if err != nil {
				return err
			}
			printSummary("Would migrate", summary)
			return nil
		}

		if migrateTo == config.BackendSQLite && !migrateForce {
			nonEmpty, err := storage.IsDirNonEmpty(c.GetDataDir())
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("%s is not empty; pass --force to migrate into it", c.GetDataDir())
			}
		}

		dst, err := openBackend(c, migrateTo)
		if err != nil {
			return fmt.Errorf("open %s: %w", migrateTo, err)
		}
		defer dst.Close()

		if migrateTo == config.BackendCharm && !migrateForce {
			users, err := dst.ListUsers()
			if err != nil {
				return err
			}
			if len(users) > 0 {
				return fmt.Errorf("charm store already has %d users; pass --force to migrate into it", len(users))
			}
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		printSummary("✓ Migrated", summary)
		return nil
	},
}

func openBackend(c *config.Config, backend string) (storage.Repository, error) {
	switch backend {
	case config.BackendSQLite:
		return storage.OpenIn(c.GetDataDir())
	case config.BackendCharm:
		return charm.Open()
	default:
		return nil, fmt.Errorf("unknown backend: %q (use sqlite or charm)", backend)
	}
}

// countData tallies what MigrateData would copy out of r.
func countData(r storage.Repository) (*storage.MigrateSummary, error) {
	summary := &storage.MigrateSummary{}
	users, err := r.ListUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		logs, err := r.ListLogs(u.Email, 0)
		if err != nil {
			return nil, err
		}
		records, err := r.ListDaily(u.Email, 0)
		if err != nil {
			return nil, err
		}
		summary.Users++
		summary.Logs += len(logs)
		summary.Daily += len(records)
	}
	return summary, nil
}

func printSummary(prefix string, s *storage.MigrateSummary) {
	color.Green("%s %s → %s", prefix, migrateFrom, migrateTo)
	fmt.Printf("  Users: %d\n", s.Users)
	fmt.Printf("  Plans: %d\n", s.Logs)
	fmt.Printf("  Daily records: %d\n", s.Daily)
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendCharm, "source backend (sqlite or charm)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendSQLite, "destination backend (sqlite or charm)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate into a destination that already has data")
	rootCmd.AddCommand(migrateCmd)
}
