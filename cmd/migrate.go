package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/killallgit/pulsegrow-api/internal/database"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage database migrations for the PulseGrow API.

This command provides subcommands to apply, rollback, and check the status
of the versioned SQL migrations embedded in the binary.

Available subcommands:
  up      - Apply all pending migrations
  down    - Rollback the last migration
  status  - Show current migration status`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Long: `Apply all pending database migrations.

This command will apply all migrations that have not yet been applied
to the database, bringing the schema up to date.`,
	RunE: runMigrateUp,
}

// migrateDownCmd rolls back the last migration
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback the last migration",
	Long: `Rollback the last applied migration.

This command will undo the most recently applied migration,
reverting the database schema to the previous state.`,
	RunE: runMigrateDown,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Display the current status of database migrations.

This command shows the applied schema version and whether the last
migration left the database dirty.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateUpCmd.Flags().Int("steps", 0, "number of migrations to apply (0 = all)")
	migrateDownCmd.Flags().Int("steps", 1, "number of migrations to rollback")
	migrateDownCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	migrateCmd.PersistentFlags().String("db", "", "database path (overrides config)")
}

// openMigrator opens the configured database for migrations
func openMigrator(cmd *cobra.Command) (*database.Migrator, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Database.Path
	}

	db, err := database.Initialize(path, false)
	if err != nil {
		return nil, err
	}
	mg, err := database.NewMigrator(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return mg, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	steps, _ := cmd.Flags().GetInt("steps")

	mg, err := openMigrator(cmd)
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := mg.Up(steps); err != nil {
		return err
	}
	return printStatus(cmd, mg)
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	steps, _ := cmd.Flags().GetInt("steps")
	yes, _ := cmd.Flags().GetBool("yes")

	if !yes {
		fmt.Fprintf(cmd.OutOrStdout(), "WARNING: This will rollback %d migration(s). Continue? (y/N): ", steps)
		var response string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(cmd.OutOrStdout(), "Migration rollback cancelled")
			return nil
		}
	}

	mg, err := openMigrator(cmd)
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := mg.Down(steps); err != nil {
		return err
	}
	return printStatus(cmd, mg)
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	mg, err := openMigrator(cmd)
	if err != nil {
		return err
	}
	defer mg.Close()

	return printStatus(cmd, mg)
}

func printStatus(cmd *cobra.Command, mg *database.Migrator) error {
	status, err := mg.Status()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !status.Applied {
		fmt.Fprintln(out, "Current version: none (no migrations applied)")
		return nil
	}
	fmt.Fprintf(out, "Current version: %d\n", status.Version)
	if status.Dirty {
		fmt.Fprintln(out, "WARNING: database is dirty, the last migration failed part way")
	}
	return nil
}
