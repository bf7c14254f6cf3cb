package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/internal/history"
	"github.com/huangsam/mediascore/internal/outwriter"
	"github.com/huangsam/mediascore/internal/stores"
	"github.com/huangsam/mediascore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads the minimal configuration needed for history operations.
// The document store is never opened. When openStore is false no store is
// opened at all, so migrations and clearing can run on any database state.
func historySetup(openStore bool) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	maintenanceLogger()

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	if !openStore {
		return nil
	}
	if err := stores.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// historyCmd focused on build history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by rating commands. This skips document filter
// validation and never touches the document store.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the history of rating builds and exports",
	Long: `Manage the build history recorded by the rating command.

When a history backend is configured, every rating build stores:
- Build metadata (tree, period, configuration, duration)
- The value of every rating tree node per outlet
- The value of every named score per outlet

This enables comparing ratings over time and exporting them to BI tools.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show build history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all build history
  migrate - Run database schema migrations

Examples:
  # Check history status
  MEDIASCORE_HISTORY_BACKEND=sqlite mediascore history status

  # Export for analysis in pandas/DuckDB
  mediascore history export --history-backend sqlite --output-file builds`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display build history statistics and connection details",
	Long: `Show detailed information about the recorded build history.

Displays:
- Backend type and connection status
- Total number of builds stored
- Last and oldest build timestamps
- Database table sizes

Examples:
  # Check history status
  mediascore history status --history-backend sqlite`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return historySetup(true)
	},
	Run: func(_ *cobra.Command, _ []string) {
		status, err := stores.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		outwriter.WriteHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports the build history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the build history to Parquet for BI tools and analytics",
	Long: `Export all recorded builds to Parquet files for use with analytics tools.

Writes three datasets next to --output-file:
- <output-file>.builds.parquet        - metadata about each build
- <output-file>.rating_values.parquet - rating tree values per outlet
- <output-file>.named_scores.parquet  - named score values per outlet

Requires: --output-file parameter

Examples:
  # Export all data
  mediascore history export --history-backend sqlite --output-file mediascore

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('mediascore.builds.parquet') LIMIT 10"`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return historySetup(true)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.Export(stores.Manager.GetHistoryStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export build history", err)
		}
	},
}

// historyClearCmd clears the build history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded build history",
	Long: `Delete all stored builds with their rating and named score values.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

Examples:
  # Export before clearing
  mediascore history export --history-backend sqlite --output-file backup
  mediascore history clear --history-backend sqlite`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return historySetup(false)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.Clear(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear build history", err)
		}
		fmt.Println("Build history cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run history schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the build history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  mediascore history migrate --history-backend sqlite

  # Rollback to initial state
  mediascore history migrate --history-backend sqlite --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return historySetup(false)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		targetVersion, _ := cmd.Flags().GetInt("target-version")
		if err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
