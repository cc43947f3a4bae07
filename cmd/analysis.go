package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/internal/iocache"
	"github.com/qlinetech/qgit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// analysisSetup opens only the analysis store; no repository is resolved.
func analysisSetup(_ *cobra.Command, _ []string) error {
	target, err := readStoreTarget("analysis", schema.NoneBackend)
	if err != nil {
		return err
	}
	if err := iocache.InitCaching(schema.NoneBackend, "", target.backend, target.connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}
	cfg.AnalysisBackend = target.backend
	cfg.AnalysisDBConnect = target.connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// analysisMigrateSetup validates the analysis backend without opening it,
// so migrations can run against an empty database.
func analysisMigrateSetup(_ *cobra.Command, _ []string) error {
	target, err := readStoreTarget("analysis", schema.NoneBackend)
	if err != nil {
		return err
	}
	cfg.AnalysisBackend = target.backend
	cfg.AnalysisDBConnect = target.connStr
	if target.backend == schema.SQLiteBackend {
		cfg.AnalysisDBConnect = target.sqliteFile(contract.GetAnalysisDBFilePath())
	}
	return nil
}

// analysisCmd focused on analysis history management.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage historical analysis tracking and exports",
	Long: `Manage the history recorded when --analysis-backend is set.

Every tracked run stores:
- Run metadata (start and end time, HEAD, configuration, totals)
- Per-file line count, commit count and language
- Per-author commits, lines added and removed, first and last commit dates

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Examples:
  qgit analysis status --analysis-backend sqlite
  qgit analysis export --analysis-backend sqlite --output-file history`,
}

// analysisClearCmd clears the analysis data.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical analysis data",
	Long: `Delete every stored run, file metric and contributor row.

This cannot be undone; export first if the history matters.

Examples:
  qgit analysis export --output-file backup
  qgit analysis clear`,
	PreRunE: analysisSetup,
	Run: func(_ *cobra.Command, _ []string) {
		target := storeTarget{backend: cfg.AnalysisBackend, connStr: cfg.AnalysisDBConnect}
		iocache.CloseCaching()
		if err := iocache.ClearAnalysis(target.backend, target.sqliteFile(contract.GetAnalysisDBFilePath()), target.connStr); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// analysisStatusCmd shows analysis status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display analysis tracking statistics",
	Long: `Show the backend, number of runs, newest and oldest run, tracked file
and contributor row counts and table sizes.

Examples:
  qgit analysis status`,
	PreRunE: analysisSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetAnalysisStore()
		if store == nil {
			contract.LogFatal("Failed to get analysis status", errors.New("analysis store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(os.Stdout, status)
	},
}

// analysisExportCmd exports analysis data to Parquet files.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export historical data to Parquet",
	Long: `Export the stored history to three Parquet files next to --output-file:

  <file>.analysis_runs.parquet
  <file>.file_metrics.parquet
  <file>.contributor_stats.parquet

Examples:
  qgit analysis export --output-file history
  duckdb -c "SELECT * FROM read_parquet('history.analysis_runs.parquet')"`,
	PreRunE: analysisSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(os.Stdout, iocache.Manager.GetAnalysisStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd runs database migrations for the analysis store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run analysis schema migrations",
	Long: `Move the analysis store schema to a given version.

By default the latest version is applied. Use --target-version to pin a
version, or 0 to roll everything back.

Examples:
  qgit analysis migrate
  qgit analysis migrate --target-version 2
  qgit analysis migrate --target-version 0`,
	PreRunE: analysisMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
