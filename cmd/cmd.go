// Package cmd defines the command-line interface for qgit.
package cmd

import (
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cobra.OnInitialize(initConfig)

	// Report views
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(frameworksCmd)
	rootCmd.AddCommand(contributorsCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(userCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)

	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or glob patterns to ignore")
	rootCmd.PersistentFlags().StringP("filter", "f", "", "Restrict analysis to tracked paths under this prefix")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Maximum number of rows to display (0 = all)")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or markdown or json or csv or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for percentage columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("lang", string(schema.LangEN), "Report label language: en or tr or it or fr or es or de")
	rootCmd.PersistentFlags().String("report-dir", contract.DefaultReportDir, "Directory that receives the Markdown report set")
	rootCmd.PersistentFlags().Bool("signature", true, "Append a generated-by signature to Markdown reports")
	rootCmd.PersistentFlags().Bool("follow", true, "Follow renames when counting per-file commits")
	rootCmd.PersistentFlags().String("git-backend", string(schema.ExecGitBackend), "Git backend: exec (git binary) or gogit (pure Go)")
	rootCmd.PersistentFlags().Bool("enry", false, "Fall back to content-based language detection for unknown extensions")
	rootCmd.PersistentFlags().Bool("nested-markers", false, "Detect framework marker files below the repository root")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
