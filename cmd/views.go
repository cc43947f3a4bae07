package cmd

import (
	"github.com/qlinetech/qgit/core"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/spf13/cobra"
)

// runView adapts an executor to a cobra Run func, exiting on failure.
func runView(exec core.ExecutorFunc, failure string) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := exec(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal(failure, err)
		}
	}
}

// reportCmd writes the full Markdown report set.
var reportCmd = &cobra.Command{
	Use:   "report [repo-path]",
	Short: "Write the full set of Markdown reports for a repository.",
	Long: `Analyze a repository and write one Markdown file per section plus a combined report.

Files are written to <report-dir>/<repo-name>/:
  repo_info.md, folder_structure.md, timeline.md,
  contributors.md, languages.md, frameworks.md, full_report.md

Examples:
  # Generate reports for the current repository
  qgit report

  # German labels, no signature, custom directory
  qgit report ../service --lang de --signature=false --report-dir out`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteReport, "Cannot write reports"),
}

// treeCmd prints the aggregated folder tree.
var treeCmd = &cobra.Command{
	Use:   "tree [repo-path]",
	Short: "Show the folder tree with line and commit totals.",
	Long: `Build a tree of tracked files and roll line and commit counts up every folder.

A directory's line total is the sum of everything beneath it. Its commit total
counts distinct commits, so a commit touching two files in a folder counts once.

Examples:
  # Tree for a subdirectory only
  qgit tree ./internal

  # Markdown nested list
  qgit tree --output markdown`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteTree, "Cannot build folder tree"),
}

// languagesCmd prints the language breakdown.
var languagesCmd = &cobra.Command{
	Use:   "languages [repo-path]",
	Short: "Show line totals and shares per language.",
	Long: `Classify every tracked file by extension and sum its lines per language.

Use --enry to fall back to content-based detection for unknown extensions.

Examples:
  qgit languages
  qgit languages --output csv --output-file languages.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteLanguages, "Cannot classify languages"),
}

// frameworksCmd prints detected frameworks.
var frameworksCmd = &cobra.Command{
	Use:   "frameworks [repo-path]",
	Short: "Show frameworks detected from well-known marker files.",
	Long: `Detect frameworks by looking for marker files such as package.json, go.mod or Cargo.toml.

Only markers at the repository root are considered unless --nested-markers is set.

Examples:
  qgit frameworks
  qgit frameworks --nested-markers`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteFrameworks, "Cannot detect frameworks"),
}

// contributorsCmd prints the per-author rollup.
var contributorsCmd = &cobra.Command{
	Use:   "contributors [repo-path]",
	Short: "Rank authors by commits and line changes.",
	Long: `Roll the commit history up per author name.

Authors are ranked by commit count, then lines added. Markdown output also
lists every author's commits.

Examples:
  qgit contributors --limit 10
  qgit contributors --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteContributors, "Cannot roll up contributors"),
}

// timelineCmd prints the commit history.
var timelineCmd = &cobra.Command{
	Use:   "timeline [repo-path]",
	Short: "Show the commit history oldest first.",
	Long: `List every commit with its date, author, truncated message and line changes.

Examples:
  qgit timeline
  qgit timeline --output markdown --output-file timeline.md`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteTimeline, "Cannot build timeline"),
}
