// Package outwriter renders qgit reports as console tables, Markdown, JSON, CSV and Parquet.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/qlinetech/qgit/internal/contract"
	"golang.org/x/term"
)

// now is the clock used for report signatures.
var now = time.Now

// headerOut receives the analysis header. It is stderr so piped output stays clean.
var headerOut io.Writer = os.Stderr

// LogAnalysisHeader prints a concise, 2-line header before an analysis runs.
func LogAnalysisHeader(cfg *contract.Config) {
	repoName := cfg.RepoName
	if repoName == "" || repoName == "." {
		repoName = "current"
	}
	scope := "(all files)"
	if cfg.PathFilter != "" {
		scope = cfg.PathFilter
	}

	if cfg.UseEmojis {
		_, _ = fmt.Fprintf(headerOut, "🔎 Repo: %s (Git: %s)\n", repoName, cfg.GitBackend)
		_, _ = fmt.Fprintf(headerOut, "📂 Scope: %s\n", scope)
		return
	}
	_, _ = fmt.Fprintf(headerOut, "Repo: %s (Git: %s)\n", repoName, cfg.GitBackend)
	_, _ = fmt.Fprintf(headerOut, "Scope: %s\n", scope)
}

// GetMaxTablePathWidth calculates the maximum width for paths in table output
// based on terminal width and the number of fixed columns next to the path.
func GetMaxTablePathWidth(cfg *contract.Config, fixedColumns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Numeric columns with borders and padding, plus the table frame
	baseWidth := fixedColumns*12 + 10

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}

// formatCount renders an integer with thousands separators.
func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

// formatDate renders a commit date, or "-" when there is none.
func formatDate(d string) string {
	if d == "" {
		return "-"
	}
	return d
}

// limitRows trims rows to the configured result limit. Zero keeps everything.
func limitRows[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// printCompletion reports how long the analysis took.
func printCompletion(w io.Writer, cfg *contract.Config, duration time.Duration) {
	_, _ = fmt.Fprintf(w, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend)
}
