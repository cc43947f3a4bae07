// Package core has the orchestration for repository analysis and report output.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/internal/gitclient"
	"github.com/qlinetech/qgit/internal/outwriter"
	"github.com/qlinetech/qgit/schema"
)

// ErrNoFiles is returned when no tracked file survives validation, filtering and reading.
var ErrNoFiles = errors.New("no files found")

// ExecutorFunc defines the function signature for executing different report views.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// printFunc renders one view of a report.
type printFunc func(report *schema.Report, cfg *contract.Config, duration time.Duration) error

// ExecuteReport writes the full Markdown report set into the report directory.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeView(ctx, cfg, mgr, outwriter.PrintReportSet)
}

// ExecuteTree prints the aggregated folder structure.
func ExecuteTree(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeView(ctx, cfg, mgr, outwriter.PrintTree)
}

// ExecuteLanguages prints the per-language line breakdown.
func ExecuteLanguages(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeView(ctx, cfg, mgr, outwriter.PrintLanguages)
}

// ExecuteFrameworks prints the detected frameworks and their marker files.
func ExecuteFrameworks(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeView(ctx, cfg, mgr, outwriter.PrintFrameworks)
}

// ExecuteContributors prints the per-author rollup.
func ExecuteContributors(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeView(ctx, cfg, mgr, outwriter.PrintContributors)
}

// ExecuteTimeline prints the commit history oldest first.
func ExecuteTimeline(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeView(ctx, cfg, mgr, outwriter.PrintTimeline)
}

// ExecuteUser prints one author's rollup across the configured repositories.
func ExecuteUser(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	result, err := GetUserResults(ctx, cfg, gitclient.New(cfg.GitBackend))
	if err != nil {
		return err
	}
	return outwriter.PrintUserReport(result, cfg, time.Since(start))
}

func executeView(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, render printFunc) error {
	report, duration, err := GetReportResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return render(report, cfg, duration)
}

// GetReportResults runs the analysis with the configured git backend and returns the report.
func GetReportResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.Report, time.Duration, error) {
	start := time.Now()
	report, err := runAnalysis(ctx, cfg, gitclient.New(cfg.GitBackend), mgr)
	if err != nil {
		return nil, 0, err
	}
	return report, time.Since(start), nil
}
