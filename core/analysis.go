package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/qlinetech/qgit/core/classify"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/internal/outwriter"
	"github.com/qlinetech/qgit/schema"
)

// runAnalysis collects (or loads) the snapshot, builds the report and records the run.
func runAnalysis(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*schema.Report, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}
	ctx = contextWithCacheManager(ctx, mgr)

	startTime := time.Now()
	snapshot, err := cachedSnapshot(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	report := BuildReport(snapshot, cfg)

	ctx = beginAnalysis(ctx, cfg, startTime, snapshot)
	recordAnalysis(ctx, cfg, snapshot, report)
	return report, nil
}

// beginAnalysis opens a tracked run when an analysis store is configured.
func beginAnalysis(ctx context.Context, cfg *contract.Config, startTime time.Time, snapshot *schema.RepoSnapshot) context.Context {
	mgr := cacheManagerFromContext(ctx)
	if mgr == nil {
		return ctx
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return ctx
	}

	configParams := map[string]any{
		"repo_path":      cfg.RepoPath,
		"filter":         cfg.PathFilter,
		"excludes":       strings.Join(cfg.Excludes, ","),
		"workers":        cfg.Workers,
		"follow":         cfg.Follow,
		"git_backend":    string(cfg.GitBackend),
		"enry":           cfg.UseEnry,
		"nested_markers": cfg.NestedMarkers,
	}
	id, err := store.BeginAnalysis(startTime, snapshot.Name, snapshot.HeadHash, configParams)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return ctx
	}
	if id <= 0 {
		return ctx
	}
	return withAnalysisID(ctx, id)
}

// recordAnalysis stores per-file and per-author rows and closes the tracked run.
// Tracking failures are logged and never fail the analysis.
func recordAnalysis(ctx context.Context, cfg *contract.Config, snapshot *schema.RepoSnapshot, report *schema.Report) {
	id, ok := getAnalysisID(ctx)
	if !ok {
		return
	}
	store := cacheManagerFromContext(ctx).GetAnalysisStore()

	resolver := languageResolver(cfg)
	for _, p := range snapshot.TrackedPaths {
		f, ok := snapshot.Files[p]
		if !ok {
			continue
		}
		record := schema.FileMetricRecord{
			FilePath:    f.Path,
			Language:    classify.Language(f.Path, resolver),
			LineCount:   int32(f.LineCount),
			CommitCount: int32(f.CommitIDs.Len()),
		}
		if err := store.RecordFileMetric(id, record); err != nil {
			logTrackingError("RecordFileMetric", f.Path, err)
		}
	}

	for name, rec := range report.Contributors {
		record := schema.ContributorStatRecord{
			Author:       name,
			CommitCount:  int32(len(rec.Commits)),
			LinesAdded:   int64(rec.LinesAdded),
			LinesRemoved: int64(rec.LinesRemoved),
		}
		if n := len(rec.Commits); n > 0 {
			record.FirstCommit = rec.Commits[0].Date
			record.LastCommit = rec.Commits[n-1].Date
		}
		if err := store.RecordContributor(id, record); err != nil {
			logTrackingError("RecordContributor", name, err)
		}
	}

	if err := store.EndAnalysis(id, time.Now(), report.Info); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}

// logTrackingError logs database tracking errors to stderr without disrupting analysis.
func logTrackingError(operation, target string, err error) {
	contract.LogWarn(fmt.Sprintf("Analysis tracking failed for %s on %s", operation, target), err)
}
