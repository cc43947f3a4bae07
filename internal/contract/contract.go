// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/qlinetech/qgit/schema"
)

// GitClient defines the repository data source used by the analysis.
// This allows the core analysis logic to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns its output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// IsDirty reports whether tracked files differ from HEAD in the index or working tree.
	IsDirty(ctx context.Context, repoPath string) (bool, error)

	// ListTrackedFiles returns every path tracked at HEAD, slash separated and relative to the root.
	ListTrackedFiles(ctx context.Context, repoPath string) ([]string, error)

	// GetFileCommitIDs returns the ids of commits that touched path, following renames when follow is set.
	GetFileCommitIDs(ctx context.Context, repoPath string, path string, follow bool) ([]string, error)

	// GetCommits returns the full history reachable from HEAD, oldest first.
	GetCommits(ctx context.Context, repoPath string) ([]schema.Commit, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetSnapshotStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking analysis runs and storing results.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, repoName, headHash string, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, info schema.RepoInfo) error

	// RecordFileMetric stores the line count and commit count for a file
	RecordFileMetric(analysisID int64, record schema.FileMetricRecord) error

	// RecordContributor stores the rollup for one author
	RecordContributor(analysisID int64, record schema.ContributorStatRecord) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns returns every stored run
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllFileMetrics returns every stored file row
	GetAllFileMetrics() ([]schema.FileMetricRecord, error)

	// GetAllContributorStats returns every stored contributor row
	GetAllContributorStats() ([]schema.ContributorStatRecord, error)

	// Close closes the underlying connection
	Close() error
}
