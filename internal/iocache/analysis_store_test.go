package iocache

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/qlinetech/qgit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalysisStore(t *testing.T) *AnalysisStoreImpl {
	t.Helper()
	store, err := NewAnalysisStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "analysis.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*AnalysisStoreImpl)
}

func TestAnalysisStoreLifecycle(t *testing.T) {
	store := newTestAnalysisStore(t)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := store.BeginAnalysis(start, "demo", "abc123", map[string]any{"follow": true})
	require.NoError(t, err)
	assert.Positive(t, id)

	require.NoError(t, store.RecordFileMetric(id, schema.FileMetricRecord{
		FilePath: "main.go", Language: "Go", LineCount: 10, CommitCount: 2,
	}))
	require.NoError(t, store.RecordFileMetric(id, schema.FileMetricRecord{
		FilePath: "README.md", Language: "Markdown", LineCount: 3, CommitCount: 1,
	}))
	require.NoError(t, store.RecordContributor(id, schema.ContributorStatRecord{
		Author: "Ann", CommitCount: 2, LinesAdded: 13, LinesRemoved: 1,
		FirstCommit: "2024-01-01 10:00:00", LastCommit: "2024-01-02 10:00:00",
	}))

	end := start.Add(1500 * time.Millisecond)
	require.NoError(t, store.EndAnalysis(id, end, schema.RepoInfo{TotalFiles: 2, TotalLines: 13, TotalCommits: 2}))

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, id, run.AnalysisID)
	assert.Equal(t, "demo", run.RepoName)
	assert.Equal(t, "abc123", run.HeadHash)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, end.Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.TotalFilesAnalyzed)
	assert.Equal(t, int64(13), run.TotalLines)
	assert.Equal(t, int32(2), run.TotalCommits)
	require.NotNil(t, run.ConfigParams)
	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &params))
	assert.Equal(t, true, params["follow"])

	files, err := store.GetAllFileMetrics()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "README.md", files[0].FilePath) // ordered by path
	assert.Equal(t, "Go", files[1].Language)

	contributors, err := store.GetAllContributorStats()
	require.NoError(t, err)
	require.Len(t, contributors, 1)
	assert.Equal(t, "Ann", contributors[0].Author)
	assert.Equal(t, int64(13), contributors[0].LinesAdded)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, id, status.LastRunID)
	assert.Equal(t, 2, status.TotalFilesAnalyzed)
	assert.Equal(t, map[string]int64{
		analysisRunsTable:     1,
		fileMetricsTable:      2,
		contributorStatsTable: 1,
	}, status.TableSizes)
}

func TestAnalysisStoreUnfinishedRun(t *testing.T) {
	store := newTestAnalysisStore(t)
	_, err := store.BeginAnalysis(time.Now(), "demo", "h", nil)
	require.NoError(t, err)

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
}

func TestAnalysisStoreEndUnknownRun(t *testing.T) {
	store := newTestAnalysisStore(t)
	err := store.EndAnalysis(42, time.Now(), schema.RepoInfo{})
	assert.ErrorContains(t, err, "analysis 42")
}

func TestAnalysisStoreDuplicateFile(t *testing.T) {
	store := newTestAnalysisStore(t)
	id, err := store.BeginAnalysis(time.Now(), "demo", "h", nil)
	require.NoError(t, err)

	rec := schema.FileMetricRecord{FilePath: "a.go", Language: "Go", LineCount: 1, CommitCount: 1}
	require.NoError(t, store.RecordFileMetric(id, rec))
	assert.Error(t, store.RecordFileMetric(id, rec))
}

func TestAnalysisStoreNoneBackend(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)

	id, err := store.BeginAnalysis(time.Now(), "demo", "h", nil)
	require.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, store.EndAnalysis(id, time.Now(), schema.RepoInfo{}))
	assert.NoError(t, store.RecordFileMetric(id, schema.FileMetricRecord{}))
	assert.NoError(t, store.RecordContributor(id, schema.ContributorStatRecord{}))

	runs, err := store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)

	got, err := parseTime(want.Format(time.RFC3339Nano))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = parseTime([]byte(want.Format(time.RFC3339Nano)))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = parseTime(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = parseTime(42)
	assert.Error(t, err)
}
