package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
)

// Table names for analysis tracking.
const (
	analysisRunsTable     = "qgit_analysis_runs"
	fileMetricsTable      = "qgit_file_metrics"
	contributorStatsTable = "qgit_contributor_stats"
)

// analysisTables lists the analysis tables in creation order.
var analysisTables = []string{analysisRunsTable, fileMetricsTable, contributorStatsTable}

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, contract.GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

// createAnalysisTables applies the embedded up migrations for the backend.
// Each file holds a single CREATE TABLE IF NOT EXISTS statement.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	dir := migrationsDir(backend)
	files, err := fs.Glob(migrationsFS, dir+"/*.up.sql")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found for backend %s", backend)
	}
	slices.Sort(files)

	for _, file := range files {
		stmt, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(stmt)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", file, err)
		}
	}
	return nil
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(startTime time.Time, repoName, headHash string, configParams map[string]any) (int64, error) {
	if as.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (repo_name, head_hash, start_time, config_params) VALUES (%s)`,
		quoteTableName(analysisRunsTable, as.backend), placeholders(as.backend, 4))
	args := []any{repoName, headHash, formatTime(startTime, as.backend), string(configJSON)}

	var analysisID int64
	if as.backend == schema.PostgreSQLBackend {
		err = as.db.QueryRow(query+" RETURNING analysis_id", args...).Scan(&analysisID)
	} else {
		var result sql.Result
		result, err = as.db.Exec(query, args...)
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return analysisID, nil
}

// EndAnalysis updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, info schema.RepoInfo) error {
	if as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	row := as.db.QueryRow(fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`,
		quotedTableName, placeholder(as.backend, 1)), analysisID)
	startTime, err := as.scanTime(row)
	if err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	p := func(i int) string { return placeholder(as.backend, i) }
	query := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_files_analyzed = %s, total_lines = %s, total_commits = %s WHERE analysis_id = %s`,
		quotedTableName, p(1), p(2), p(3), p(4), p(5), p(6))
	_, err = as.db.Exec(query,
		formatTime(endTime, as.backend), durationMs, info.TotalFiles, info.TotalLines, info.TotalCommits, analysisID)
	if err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}
	return nil
}

// RecordFileMetric stores the line count and commit count for a file.
func (as *AnalysisStoreImpl) RecordFileMetric(analysisID int64, record schema.FileMetricRecord) error {
	if as.db == nil {
		return nil
	}
	query := fmt.Sprintf(`INSERT INTO %s (analysis_id, file_path, language, line_count, commit_count) VALUES (%s)`,
		quoteTableName(fileMetricsTable, as.backend), placeholders(as.backend, 5))
	if _, err := as.db.Exec(query, analysisID, record.FilePath, record.Language, record.LineCount, record.CommitCount); err != nil {
		return fmt.Errorf("failed to insert file metric for %s: %w", record.FilePath, err)
	}
	return nil
}

// RecordContributor stores the rollup for one author.
func (as *AnalysisStoreImpl) RecordContributor(analysisID int64, record schema.ContributorStatRecord) error {
	if as.db == nil {
		return nil
	}
	query := fmt.Sprintf(`INSERT INTO %s (analysis_id, author, commit_count, lines_added, lines_removed, first_commit, last_commit) VALUES (%s)`,
		quoteTableName(contributorStatsTable, as.backend), placeholders(as.backend, 7))
	_, err := as.db.Exec(query, analysisID, record.Author, record.CommitCount,
		record.LinesAdded, record.LinesRemoved, record.FirstCommit, record.LastCommit)
	if err != nil {
		return fmt.Errorf("failed to insert contributor stats for %s: %w", record.Author, err)
	}
	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}
	if as.db == nil {
		return status, nil
	}

	quotedRuns := quoteTableName(analysisRunsTable, as.backend)
	if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var err error
		row := as.db.QueryRow(fmt.Sprintf("SELECT analysis_id FROM %s ORDER BY analysis_id DESC LIMIT 1", quotedRuns))
		if err = row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}
		row = as.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", quotedRuns))
		if status.LastRunTime, err = as.scanTime(row); err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		row = as.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", quotedRuns))
		if status.OldestRunTime, err = as.scanTime(row); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		row = as.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_files_analyzed), 0) FROM %s", quotedRuns))
		if err = row.Scan(&status.TotalFilesAnalyzed); err != nil {
			return status, fmt.Errorf("failed to get total files analyzed: %w", err)
		}
	}

	for _, table := range analysisTables {
		var count int64
		row := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	if as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, repo_name, head_hash, start_time, end_time, run_duration_ms,
		total_files_analyzed, total_lines, total_commits, config_params FROM %s ORDER BY analysis_id`,
		quoteTableName(analysisRunsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var record schema.AnalysisRunRecord
		var start, end any
		if err := rows.Scan(&record.AnalysisID, &record.RepoName, &record.HeadHash, &start, &end,
			&record.RunDurationMs, &record.TotalFilesAnalyzed, &record.TotalLines, &record.TotalCommits,
			&record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		if record.StartTime, err = parseTime(start); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if end != nil {
			endTime, err := parseTime(end)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &endTime
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}
	return results, nil
}

// GetAllFileMetrics retrieves every stored file row.
func (as *AnalysisStoreImpl) GetAllFileMetrics() ([]schema.FileMetricRecord, error) {
	if as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, file_path, language, line_count, commit_count FROM %s ORDER BY analysis_id, file_path`,
		quoteTableName(fileMetricsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query file metrics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FileMetricRecord
	for rows.Next() {
		var r schema.FileMetricRecord
		if err := rows.Scan(&r.AnalysisID, &r.FilePath, &r.Language, &r.LineCount, &r.CommitCount); err != nil {
			return nil, fmt.Errorf("failed to scan file metric: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file metrics: %w", err)
	}
	return results, nil
}

// GetAllContributorStats retrieves every stored contributor row.
func (as *AnalysisStoreImpl) GetAllContributorStats() ([]schema.ContributorStatRecord, error) {
	if as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, author, commit_count, lines_added, lines_removed, first_commit, last_commit FROM %s ORDER BY analysis_id, author`,
		quoteTableName(contributorStatsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributor stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ContributorStatRecord
	for rows.Next() {
		var r schema.ContributorStatRecord
		if err := rows.Scan(&r.AnalysisID, &r.Author, &r.CommitCount, &r.LinesAdded, &r.LinesRemoved, &r.FirstCommit, &r.LastCommit); err != nil {
			return nil, fmt.Errorf("failed to scan contributor stats: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contributor stats: %w", err)
	}
	return results, nil
}

// scanTime reads a single time column regardless of how the backend stores it.
func (as *AnalysisStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	var v any
	if err := row.Scan(&v); err != nil {
		return time.Time{}, err
	}
	return parseTime(v)
}

// parseTime converts a scanned time column. SQLite stores RFC3339 text.
func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", v)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.Format(time.RFC3339Nano)
	}
	return t
}
