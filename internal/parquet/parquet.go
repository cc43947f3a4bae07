// Package parquet provides data structures and functions for exporting qgit
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/qlinetech/qgit/schema"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the qgit_analysis_runs database table.
type AnalysisRun struct {
	AnalysisID int64  `parquet:"analysis_id,snappy"`
	RepoName   string `parquet:"repo_name,snappy"`
	HeadHash   string `parquet:"head_hash,snappy"`

	// StartTime is stored as TIMESTAMP with nanosecond precision
	StartTime time.Time  `parquet:"start_time,snappy"`
	EndTime   *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is nil while a run is unfinished
	RunDurationMs      *int32 `parquet:"run_duration_ms,optional,snappy"`
	TotalFilesAnalyzed int32  `parquet:"total_files_analyzed,snappy"`
	TotalLines         int64  `parquet:"total_lines,snappy"`
	TotalCommits       int32  `parquet:"total_commits,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FileMetric maps to the qgit_file_metrics database table.
type FileMetric struct {
	AnalysisID  int64  `parquet:"analysis_id,snappy"`
	FilePath    string `parquet:"file_path,snappy"`
	Language    string `parquet:"language,snappy"`
	LineCount   int32  `parquet:"line_count,snappy"`
	CommitCount int32  `parquet:"commit_count,snappy"`
}

// ContributorStat maps to the qgit_contributor_stats database table.
type ContributorStat struct {
	AnalysisID   int64  `parquet:"analysis_id,snappy"`
	Author       string `parquet:"author,snappy"`
	CommitCount  int32  `parquet:"commit_count,snappy"`
	LinesAdded   int64  `parquet:"lines_added,snappy"`
	LinesRemoved int64  `parquet:"lines_removed,snappy"`
	FirstCommit  string `parquet:"first_commit,snappy"`
	LastCommit   string `parquet:"last_commit,snappy"`
}

// FolderRow is one entry of the folder tree.
type FolderRow struct {
	Path    string `parquet:"path,snappy"`
	Depth   int32  `parquet:"depth,snappy"`
	IsDir   bool   `parquet:"is_dir"`
	Lines   int64  `parquet:"lines,snappy"`
	Commits int32  `parquet:"commits,snappy"`
}

// LanguageRow is one language share.
type LanguageRow struct {
	Language   string  `parquet:"language,snappy"`
	Lines      int64   `parquet:"lines,snappy"`
	Percentage float64 `parquet:"percentage,snappy"`
}

// FrameworkRow is one detected framework.
type FrameworkRow struct {
	Framework string `parquet:"framework,snappy"`
	Marker    string `parquet:"marker,snappy"`
}

// ContributorRow is one contributor summary.
type ContributorRow struct {
	Author       string `parquet:"author,snappy"`
	Commits      int32  `parquet:"commits,snappy"`
	LinesAdded   int64  `parquet:"lines_added,snappy"`
	LinesRemoved int64  `parquet:"lines_removed,snappy"`
	NetLines     int64  `parquet:"net_lines,snappy"`
}

// CommitRow is one timeline entry.
type CommitRow struct {
	Hash        string `parquet:"hash,snappy"`
	Author      string `parquet:"author,snappy"`
	CommittedAt string `parquet:"committed_at,snappy"`
	Message     string `parquet:"message,snappy"`
	Insertions  int64  `parquet:"insertions,snappy"`
	Deletions   int64  `parquet:"deletions,snappy"`
}

// Write encodes rows to w. The schema is derived from the struct tags of T.
func Write[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteFile creates outputPath and writes rows to it.
func WriteFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Write(file, rows)
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return WriteFile(data, outputPath)
}

// WriteFileMetricsParquet writes a slice of FileMetric structs to a Parquet file.
func WriteFileMetricsParquet(data []FileMetric, outputPath string) error {
	return WriteFile(data, outputPath)
}

// WriteContributorStatsParquet writes a slice of ContributorStat structs to a Parquet file.
func WriteContributorStatsParquet(data []ContributorStat, outputPath string) error {
	return WriteFile(data, outputPath)
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to parquet.AnalysisRun.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, r := range records {
		result[i] = AnalysisRun{
			AnalysisID:         r.AnalysisID,
			RepoName:           r.RepoName,
			HeadHash:           r.HeadHash,
			StartTime:          r.StartTime,
			EndTime:            r.EndTime,
			RunDurationMs:      r.RunDurationMs,
			TotalFilesAnalyzed: r.TotalFilesAnalyzed,
			TotalLines:         r.TotalLines,
			TotalCommits:       r.TotalCommits,
			ConfigParams:       r.ConfigParams,
		}
	}
	return result
}

// ConvertFileMetricRecords converts schema.FileMetricRecord to parquet.FileMetric.
func ConvertFileMetricRecords(records []schema.FileMetricRecord) []FileMetric {
	result := make([]FileMetric, len(records))
	for i, r := range records {
		result[i] = FileMetric(r)
	}
	return result
}

// ConvertContributorStatRecords converts schema.ContributorStatRecord to parquet.ContributorStat.
func ConvertContributorStatRecords(records []schema.ContributorStatRecord) []ContributorStat {
	result := make([]ContributorStat, len(records))
	for i, r := range records {
		result[i] = ContributorStat(r)
	}
	return result
}

// ConvertFolderRows converts tree rows.
func ConvertFolderRows(rows []schema.FolderRow) []FolderRow {
	result := make([]FolderRow, len(rows))
	for i, r := range rows {
		result[i] = FolderRow{
			Path:    r.Path,
			Depth:   int32(r.Depth),
			IsDir:   r.IsDir,
			Lines:   int64(r.Lines),
			Commits: int32(r.Commits),
		}
	}
	return result
}

// ConvertLanguageShares converts language shares.
func ConvertLanguageShares(shares []schema.LanguageShare) []LanguageRow {
	result := make([]LanguageRow, len(shares))
	for i, s := range shares {
		result[i] = LanguageRow{Language: s.Language, Lines: int64(s.Lines), Percentage: s.Percentage}
	}
	return result
}

// ConvertFrameworks converts a detection map into rows ordered by framework name.
func ConvertFrameworks(d schema.FrameworkDetection) []FrameworkRow {
	names := d.SortedNames()
	result := make([]FrameworkRow, len(names))
	for i, name := range names {
		result[i] = FrameworkRow{Framework: name, Marker: d[name]}
	}
	return result
}

// ConvertContributorRows converts contributor rows.
func ConvertContributorRows(rows []schema.ContributorRow) []ContributorRow {
	result := make([]ContributorRow, len(rows))
	for i, r := range rows {
		result[i] = ContributorRow{
			Author:       r.Author,
			Commits:      int32(r.Commits),
			LinesAdded:   int64(r.LinesAdded),
			LinesRemoved: int64(r.LinesRemoved),
			NetLines:     int64(r.NetLines),
		}
	}
	return result
}

// ConvertCommits converts timeline commits.
func ConvertCommits(commits []schema.Commit) []CommitRow {
	result := make([]CommitRow, len(commits))
	for i, c := range commits {
		result[i] = CommitRow{
			Hash:        c.Hash,
			Author:      c.AuthorName,
			CommittedAt: c.CommittedAt,
			Message:     c.Message,
			Insertions:  int64(c.Insertions),
			Deletions:   int64(c.Deletions),
		}
	}
	return result
}
