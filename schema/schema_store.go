package schema

import "time"

// AnalysisRunRecord represents a row from the qgit_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID         int64
	RepoName           string
	HeadHash           string
	StartTime          time.Time
	EndTime            *time.Time
	RunDurationMs      *int32
	TotalFilesAnalyzed int32
	TotalLines         int64
	TotalCommits       int32
	ConfigParams       *string
}

// FileMetricRecord represents a row from the qgit_file_metrics table.
type FileMetricRecord struct {
	AnalysisID  int64
	FilePath    string
	Language    string
	LineCount   int32
	CommitCount int32
}

// ContributorStatRecord represents a row from the qgit_contributor_stats table.
type ContributorStatRecord struct {
	AnalysisID   int64
	Author       string
	CommitCount  int32
	LinesAdded   int64
	LinesRemoved int64
	FirstCommit  string
	LastCommit   string
}
