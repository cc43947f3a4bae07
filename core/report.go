package core

import (
	"github.com/qlinetech/qgit/core/classify"
	"github.com/qlinetech/qgit/core/rollup"
	"github.com/qlinetech/qgit/core/tree"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
)

// BuildReport runs the four core passes over a snapshot.
// The tree, language, framework and contributor passes are independent of each other.
func BuildReport(snapshot *schema.RepoSnapshot, cfg *contract.Config) *schema.Report {
	root := tree.Build(snapshot.Files)
	totalLines, _ := tree.Aggregate(root)

	contributors := rollup.Contributors(snapshot.Commits)
	first, last := rollup.DateRange(snapshot.Commits)

	return &schema.Report{
		Info: schema.RepoInfo{
			Name:         snapshot.Name,
			HeadHash:     snapshot.HeadHash,
			TotalFiles:   len(snapshot.Files),
			TotalLines:   totalLines,
			TotalCommits: len(snapshot.Commits),
			Contributors: len(contributors),
			CreatedAt:    first,
			UpdatedAt:    last,
		},
		Tree:         root,
		Languages:    classify.Languages(snapshot.Files, languageResolver(cfg)),
		Frameworks:   classify.Frameworks(snapshot.TrackedPaths, cfg.NestedMarkers),
		Contributors: contributors,
		Commits:      snapshot.Commits,
	}
}

// languageResolver returns the fallback used for extensions outside the fixed table.
func languageResolver(cfg *contract.Config) classify.Resolver {
	if cfg.UseEnry {
		return classify.EnryResolver
	}
	return nil
}
