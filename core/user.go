package core

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/qlinetech/qgit/core/rollup"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
)

// GetUserResults folds the history of each repository and extracts one author's record.
// An author with no commits gets an empty record rather than an error.
func GetUserResults(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.UserReport, error) {
	if cfg.Author == "" {
		return nil, errors.New("an author name is required")
	}
	repos := cfg.UserRepos
	if len(repos) == 0 {
		repos = []string{cfg.RepoPath}
	}

	merged := make(map[string]*schema.ContributorRecord)
	result := &schema.UserReport{
		Author:  cfg.Author,
		PerRepo: make(map[string]*schema.ContributorRecord),
	}
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		root, err := client.GetRepoRoot(ctx, repo)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve repository %s: %w", repo, err)
		}
		// two arguments inside one repository count its history once
		if slices.Contains(result.Repos, root) {
			continue
		}
		commits, err := client.GetCommits(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("failed to read commit history of %s: %w", root, err)
		}

		records := rollup.Contributors(commits)
		result.Repos = append(result.Repos, root)
		if rec, ok := records[cfg.Author]; ok {
			result.PerRepo[root] = rec
		}
		rollup.Merge(merged, records)
	}

	result.Record = merged[cfg.Author]
	if result.Record == nil {
		result.Record = &schema.ContributorRecord{Name: cfg.Author}
	}
	return result, nil
}
