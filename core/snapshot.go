package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
)

// collectSnapshot gathers tracked paths, per-file metrics and the commit history at head.
func collectSnapshot(ctx context.Context, cfg *contract.Config, client contract.GitClient, head string) (*schema.RepoSnapshot, error) {
	tracked, err := client.ListTrackedFiles(ctx, cfg.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked files: %w", err)
	}

	paths := selectPaths(cfg, tracked)
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	files, err := collectFileMetrics(ctx, cfg, client, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	commits, err := client.GetCommits(ctx, cfg.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit history: %w", err)
	}

	return &schema.RepoSnapshot{
		Name:         cfg.RepoName,
		HeadHash:     head,
		TrackedPaths: paths,
		Files:        files,
		Commits:      commits,
	}, nil
}

// selectPaths drops invalid paths with a warning, then applies the path filter and excludes.
func selectPaths(cfg *contract.Config, tracked []string) []string {
	paths := make([]string, 0, len(tracked))
	for _, p := range tracked {
		if err := contract.ValidateTrackedPath(p); err != nil {
			contract.LogWarn("Skipping tracked path", err)
			continue
		}
		if cfg.PathFilter != "" && !strings.HasPrefix(p, cfg.PathFilter) {
			continue
		}
		if contract.ShouldIgnore(p, cfg.Excludes) {
			continue
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// fileOutcome is what a worker reports for one path.
type fileOutcome struct {
	metric  schema.FileMetric
	skipped bool
	err     error
}

// collectFileMetrics reads line counts and commit ids on a pool of cfg.Workers goroutines.
// Unreadable files are omitted with a warning; git failures abort the collection.
func collectFileMetrics(ctx context.Context, cfg *contract.Config, client contract.GitClient, paths []string) (map[string]schema.FileMetric, error) {
	pathCh := make(chan string, len(paths))
	outCh := make(chan fileOutcome, len(paths))
	var wg sync.WaitGroup

	for range max(cfg.Workers, 1) {
		wg.Go(func() {
			for p := range pathCh {
				if ctx.Err() != nil {
					continue // drain
				}
				outCh <- readFileMetric(ctx, cfg, client, p)
			}
		})
	}

	for _, p := range paths {
		pathCh <- p
	}
	close(pathCh)

	wg.Wait()
	close(outCh)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files := make(map[string]schema.FileMetric, len(paths))
	var firstErr error
	for out := range outCh {
		switch {
		case out.err != nil:
			if firstErr == nil {
				firstErr = out.err
			}
		case !out.skipped:
			files[out.metric.Path] = out.metric
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return files, nil
}

// readFileMetric counts lines for a single tracked file and collects the commits that touched it.
func readFileMetric(ctx context.Context, cfg *contract.Config, client contract.GitClient, p string) fileOutcome {
	data, err := os.ReadFile(filepath.Join(cfg.RepoPath, filepath.FromSlash(p)))
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Omitting unreadable file %s", p), err)
		return fileOutcome{skipped: true}
	}

	ids, err := client.GetFileCommitIDs(ctx, cfg.RepoPath, p, cfg.Follow)
	if err != nil {
		return fileOutcome{err: fmt.Errorf("failed to read history for %s: %w", p, err)}
	}

	return fileOutcome{metric: schema.FileMetric{
		Path:      p,
		LineCount: contract.CountLines(data),
		CommitIDs: schema.NewCommitSet(ids...),
	}}
}
