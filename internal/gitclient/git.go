// Package gitclient has a pure Go git client backed by go-git.
package gitclient

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
)

// ErrUnsupported is returned for raw git invocations, which go-git cannot run.
var ErrUnsupported = errors.New("raw git commands are not supported by the gogit backend")

// GoGitClient implements contract.GitClient without a git executable.
// Rename following is not available, so the follow flag is ignored.
type GoGitClient struct{}

var _ contract.GitClient = &GoGitClient{} // Compile-time check

// NewGoGitClient creates a new go-git backed client.
func NewGoGitClient() *GoGitClient {
	return &GoGitClient{}
}

// New returns the client for the configured backend.
func New(backend schema.GitBackend) contract.GitClient {
	if backend == schema.GoGitGitBackend {
		return NewGoGitClient()
	}
	return contract.NewLocalGitClient()
}

// Run implements the GitClient interface.
func (c *GoGitClient) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	return nil, fmt.Errorf("%w: git %s", ErrUnsupported, strings.Join(args, " "))
}

// GetRepoRoot implements the GitClient interface.
func (c *GoGitClient) GetRepoRoot(_ context.Context, contextPath string) (string, error) {
	repo, err := git.PlainOpenWithOptions(contextPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("cannot open repository at %q: %w", contextPath, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("repository at %q has no worktree: %w", contextPath, err)
	}
	return wt.Filesystem.Root(), nil
}

// GetRepoHash implements the GitClient interface.
func (c *GoGitClient) GetRepoHash(_ context.Context, repoPath string) (string, error) {
	_, head, err := openHead(repoPath)
	if err != nil {
		return "", err
	}
	return head.String(), nil
}

// IsDirty implements the GitClient interface.
// Untracked files are ignored since they never enter a snapshot.
func (c *GoGitClient) IsDirty(_ context.Context, repoPath string) (bool, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return false, fmt.Errorf("cannot open repository at %q: %w", repoPath, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("repository at %q has no worktree: %w", repoPath, err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("cannot read status of %q: %w", repoPath, err)
	}
	for _, fs := range status {
		if fs.Worktree == git.Untracked {
			continue
		}
		if fs.Staging != git.Unmodified || fs.Worktree != git.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

// ListTrackedFiles implements the GitClient interface.
func (c *GoGitClient) ListTrackedFiles(ctx context.Context, repoPath string) ([]string, error) {
	repo, head, err := openHead(repoPath)
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(head)
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	files := []string{}
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		files = append(files, f.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// GetFileCommitIDs implements the GitClient interface.
func (c *GoGitClient) GetFileCommitIDs(ctx context.Context, repoPath string, path string, _ bool) ([]string, error) {
	repo, head, err := openHead(repoPath)
	if err != nil {
		return nil, err
	}
	iter, err := repo.Log(&git.LogOptions{
		From:     head,
		Order:    git.LogOrderCommitterTime,
		FileName: &path,
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	ids := []string{}
	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ids = append(ids, commit.Hash.String())
		return nil
	})
	return ids, err
}

// GetCommits implements the GitClient interface.
func (c *GoGitClient) GetCommits(ctx context.Context, repoPath string) ([]schema.Commit, error) {
	repo, head, err := openHead(repoPath)
	if err != nil {
		return nil, err
	}
	iter, err := repo.Log(&git.LogOptions{
		From:  head,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var commits []schema.Commit
	err = iter.ForEach(func(gc *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats, err := gc.Stats()
		if err != nil {
			return fmt.Errorf("cannot diff commit %s: %w", gc.Hash, err)
		}
		commit := schema.Commit{
			Hash:        gc.Hash.String(),
			AuthorName:  gc.Author.Name,
			CommittedAt: gc.Committer.When.Format(schema.DateLayout),
			Message:     strings.TrimSpace(gc.Message),
		}
		for _, s := range stats {
			commit.Insertions += s.Addition
			commit.Deletions += s.Deletion
		}
		commits = append(commits, commit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// oldest first
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	return commits, nil
}

func openHead(repoPath string) (*git.Repository, plumbing.Hash, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, plumbing.ZeroHash, fmt.Errorf("cannot open repository at %q: %w", repoPath, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return nil, plumbing.ZeroHash, fmt.Errorf("cannot resolve HEAD in %q: %w", repoPath, err)
	}
	return repo, ref.Hash(), nil
}
