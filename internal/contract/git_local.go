package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/qlinetech/qgit/schema"
)

// Field and record separators used in the commit log format.
const (
	recordSep = "\x1e"
	fieldSep  = "\x1f"
)

// commitLogFormat emits one record per commit followed by its numstat lines.
const commitLogFormat = "--pretty=format:" + "%x1e%H%x1f%an%x1f%cd%x1f%B%x1f"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRepoHash implements the GitClient interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// IsDirty implements the GitClient interface.
func (c *LocalGitClient) IsDirty(ctx context.Context, repoPath string) (bool, error) {
	out, err := c.Run(ctx, repoPath, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// ListTrackedFiles implements the GitClient interface.
func (c *LocalGitClient) ListTrackedFiles(ctx context.Context, repoPath string) ([]string, error) {
	out, err := c.Run(ctx, repoPath, "-c", "core.quotePath=false", "ls-files")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// GetFileCommitIDs implements the GitClient interface.
func (c *LocalGitClient) GetFileCommitIDs(ctx context.Context, repoPath string, path string, follow bool) ([]string, error) {
	args := []string{"log", "--pretty=format:%H"}
	if follow {
		args = append(args, "--follow")
	}
	args = append(args, "--", path)
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// GetCommits implements the GitClient interface.
func (c *LocalGitClient) GetCommits(ctx context.Context, repoPath string) ([]schema.Commit, error) {
	out, err := c.Run(ctx, repoPath,
		"log",
		"--numstat",
		// merges report their diff against the first parent, as go-git does
		"--diff-merges=first-parent",
		"--date=format:%Y-%m-%d %H:%M:%S",
		commitLogFormat,
	)
	if err != nil {
		return nil, err
	}
	commits, err := ParseCommitLog(out)
	if err != nil {
		return nil, err
	}
	reverseCommits(commits)
	return commits, nil
}

// ParseCommitLog parses output produced with commitLogFormat and --numstat.
// Commits are returned in log order (newest first). Binary numstat entries count as zero.
func ParseCommitLog(out []byte) ([]schema.Commit, error) {
	var commits []schema.Commit
	for _, rec := range strings.Split(string(out), recordSep) {
		if strings.TrimSpace(rec) == "" {
			continue
		}
		parts := strings.SplitN(rec, fieldSep, 5)
		if len(parts) != 5 {
			return nil, fmt.Errorf("malformed commit record: %q", truncate(rec, 80))
		}
		commit := schema.Commit{
			Hash:        strings.TrimSpace(parts[0]),
			AuthorName:  parts[1],
			CommittedAt: parts[2],
			Message:     strings.TrimSpace(parts[3]),
		}
		for _, line := range strings.Split(parts[4], "\n") {
			fields := strings.SplitN(line, "\t", 3)
			if len(fields) != 3 {
				continue
			}
			commit.Insertions += parseNumstat(fields[0])
			commit.Deletions += parseNumstat(fields[1])
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

func parseNumstat(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0 // "-" for binary files
	}
	return n
}

func reverseCommits(commits []schema.Commit) {
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
}

func splitLines(out []byte) []string {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
