package gitclient

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	dir    string
	hashes []string
}

// newFixture creates a repository with three commits by two authors.
func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	steps := []struct {
		author string
		files  map[string]string
		msg    string
	}{
		{"Ann", map[string]string{"README.md": "hello\n", "src/a.py": "a\nb\n"}, "initial"},
		{"Bob", map[string]string{"src/a.py": "a\nb\nc\n"}, "extend a"},
		{"Ann", map[string]string{"src/lib/b.py": "x\n"}, "add b"},
	}

	var hashes []string
	for i, step := range steps {
		for name, content := range step.files {
			full := filepath.Join(dir, filepath.FromSlash(name))
			require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
			require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
			_, err := wt.Add(name)
			require.NoError(t, err)
		}
		sig := &object.Signature{Name: step.author, Email: step.author + "@example.com", When: base.Add(time.Duration(i) * 24 * time.Hour)}
		h, err := wt.Commit(step.msg, &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
		hashes = append(hashes, h.String())
	}
	return fixture{dir: dir, hashes: hashes}
}

func TestGoGitClient(t *testing.T) {
	fx := newFixture(t)
	client := NewGoGitClient()
	ctx := context.Background()

	t.Run("repo root from subdirectory", func(t *testing.T) {
		root, err := client.GetRepoRoot(ctx, filepath.Join(fx.dir, "src", "lib"))
		require.NoError(t, err)
		assert.Equal(t, fx.dir, root)
	})

	t.Run("head hash", func(t *testing.T) {
		hash, err := client.GetRepoHash(ctx, fx.dir)
		require.NoError(t, err)
		assert.Equal(t, fx.hashes[2], hash)
	})

	t.Run("tracked files", func(t *testing.T) {
		files, err := client.ListTrackedFiles(ctx, fx.dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"README.md", "src/a.py", "src/lib/b.py"}, files)
	})

	t.Run("file commit ids", func(t *testing.T) {
		ids, err := client.GetFileCommitIDs(ctx, fx.dir, "src/a.py", true)
		require.NoError(t, err)
		assert.ElementsMatch(t, fx.hashes[:2], ids)
	})

	t.Run("commits oldest first", func(t *testing.T) {
		commits, err := client.GetCommits(ctx, fx.dir)
		require.NoError(t, err)
		require.Len(t, commits, 3)

		assert.Equal(t, schema.Commit{
			Hash:        fx.hashes[0],
			AuthorName:  "Ann",
			CommittedAt: "2024-01-01 10:00:00",
			Message:     "initial",
			Insertions:  3,
			Deletions:   0,
		}, commits[0])
		assert.Equal(t, "Bob", commits[1].AuthorName)
		assert.Equal(t, 1, commits[1].Insertions)
		assert.Equal(t, "add b", commits[2].Message)
	})

	t.Run("dirty worktree", func(t *testing.T) {
		dirty, err := client.IsDirty(ctx, fx.dir)
		require.NoError(t, err)
		assert.False(t, dirty)

		require.NoError(t, os.WriteFile(filepath.Join(fx.dir, "notes.txt"), []byte("x\n"), 0o644))
		dirty, err = client.IsDirty(ctx, fx.dir)
		require.NoError(t, err)
		assert.False(t, dirty, "untracked files do not count")

		readme := filepath.Join(fx.dir, "README.md")
		require.NoError(t, os.WriteFile(readme, []byte("changed\n"), 0o644))
		t.Cleanup(func() { _ = os.WriteFile(readme, []byte("hello\n"), 0o644) })
		dirty, err = client.IsDirty(ctx, fx.dir)
		require.NoError(t, err)
		assert.True(t, dirty)
	})

	t.Run("run is unsupported", func(t *testing.T) {
		_, err := client.Run(ctx, fx.dir, "status")
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := client.GetCommits(cancelled, fx.dir)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGoGitClientNotARepo(t *testing.T) {
	client := NewGoGitClient()
	_, err := client.GetRepoHash(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	assert.IsType(t, &GoGitClient{}, New(schema.GoGitGitBackend))
	assert.IsType(t, &contract.LocalGitClient{}, New(schema.ExecGitBackend))
}

func TestBackendsAgreeOnMergeStats(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-c", "user.name=Ann", "-c", "user.email=ann@example.com"}, args...)...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	commitFile := func(name, content, msg string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
		run("add", name)
		run("commit", "-q", "-m", msg)
	}

	run("init", "-q", "-b", "main")
	commitFile("a.txt", "a\n", "initial")
	run("checkout", "-q", "-b", "side")
	commitFile("b.txt", "1\n2\n3\n", "side work")
	run("checkout", "-q", "main")
	commitFile("a.txt", "a\nb\n", "main work")
	run("merge", "-q", "--no-ff", "-m", "merge side", "side")

	ctx := context.Background()
	byHash := func(client contract.GitClient) map[string]schema.Commit {
		commits, err := client.GetCommits(ctx, dir)
		require.NoError(t, err)
		m := make(map[string]schema.Commit, len(commits))
		for _, c := range commits {
			m[c.Hash] = c
		}
		return m
	}
	local := byHash(contract.NewLocalGitClient())
	gogit := byHash(NewGoGitClient())
	require.Len(t, local, 4)
	require.Len(t, gogit, 4)

	for hash, lc := range local {
		gc, ok := gogit[hash]
		require.True(t, ok, hash)
		assert.Equal(t, gc.Insertions, lc.Insertions, lc.Message)
		assert.Equal(t, gc.Deletions, lc.Deletions, lc.Message)
		if lc.Message == "merge side" {
			assert.Equal(t, 3, lc.Insertions)
		}
	}
}
