package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/qlinetech/qgit/core/rollup"
	"github.com/qlinetech/qgit/core/tree"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func stubReport() *schema.Report {
	files := map[string]schema.FileMetric{
		"go.mod":       {Path: "go.mod", LineCount: 3, CommitIDs: schema.NewCommitSet("a")},
		"cmd/main.go":  {Path: "cmd/main.go", LineCount: 20, CommitIDs: schema.NewCommitSet("a", "b")},
		"pkg/x/y.go":   {Path: "pkg/x/y.go", LineCount: 7, CommitIDs: schema.NewCommitSet("c")},
		"pkg/x/z.txt":  {Path: "pkg/x/z.txt", LineCount: 1, CommitIDs: schema.NewCommitSet("c")},
		"pkg/other.go": {Path: "pkg/other.go", LineCount: 2, CommitIDs: schema.NewCommitSet("b")},
	}
	root := tree.Build(files)
	total, commitSet := tree.Aggregate(root)
	commits := []schema.Commit{
		{Hash: "a", AuthorName: "Ann", CommittedAt: "2024-01-01 00:00:00", Insertions: 23},
		{Hash: "b", AuthorName: "Ben", CommittedAt: "2024-01-02 00:00:00", Insertions: 2},
		{Hash: "c", AuthorName: "Ann", CommittedAt: "2024-01-03 00:00:00", Insertions: 8},
	}
	return &schema.Report{
		Info:         schema.RepoInfo{Name: "stub", TotalFiles: len(files), TotalLines: total, TotalCommits: commitSet.Len()},
		Tree:         root,
		Languages:    schema.LanguageTally{Lines: map[string]int{"Go": 29, schema.UnknownLanguage: 4}, Total: 33},
		Frameworks:   schema.FrameworkDetection{"Go Modules": "go.mod"},
		Contributors: rollup.Contributors(commits),
		Commits:      commits,
	}
}

// newStubHandler returns a handler whose analysis always yields stubReport.
func newStubHandler(client *contract.MockGitClient) (*toolHandler, *[]*contract.Config) {
	var seen []*contract.Config
	h := &toolHandler{
		baseCfg: &contract.Config{RepoPath: "/base", RepoName: "base", PathFilter: "sub/"},
		analyze: func(_ context.Context, cfg *contract.Config, _ contract.CacheManager) (*schema.Report, time.Duration, error) {
			seen = append(seen, cfg)
			return stubReport(), time.Millisecond, nil
		},
		newClient: func(schema.GitBackend) contract.GitClient { return client },
	}
	return h, &seen
}

func callTool(t *testing.T, h *toolHandler, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := newServer(h).GetTool(name)
	require.NotNil(t, tool, name)
	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestHandleGetRepoInfo_ResolvesRepoPath(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, "/work/proj/sub").Return("/work/proj", nil)
	h, seen := newStubHandler(client)

	res := callTool(t, h, "get_repo_info", map[string]any{"repo_path": "/work/proj/sub"})
	require.False(t, res.IsError, resultText(t, res))

	var info schema.RepoInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &info))
	assert.Equal(t, 33, info.TotalLines)

	require.Len(t, *seen, 1)
	assert.Equal(t, "/work/proj", (*seen)[0].RepoPath)
	assert.Equal(t, "proj", (*seen)[0].RepoName)
	assert.Empty(t, (*seen)[0].PathFilter)
	assert.Equal(t, "/base", h.baseCfg.RepoPath, "base config must not be mutated")
}

func TestHandleGetRepoInfo_InvalidRepo(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, "/nope").Return("", assert.AnError)
	h, seen := newStubHandler(client)

	res := callTool(t, h, "get_repo_info", map[string]any{"repo_path": "/nope"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid repository")
	assert.Empty(t, *seen)
}

func TestHandleAnalysisFailure(t *testing.T) {
	h, _ := newStubHandler(&contract.MockGitClient{})
	h.analyze = func(context.Context, *contract.Config, contract.CacheManager) (*schema.Report, time.Duration, error) {
		return nil, 0, assert.AnError
	}
	res := callTool(t, h, "get_languages", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "analysis failed")
}

func TestHandleGetFolderTree_ScopedAndLimited(t *testing.T) {
	h, _ := newStubHandler(&contract.MockGitClient{})

	res := callTool(t, h, "get_folder_tree", map[string]any{"path": "pkg/x/"})
	var rows []schema.FolderRow
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rows))
	paths := make([]string, len(rows))
	for i, r := range rows {
		paths[i] = r.Path
	}
	assert.Equal(t, []string{"pkg/x", "pkg/x/y.go", "pkg/x/z.txt"}, paths)
	assert.Equal(t, 8, rows[0].Lines)

	res = callTool(t, h, "get_folder_tree", map[string]any{"limit": 2.0})
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rows))
	assert.Len(t, rows, 2)
}

func TestHandleGetContributorsAndTimeline(t *testing.T) {
	h, _ := newStubHandler(&contract.MockGitClient{})

	res := callTool(t, h, "get_contributors", map[string]any{"limit": 1.0})
	var rows []schema.ContributorRow
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, schema.ContributorRow{Author: "Ann", Commits: 2, LinesAdded: 31, NetLines: 31}, rows[0])

	res = callTool(t, h, "get_timeline", map[string]any{"limit": 2.0})
	var commits []schema.Commit
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &commits))
	require.Len(t, commits, 2)
	assert.Equal(t, "b", commits[0].Hash)
	assert.Equal(t, "c", commits[1].Hash)
}

func TestHandleGetFrameworksAndLanguages(t *testing.T) {
	h, _ := newStubHandler(&contract.MockGitClient{})

	var detected schema.FrameworkDetection
	require.NoError(t, json.Unmarshal([]byte(resultText(t, callTool(t, h, "get_frameworks", nil))), &detected))
	assert.Equal(t, "go.mod", detected["Go Modules"])

	var shares []schema.LanguageShare
	require.NoError(t, json.Unmarshal([]byte(resultText(t, callTool(t, h, "get_languages", nil))), &shares))
	require.Len(t, shares, 2)
	assert.Equal(t, "Go", shares[0].Language)
}

func TestHandleGetUserContributions(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, "/base").Return("/base", nil)
	client.On("GetCommits", mock.Anything, "/base").Return([]schema.Commit{
		{Hash: "a", AuthorName: "Ann", CommittedAt: "2024-01-01 00:00:00", Insertions: 4, Deletions: 1},
	}, nil)
	h, _ := newStubHandler(client)

	res := callTool(t, h, "get_user_contributions", map[string]any{"author": "Ann"})
	require.False(t, res.IsError, resultText(t, res))
	var ur schema.UserReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &ur))
	assert.Equal(t, "Ann", ur.Author)
	assert.Equal(t, 3, ur.Record.NetLines())
}
