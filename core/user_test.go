package core

import (
	"context"
	"testing"

	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetUserResults_AcrossRepos(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, "./a").Return("/src/a", nil)
	client.On("GetRepoRoot", mock.Anything, "./b").Return("/src/b", nil)
	client.On("GetCommits", mock.Anything, "/src/a").Return([]schema.Commit{
		{Hash: "a1", AuthorName: "Alice", CommittedAt: "2024-05-01 00:00:00", Insertions: 10, Deletions: 2},
		{Hash: "a2", AuthorName: "Bob", CommittedAt: "2024-05-02 00:00:00", Insertions: 1},
	}, nil)
	client.On("GetCommits", mock.Anything, "/src/b").Return([]schema.Commit{
		{Hash: "b1", AuthorName: "Alice", CommittedAt: "2024-01-01 00:00:00", Insertions: 5, Deletions: 5},
	}, nil)

	cfg := &contract.Config{Author: "Alice", UserRepos: []string{"./a", "./b"}}
	result, err := GetUserResults(context.Background(), cfg, client)
	require.NoError(t, err)

	assert.Equal(t, []string{"/src/a", "/src/b"}, result.Repos)
	assert.Equal(t, 15, result.Record.LinesAdded)
	assert.Equal(t, 7, result.Record.LinesRemoved)
	require.Len(t, result.Record.Commits, 2)
	assert.Equal(t, "b1", result.Record.Commits[0].Hash)
	assert.Len(t, result.PerRepo, 2)
	assert.Equal(t, 8, result.PerRepo["/src/a"].NetLines())
}

func TestGetUserResults_SameRootCountedOnce(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, ".").Return("/src/a", nil)
	client.On("GetRepoRoot", mock.Anything, "./sub").Return("/src/a", nil)
	client.On("GetCommits", mock.Anything, "/src/a").Return([]schema.Commit{
		{Hash: "a1", AuthorName: "Alice", CommittedAt: "2024-05-01 00:00:00", Insertions: 10, Deletions: 2},
	}, nil).Once()

	cfg := &contract.Config{Author: "Alice", UserRepos: []string{".", "./sub"}}
	result, err := GetUserResults(context.Background(), cfg, client)
	require.NoError(t, err)

	assert.Equal(t, []string{"/src/a"}, result.Repos)
	assert.Equal(t, 10, result.Record.LinesAdded)
	assert.Equal(t, 2, result.Record.LinesRemoved)
	assert.Len(t, result.Record.Commits, 1)
	client.AssertNumberOfCalls(t, "GetCommits", 1)
}

func TestGetUserResults_UnknownAuthor(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, "/repo").Return("/repo", nil)
	client.On("GetCommits", mock.Anything, "/repo").Return([]schema.Commit{
		{Hash: "x", AuthorName: "Bob", CommittedAt: "2024-01-01 00:00:00"},
	}, nil)

	result, err := GetUserResults(context.Background(), &contract.Config{RepoPath: "/repo", Author: "Carol"}, client)
	require.NoError(t, err)
	assert.Equal(t, "Carol", result.Record.Name)
	assert.Empty(t, result.Record.Commits)
	assert.Empty(t, result.PerRepo)
}

func TestGetUserResults_Errors(t *testing.T) {
	_, err := GetUserResults(context.Background(), &contract.Config{RepoPath: "/repo"}, &contract.MockGitClient{})
	assert.Error(t, err)

	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, "/nope").Return("", assert.AnError)
	_, err = GetUserResults(context.Background(), &contract.Config{RepoPath: "/nope", Author: "A"}, client)
	assert.ErrorIs(t, err, assert.AnError)
}
