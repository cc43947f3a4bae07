package contract

import (
	"context"

	"github.com/qlinetech/qgit/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// GetRepoHash implements the GitClient interface.
func (m *MockGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}

// IsDirty implements the GitClient interface.
func (m *MockGitClient) IsDirty(ctx context.Context, repoPath string) (bool, error) {
	ret := m.Called(ctx, repoPath)
	return ret.Bool(0), ret.Error(1)
}

// ListTrackedFiles implements the GitClient interface.
func (m *MockGitClient) ListTrackedFiles(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	files, _ := ret.Get(0).([]string)
	return files, ret.Error(1)
}

// GetFileCommitIDs implements the GitClient interface.
func (m *MockGitClient) GetFileCommitIDs(ctx context.Context, repoPath string, path string, follow bool) ([]string, error) {
	ret := m.Called(ctx, repoPath, path, follow)
	ids, _ := ret.Get(0).([]string)
	return ids, ret.Error(1)
}

// GetCommits implements the GitClient interface.
func (m *MockGitClient) GetCommits(ctx context.Context, repoPath string) ([]schema.Commit, error) {
	ret := m.Called(ctx, repoPath)
	commits, _ := ret.Get(0).([]schema.Commit)
	return commits, ret.Error(1)
}
