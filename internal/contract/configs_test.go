package contract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/qlinetech/qgit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func baseInput() *ConfigRawInput {
	return &ConfigRawInput{
		Workers:      4,
		Precision:    1,
		Output:       "text",
		RepoPathStr:  ".",
		CacheBackend: string(schema.SQLiteBackend),
		Follow:       true,
		Signature:    true,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError bool
		needsRoot   bool
	}{
		{name: "valid minimal config", modify: func(*ConfigRawInput) {}, needsRoot: true},
		{name: "limit zero means all", modify: func(in *ConfigRawInput) { in.Limit = 0 }, needsRoot: true},
		{name: "invalid limit (negative)", modify: func(in *ConfigRawInput) { in.Limit = -1 }, expectError: true},
		{name: "invalid limit (too large)", modify: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: true},
		{name: "invalid workers (zero)", modify: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "invalid precision", modify: func(in *ConfigRawInput) { in.Precision = 5 }, expectError: true},
		{name: "invalid output format", modify: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet needs output file", modify: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "parquet with output file", modify: func(in *ConfigRawInput) {
			in.Output = "parquet"
			in.OutputFile = "out.parquet"
		}, needsRoot: true},
		{name: "invalid lang", modify: func(in *ConfigRawInput) { in.Lang = "xx" }, expectError: true},
		{name: "turkish labels", modify: func(in *ConfigRawInput) { in.Lang = "TR" }, needsRoot: true},
		{name: "invalid git backend", modify: func(in *ConfigRawInput) { in.GitBackend = "libgit2" }, expectError: true},
		{name: "gogit backend", modify: func(in *ConfigRawInput) { in.GitBackend = "gogit" }, needsRoot: true},
		{name: "invalid emoji", modify: func(in *ConfigRawInput) { in.Emoji = "maybe" }, expectError: true},
		{name: "invalid cache backend", modify: func(in *ConfigRawInput) { in.CacheBackend = "redis" }, expectError: true},
		{name: "mysql backend without connection string", modify: func(in *ConfigRawInput) {
			in.CacheBackend = string(schema.MySQLBackend)
		}, expectError: true},
		{name: "postgresql backend without connection string", modify: func(in *ConfigRawInput) {
			in.CacheBackend = string(schema.PostgreSQLBackend)
		}, expectError: true},
		{name: "mysql backend with connection string", modify: func(in *ConfigRawInput) {
			in.CacheBackend = string(schema.MySQLBackend)
			in.CacheDBConnect = "user:pass@tcp(localhost:3306)/qgit"
		}, needsRoot: true},
		{name: "none backend", modify: func(in *ConfigRawInput) { in.CacheBackend = string(schema.NoneBackend) }, needsRoot: true},
		{name: "shared sqlite file", modify: func(in *ConfigRawInput) {
			in.AnalysisBackend = string(schema.SQLiteBackend)
		}, expectError: true},
		{name: "separate sqlite files", modify: func(in *ConfigRawInput) {
			in.AnalysisBackend = string(schema.SQLiteBackend)
			in.AnalysisDBConnect = "/tmp/qgit-analysis.db"
		}, needsRoot: true},
	}

	workDir, err := filepath.Abs(".")
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockGitClient)
			ctx := context.Background()
			if tt.needsRoot {
				mockClient.On("GetRepoRoot", ctx, workDir).Return("/mock/repo/root", nil)
			}

			input := baseInput()
			tt.modify(input)

			cfg := &Config{}
			err := ProcessAndValidate(ctx, cfg, mockClient, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "/mock/repo/root", cfg.RepoPath)
			assert.Equal(t, "root", cfg.RepoName)
			assert.Equal(t, DefaultReportDir, cfg.ReportDir)
			assert.True(t, cfg.UseColors)
			assert.False(t, cfg.UseEmojis)
			mockClient.AssertExpectations(t)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	workDir, err := filepath.Abs(".")
	require.NoError(t, err)

	mockClient := new(MockGitClient)
	mockClient.On("GetRepoRoot", mock.Anything, workDir).Return(workDir, nil)

	input := baseInput()
	input.Exclude = " vendor/ ,, *.min.js"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))

	assert.Equal(t, schema.LangEN, cfg.LabelLang)
	assert.Equal(t, schema.ExecGitBackend, cfg.GitBackend)
	assert.Equal(t, []string{"vendor/", "*.min.js"}, cfg.Excludes)
	assert.Empty(t, cfg.PathFilter)
	assert.True(t, cfg.Follow)
}

func TestProcessAndValidateImplicitFilter(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "pkg", "api")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	file := filepath.Join(sub, "handler.go")
	require.NoError(t, os.WriteFile(file, []byte("package api\n"), 0o644))

	t.Run("directory", func(t *testing.T) {
		mockClient := new(MockGitClient)
		mockClient.On("GetRepoRoot", mock.Anything, sub).Return(root, nil)
		input := baseInput()
		input.RepoPathStr = sub
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
		assert.Equal(t, "pkg/api/", cfg.PathFilter)
	})

	t.Run("file", func(t *testing.T) {
		mockClient := new(MockGitClient)
		mockClient.On("GetRepoRoot", mock.Anything, sub).Return(root, nil)
		input := baseInput()
		input.RepoPathStr = file
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
		assert.Equal(t, "pkg/api/handler.go", cfg.PathFilter)
	})

	t.Run("explicit filter wins", func(t *testing.T) {
		mockClient := new(MockGitClient)
		mockClient.On("GetRepoRoot", mock.Anything, sub).Return(root, nil)
		input := baseInput()
		input.RepoPathStr = sub
		input.Filter = "docs/"
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
		assert.Equal(t, "docs/", cfg.PathFilter)
	})

	t.Run("not a repository", func(t *testing.T) {
		mockClient := new(MockGitClient)
		mockClient.On("GetRepoRoot", mock.Anything, sub).Return("", errors.New("not a git repository"))
		input := baseInput()
		input.RepoPathStr = sub
		err := ProcessAndValidate(context.Background(), &Config{}, mockClient, input)
		assert.ErrorContains(t, err, "not a git repository")
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@localhost/db"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/db"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "dbname=x"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost dbname=qgit"))
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Excludes: []string{"vendor/"}, UserRepos: []string{"a"}}
	clone := cfg.Clone()
	clone.Excludes[0] = "changed"
	clone.UserRepos = append(clone.UserRepos, "b")
	assert.Equal(t, "vendor/", cfg.Excludes[0])
	assert.Len(t, cfg.UserRepos, 1)
}

func TestProcessProfilingConfig(t *testing.T) {
	var p ProfileConfig
	require.NoError(t, ProcessProfilingConfig(&p, ""))
	assert.False(t, p.Enabled)
	require.NoError(t, ProcessProfilingConfig(&p, "run"))
	assert.True(t, p.Enabled)
	assert.Equal(t, "run", p.Prefix)
}
