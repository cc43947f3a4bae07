package iocache

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/qlinetech/qgit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAnalysis_NoneBackend(t *testing.T) {
	err := MigrateAnalysis(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateAnalysis_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
	assertTables(t, dbPath, analysisTables...)

	// Already at latest
	assert.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))

	// Step down to only the runs table
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 1))
	assertTables(t, dbPath, analysisRunsTable)

	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 0))
	assertTables(t, dbPath)

	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 3))
	assertTables(t, dbPath, analysisTables...)
}

func TestMigrateAnalysis_SQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, ":memory:", -1))
}

func TestMigrationsEmbeddedPerBackend(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		entries, err := migrationsFS.ReadDir(migrationsDir(backend))
		require.NoError(t, err, backend)
		assert.Len(t, entries, 6, backend)
	}
}

func TestMigrationsCompatibleWithStoreCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mixed.db")
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))

	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Len(t, status.TableSizes, 3)
}

// assertTables checks that exactly the named qgit tables exist.
func assertTables(t *testing.T, dbPath string, want ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name LIKE 'qgit_%' ORDER BY name`)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var got []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		got = append(got, name)
	}
	require.NoError(t, rows.Err())
	assert.ElementsMatch(t, want, got)
}
