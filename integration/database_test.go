//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// runBackendScenario clears, fills and inspects both stores through the CLI.
func runBackendScenario(t *testing.T, backend, connStr string) {
	t.Setenv("QGIT_CACHE_BACKEND", backend)
	t.Setenv("QGIT_CACHE_DB_CONNECT", connStr)
	t.Setenv("QGIT_ANALYSIS_BACKEND", backend)
	t.Setenv("QGIT_ANALYSIS_DB_CONNECT", connStr)

	for _, args := range [][]string{
		{"cache", "clear"},
		{"analysis", "clear"},
		{"contributors", "--limit", "5"},
		{"languages", "--output", "json"},
		{"cache", "status"},
		{"analysis", "status"},
	} {
		_, err := runQgit(t, "..", args...)
		require.NoError(t, err, args)
	}
}

// TestQgitWithMySQL tests the qgit CLI with a MySQL backend.
func TestQgitWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "qgit",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/qgit?parseTime=true", host, port.Port())
	runBackendScenario(t, "mysql", connStr)
}

// TestQgitWithPostgres tests the qgit CLI with a PostgreSQL backend.
func TestQgitWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runBackendScenario(t, "postgresql", connStr)
}
