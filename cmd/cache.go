package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/internal/iocache"
	"github.com/qlinetech/qgit/schema"
	"github.com/spf13/cobra"
)

// cacheSetup opens only the snapshot store; no repository is resolved.
func cacheSetup(_ *cobra.Command, _ []string) error {
	target, err := readStoreTarget("cache", schema.SQLiteBackend)
	if err != nil {
		return err
	}
	if err := iocache.InitCaching(target.backend, target.connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	cfg.CacheBackend = target.backend
	cfg.CacheDBConnect = target.connStr
	return nil
}

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the repository snapshot cache",
	Long: `Manage the snapshot cache that speeds up repeated analyses.

A snapshot holds the tracked files, per-file line and commit counts and the
commit history of a repository. It is keyed by repository path, HEAD and the
options that change its contents, so new commits always miss the cache.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None

Examples:
  qgit cache status
  qgit cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached repository snapshots",
	Long: `Delete every cached snapshot from the configured backend.

For SQLite the database file is removed; for MySQL and PostgreSQL the
snapshot table is dropped.

Examples:
  qgit cache clear
  QGIT_CACHE_BACKEND=mysql QGIT_CACHE_DB_CONNECT="..." qgit cache clear`,
	PreRunE: cacheSetup,
	Run: func(_ *cobra.Command, _ []string) {
		target := storeTarget{backend: cfg.CacheBackend, connStr: cfg.CacheDBConnect}
		iocache.CloseCaching()
		if err := iocache.ClearCache(target.backend, target.sqliteFile(contract.GetCacheDBFilePath()), target.connStr); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend, entry count, newest and oldest entries and table size
of the snapshot cache.

Examples:
  qgit cache status`,
	PreRunE: cacheSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetSnapshotStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", errors.New("snapshot cache is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}
