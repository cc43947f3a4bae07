package iocache

import (
	"fmt"
	"os"
	"sync"

	"github.com/qlinetech/qgit/schema"
)

// snapshotTable is the name of the table for snapshot caching.
const snapshotTable = "snapshot_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitCaching initializes the global cache manager with separate cache and analysis stores.
// cacheBackend can be empty to disable snapshot caching.
// analysisBackend can be empty to disable analysis tracking.
func InitCaching(cacheBackend schema.DatabaseBackend, cacheConnStr string, analysisBackend schema.DatabaseBackend, analysisConnStr string) error {
	var initErr error
	initOnce.Do(func() {
		initErr = InitStores(Manager, cacheBackend, cacheConnStr, analysisBackend, analysisConnStr)
	})
	return initErr
}

// InitStores opens the configured stores and assigns them to mgr.
func InitStores(mgr *CacheStoreManager, cacheBackend schema.DatabaseBackend, cacheConnStr string, analysisBackend schema.DatabaseBackend, analysisConnStr string) error {
	var snapshotStore *CacheStoreImpl
	if cacheBackend != "" {
		store, err := NewCacheStore(snapshotTable, cacheBackend, cacheConnStr)
		if err != nil {
			return fmt.Errorf("failed to initialize snapshot caching: %w", err)
		}
		snapshotStore = store.(*CacheStoreImpl)
	}

	var analysisStore *AnalysisStoreImpl
	if analysisBackend != "" {
		store, err := NewAnalysisStore(analysisBackend, analysisConnStr)
		if err != nil {
			if snapshotStore != nil {
				_ = snapshotStore.Close()
			}
			return fmt.Errorf("failed to initialize analysis store: %w", err)
		}
		analysisStore = store.(*AnalysisStoreImpl)
	}

	mgr.Lock()
	defer mgr.Unlock()
	// Typed nils must not leak into the interfaces
	mgr.snapshot, mgr.analysis = nil, nil
	if snapshotStore != nil {
		mgr.snapshot = snapshotStore
	}
	if analysisStore != nil {
		mgr.analysis = analysisStore
	}
	return nil
}

// CloseCaching should be called on application shutdown.
func CloseCaching() { // called in main defer
	closeOnce.Do(func() {
		Manager.Close()
	})
}

// Close closes both stores if they are open.
func (mgr *CacheStoreManager) Close() {
	mgr.Lock()
	defer mgr.Unlock()
	if mgr.snapshot != nil {
		_ = mgr.snapshot.Close()
	}
	if mgr.analysis != nil {
		_ = mgr.analysis.Close()
	}
}

// ClearCache clears the snapshot cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	return clearTables(backend, dbFilePath, connStr, snapshotTable)
}

// ClearAnalysis clears the analysis data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the analysis tables.
// For NoneBackend, it does nothing.
func ClearAnalysis(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	return clearTables(backend, dbFilePath, connStr, analysisTables...)
}

func clearTables(backend schema.DatabaseBackend, dbFilePath, connStr string, tables ...string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		for _, table := range tables {
			if err := clearSQLTable(backend, connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(backend schema.DatabaseBackend, connStr, tableName string) error {
	db, err := openDB(backend, connStr, "")
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}
