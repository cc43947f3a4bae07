package cmd

import (
	"fmt"
	"strings"

	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
	"github.com/spf13/viper"
)

// storeTarget is a backend plus its connection string as read from viper.
type storeTarget struct {
	backend schema.DatabaseBackend
	connStr string
}

// readStoreTarget loads the config file and validates the backend stored under prefix
// ("cache" or "analysis"). An empty backend resolves to fallback.
func readStoreTarget(prefix string, fallback schema.DatabaseBackend) (storeTarget, error) {
	if err := loadConfigFile(); err != nil {
		return storeTarget{}, err
	}

	t := storeTarget{
		backend: schema.DatabaseBackend(strings.ToLower(viper.GetString(prefix + "-backend"))),
		connStr: viper.GetString(prefix + "-db-connect"),
	}
	if t.backend == "" {
		t.backend = fallback
	}
	if _, ok := schema.ValidDatabaseBackends[t.backend]; !ok {
		return storeTarget{}, fmt.Errorf("invalid %s backend '%s'. must be sqlite, mysql, postgresql, none", prefix, t.backend)
	}
	if err := contract.ValidateDatabaseConnectionString(t.backend, t.connStr); err != nil {
		return storeTarget{}, err
	}
	return t, nil
}

// sqliteFile returns the database file a SQLite target points at.
func (t storeTarget) sqliteFile(defaultPath string) string {
	if t.connStr != "" {
		return t.connStr
	}
	return defaultPath
}
