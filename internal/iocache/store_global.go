package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for survey storage.
func GetDBFilePath() string {
	return contract.GetDBFilePath()
}

// InitStore initializes the global manager with a survey store.
// An empty backend leaves the manager without a store.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		if backend == "" {
			return
		}
		store, err := NewSurveyStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize survey store: %w", err)
			return
		}

		Manager.Lock()
		Manager.survey = store
		Manager.Unlock()
	})

	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.survey != nil {
			_ = Manager.survey.Close()
		}
	})
}

// ClearStore removes all survey data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the survey tables.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
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
		driverName, _ := driverFor(backend)
		// Children first so foreign keys never block the drop
		tables := []string{responsesTable, campaignsTable, companiesTable, migrationsTable}
		return dropSQLTables(driverName, connStr, backend, tables)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// dropSQLTables connects to the SQL database and drops each table if it exists.
func dropSQLTables(driverName, connStr string, backend schema.DatabaseBackend, tables []string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
