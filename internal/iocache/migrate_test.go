package iocache

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/huangsam/psicosocial/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateStore_NoneBackend(t *testing.T) {
	err := MigrateStore(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func tableExists(t *testing.T, dbPath, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestMigrateStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))
	for _, table := range storeTables {
		assert.True(t, tableExists(t, dbPath, table), table)
	}

	// Already at the latest version
	assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 1))
	assert.True(t, tableExists(t, dbPath, companiesTable))
	assert.False(t, tableExists(t, dbPath, responsesTable))

	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0))
	assert.False(t, tableExists(t, dbPath, companiesTable))

	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 3))
	assert.True(t, tableExists(t, dbPath, responsesTable))
}

func TestMigrateStore_AfterStoreBootstrap(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bootstrapped.db")
	store, err := NewSurveyStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.CreateCompany(context.Background(), "Acme", "")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Tables created on open are adopted by the migration history
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	store, err = NewSurveyStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	companies, err := store.ListCompanies(context.Background())
	require.NoError(t, err)
	assert.Len(t, companies, 1)
}

func TestMigrateStore_SQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateStore(schema.SQLiteBackend, ":memory:", -1))
}
