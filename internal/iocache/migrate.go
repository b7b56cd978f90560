package iocache

import (
	"embed"
	"errors"
	"fmt"
	"path"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/psicosocial/schema"
)

// migrationsFS holds one directory of migrations per backend.
//
//go:embed migrations
var migrationsFS embed.FS

// MigrateStore runs database migrations for the survey store.
//   - If targetVersion < 0, it migrates to the latest version.
//   - If targetVersion == 0, it rolls back all migrations.
//   - If targetVersion > 0, it migrates to the specified version.
func MigrateStore(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return errors.New("migrations are not supported for the none backend")
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var driver database.Driver
	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: migrationsTable})
	case schema.MySQLBackend:
		driver, err = migratemysql.WithInstance(db, &migratemysql.Config{MigrationsTable: migrationsTable})
	case schema.PostgreSQLBackend:
		driver, err = postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	}
	if err != nil {
		return fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	sourceDriver, err := iofs.New(migrationsFS, path.Join("migrations", string(backend)))
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "psicosocial", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", currentVersion)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No migration needed. Database is already at the latest version.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to migrate to latest version: %w", err)
		}
		newVersion, _, _ := m.Version()
		fmt.Printf("Successfully migrated from version %d to version %d\n", currentVersion, newVersion)

	case targetVersion == 0:
		err = m.Down()
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No migration needed. Database is already at version 0")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to roll back to version 0: %w", err)
		}
		fmt.Printf("Successfully rolled back from version %d to version 0\n", currentVersion)

	default:
		err = m.Migrate(uint(targetVersion))
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Printf("No migration needed. Database is already at version %d\n", targetVersion)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
		}
		fmt.Printf("Successfully migrated from version %d to version %d\n", currentVersion, targetVersion)
	}
	return nil
}
