package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/internal/iocache"
	"github.com/huangsam/psicosocial/schema"
	"github.com/spf13/cobra"
)

// storeCmd is the parent command for survey store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the survey store.",
	Long: `Inspect, migrate and clear the database that holds companies,
campaigns and responses.

The SQLite backend keeps its file under the home directory unless
--store-db-connect names another path.`,
}

// storeStatusCmd prints the store status.
var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show survey store status.",
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := storeManager.GetSurveyStore()
		if store == nil {
			contract.LogFatal("Cannot get store status", errors.New("survey store is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Cannot get store status", err)
		}
		iocache.PrintStoreStatus(os.Stdout, status)
	},
}

// storeClearCmd removes all survey data.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all survey data.",
	Long: `Delete every company, campaign and response.

SQLite removes the database file; MySQL and PostgreSQL drop the survey tables.`,
	PreRunE: storeAdminSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearStore(cfg.StoreBackend, sqlitePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Cannot clear survey store", err)
		}
		fmt.Println("Survey store cleared.")
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the survey store schema.",
	Long: `Apply the embedded schema migrations to the survey store.

Examples:
  # Migrate to the latest version
  psicosocial store migrate

  # Roll back every migration
  psicosocial store migrate --target-version 0`,
	PreRunE: storeAdminSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, cfg.TargetVersion); err != nil {
			contract.LogFatal("Cannot migrate survey store", err)
		}
		fmt.Println("Survey store migrated.")
	},
}

// sqlitePath returns the SQLite file of the configured store.
func sqlitePath() string {
	if cfg.StoreDBConnect != "" {
		return cfg.StoreDBConnect
	}
	return iocache.GetDBFilePath()
}

// storeAdminSetup loads config without opening the store.
func storeAdminSetup(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(rootCtx, cmd, args); err != nil {
		return err
	}
	if cfg.StoreBackend == schema.SQLiteBackend && cfg.StoreDBConnect == "" {
		cfg.StoreDBConnect = iocache.GetDBFilePath()
	}
	return nil
}
