// Package cmd defines the command-line interface for psicosocial.
package cmd

import (
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(companyCmd)
	rootCmd.AddCommand(campaignCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the company subcommands to the parent company command
	companyCmd.AddCommand(companyCreateCmd)
	companyCmd.AddCommand(companyListCmd)

	// Add the campaign subcommands to the parent campaign command
	campaignCmd.AddCommand(campaignCreateCmd)
	campaignCmd.AddCommand(campaignListCmd)
	campaignCmd.AddCommand(campaignToggleCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or xlsx or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("template", "", "Path to a .docx report template (default: built-in template)")
	rootCmd.PersistentFlags().String("city", contract.DefaultCity, "City printed in the report header")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Local flags are bound to Viper by sharedSetup for the running command only
	scoreCmd.Flags().String("form", string(schema.FormA), "Questionnaire form: A or B")
	scoreCmd.Flags().String("answers", "", "Path to a JSON answers file (- reads stdin)")

	reportCmd.Flags().String("campaign", "", "Campaign ID to report on")
	reportCmd.Flags().String("format", string(schema.DocxReport), "Report format: docx, data or charts")

	exportCmd.Flags().String("campaign", "", "Campaign ID to export (default: all campaigns)")

	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address the HTTP API listens on")
	serveCmd.Flags().String("allowed-origins", "", "Comma-separated list of CORS origins (default: any)")

	storeMigrateCmd.Flags().Int("target-version", contract.LatestVersion, "Target migration version (-1 means latest, 0 means rollback to initial state)")

	companyCreateCmd.Flags().String("name", "", "Company name")
	companyCreateCmd.Flags().String("nit", "", "Company tax identifier")

	campaignCreateCmd.Flags().String("company", "", "Company ID that owns the campaign")
	campaignCreateCmd.Flags().String("name", "", "Campaign name")
	campaignListCmd.Flags().String("company", "", "Only list campaigns of this company ID")
	campaignToggleCmd.Flags().String("active", "", "Set the campaign state (yes/no/true/false/1/0)")
	_ = campaignToggleCmd.MarkFlagRequired("active")
}
