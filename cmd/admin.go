package cmd

import (
	"os"

	"github.com/huangsam/psicosocial/core"
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/spf13/cobra"
)

// companyCmd is the parent command for client company management.
var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage client companies.",
	Long:  `Create and list the companies whose workers answer the survey.`,
}

// companyCreateCmd registers a company.
var companyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a client company.",
	Long: `Register a client company and print it with its generated ID.

Examples:
  psicosocial company create --name "Acme S.A.S." --nit 900123456`,
	PreRunE: storeSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		name, _ := cmd.Flags().GetString("name")
		nit, _ := cmd.Flags().GetString("nit")
		if err := core.ExecuteCompanyCreate(rootCtx, cfg, storeManager, name, nit); err != nil {
			contract.LogFatal("Cannot create company", err)
		}
	},
}

// companyListCmd lists companies.
var companyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List client companies.",
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompanyList(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list companies", err)
		}
	},
}

// campaignCmd is the parent command for survey campaign management.
var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Manage survey campaigns.",
	Long: `Create, list and toggle survey campaigns.

Each campaign has an access token that respondents use to open the survey.
Inactive campaigns reject new submissions.`,
}

// campaignCreateCmd opens a campaign for a company.
var campaignCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a campaign for a company.",
	Long: `Open an active campaign for an existing company and print its access token.

Examples:
  psicosocial campaign create --company 3a9e... --name "Medición 2025"`,
	PreRunE: storeSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		company, _ := cmd.Flags().GetString("company")
		name, _ := cmd.Flags().GetString("name")
		if err := core.ExecuteCampaignCreate(rootCtx, cfg, storeManager, company, name); err != nil {
			contract.LogFatal("Cannot create campaign", err)
		}
	},
}

// campaignListCmd lists campaigns.
var campaignListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List survey campaigns, newest first.",
	PreRunE: storeSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		company, _ := cmd.Flags().GetString("company")
		if err := core.ExecuteCampaignList(rootCtx, cfg, storeManager, company); err != nil {
			contract.LogFatal("Cannot list campaigns", err)
		}
	},
}

// campaignToggleCmd activates or deactivates a campaign.
var campaignToggleCmd = &cobra.Command{
	Use:   "toggle <campaign-id>",
	Short: "Activate or deactivate a campaign.",
	Long: `Set whether a campaign accepts new submissions.

Examples:
  psicosocial campaign toggle 5f0c... --active no`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		raw, _ := cmd.Flags().GetString("active")
		active, err := contract.ParseBoolString(raw)
		if err != nil {
			contract.LogFatal("Invalid --active value", err)
		}
		if err := core.ExecuteCampaignToggle(rootCtx, os.Stdout, storeManager, args[0], active); err != nil {
			contract.LogFatal("Cannot toggle campaign", err)
		}
	},
}
