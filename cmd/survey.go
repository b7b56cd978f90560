package cmd

import (
	"github.com/huangsam/psicosocial/core"
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd scores a single answers file.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one set of survey answers.",
	Long: `Score a JSON answers file against Form A or Form B of the battery.

The file holds the three questionnaires keyed by question, for example:

  {"intralaboral": {"pregunta_1": "siempre"}, "extralaboral": {}, "estres": {}}

Each dimension and domain is printed with its raw score, transformed score
and risk level. Dimensions without answers score 0 with the lowest level.

Examples:
  # Score a Form A answer set
  psicosocial score --answers answers.json

  # Score Form B from stdin as JSON
  cat answers.json | psicosocial score --form B --answers - --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot score answers", err)
		}
	},
}

// reportCmd builds the risk report of one campaign.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the psychosocial risk report of a campaign.",
	Long: `Aggregate every completed response of a campaign and build its report.

Formats:
  docx - fill the report template with figures, tables and 31 charts
  data - print the aggregate itself in the selected output format
  charts - write the 31 charts as <key>.svg files

Without --output-file the docx report is written to
Informe_Riesgo_Psicosocial_<company>_<date>.docx and the charts to the
Graficos_<company>_<date> directory, both in the current directory.

Examples:
  # Write the Word report of a campaign
  psicosocial report --campaign 5f0c...

  # Use a custom template and city
  psicosocial report --campaign 5f0c... --template plantilla.docx --city Bogotá

  # Inspect the aggregate as JSON
  psicosocial report --campaign 5f0c... --format data --output json

  # Export the charts as SVG
  psicosocial report --campaign 5f0c... --format charts --output-file graficos`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot generate report", err)
		}
	},
}

// exportCmd exports stored responses.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored survey responses.",
	Long: `Export survey responses, newest first, with their company and campaign.

Without --campaign every campaign is exported. CSV output without
--output-file is written to resultados-<date>.csv. Parquet output
requires --output-file.

Examples:
  # Export all responses to the default CSV file
  psicosocial export --output csv

  # Export one campaign to Parquet
  psicosocial export --campaign 5f0c... --output parquet --output-file responses.parquet`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot export responses", err)
		}
	},
}
