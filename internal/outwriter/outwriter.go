// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScores prints the results of one scored respondent, one row per
// dimension in the given key order.
func (ow *OutWriter) WriteScores(form schema.FormType, keys []string, results schema.SurveyResults, cfg *contract.Config) error {
	return writeTableSet(scoreTables(form, keys, results), cfg)
}

// WriteReportData prints the report aggregate of a campaign.
func (ow *OutWriter) WriteReportData(data *schema.ReportData, cfg *contract.Config) error {
	return writeTableSet(reportTables(data), cfg)
}

// WriteResponses prints exported responses.
func (ow *OutWriter) WriteResponses(rows []schema.ResponseExportRow, cfg *contract.Config) error {
	set, err := responseTables(rows)
	if err != nil {
		return err
	}
	return writeTableSet(set, cfg)
}

// WriteCompanies prints the registered companies.
func (ow *OutWriter) WriteCompanies(companies []schema.Company, cfg *contract.Config) error {
	return writeTableSet(companyTables(companies), cfg)
}

// WriteCampaigns prints campaigns with their access tokens.
func (ow *OutWriter) WriteCampaigns(campaigns []schema.Campaign, cfg *contract.Config) error {
	return writeTableSet(campaignTables(campaigns), cfg)
}
