// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/psicosocial/schema"
)

// SurveyStore defines the persistence operations of the survey pipeline.
// This allows handlers and report builders to be tested without a database.
type SurveyStore interface {
	// --- Companies ---

	// CreateCompany stores a new client company. The name is required.
	CreateCompany(ctx context.Context, name, nit string) (schema.Company, error)

	// GetCompany returns one company or schema.ErrCompanyNotFound.
	GetCompany(ctx context.Context, id string) (schema.Company, error)

	// ListCompanies returns every company ordered by name.
	ListCompanies(ctx context.Context) ([]schema.Company, error)

	// --- Campaigns ---

	// CreateCampaign opens an active campaign with a fresh access token.
	CreateCampaign(ctx context.Context, companyID, name string) (schema.Campaign, error)

	// ToggleCampaign switches a campaign on or off.
	ToggleCampaign(ctx context.Context, id string, active bool) error

	// ListCampaigns returns the campaigns of one company, or all when companyID is empty.
	ListCampaigns(ctx context.Context, companyID string) ([]schema.Campaign, error)

	// ValidateToken resolves an access token to the campaign it opens.
	ValidateToken(ctx context.Context, token string) (schema.CampaignSummary, error)

	// --- Responses ---

	// VerifyCedula reports whether the participant already answered the campaign.
	VerifyCedula(ctx context.Context, campaignID, cedula string) (bool, error)

	// SubmitResponse persists a scored response. A second response for the same
	// cedula and campaign yields schema.ErrAlreadySubmitted.
	SubmitResponse(ctx context.Context, rec schema.ResponseRecord) error

	// LoadCampaignData returns a campaign with its company and every response.
	LoadCampaignData(ctx context.Context, campaignID string) (*schema.CampaignData, error)

	// ExportResponses returns responses joined with campaign and company names,
	// newest first. An empty campaignID exports every campaign.
	ExportResponses(ctx context.Context, campaignID string) ([]schema.ResponseExportRow, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager hands out the configured survey store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetSurveyStore() SurveyStore
}
