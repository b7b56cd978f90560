package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/internal/outwriter"
	"github.com/huangsam/psicosocial/schema"
)

// ExecuteCompanyCreate registers a client company and prints it.
func ExecuteCompanyCreate(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, name, nit string) error {
	store, err := surveyStore(mgr)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: --name is required", schema.ErrInvalidInput)
	}
	company, err := store.CreateCompany(ctx, name, strings.TrimSpace(nit))
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCompanies([]schema.Company{company}, cfg)
}

// ExecuteCompanyList prints every registered company.
func ExecuteCompanyList(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := surveyStore(mgr)
	if err != nil {
		return err
	}
	companies, err := store.ListCompanies(ctx)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCompanies(companies, cfg)
}

// ExecuteCampaignCreate opens a campaign for an existing company and prints
// it with its access token.
func ExecuteCampaignCreate(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, companyID, name string) error {
	store, err := surveyStore(mgr)
	if err != nil {
		return err
	}
	companyID, name = strings.TrimSpace(companyID), strings.TrimSpace(name)
	if companyID == "" || name == "" {
		return fmt.Errorf("%w: --company and --name are required", schema.ErrInvalidInput)
	}
	if _, err := store.GetCompany(ctx, companyID); err != nil {
		return err
	}
	campaign, err := store.CreateCampaign(ctx, companyID, name)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCampaigns([]schema.Campaign{campaign}, cfg)
}

// ExecuteCampaignList prints the campaigns of one company, or of all companies.
func ExecuteCampaignList(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, companyID string) error {
	store, err := surveyStore(mgr)
	if err != nil {
		return err
	}
	campaigns, err := store.ListCampaigns(ctx, strings.TrimSpace(companyID))
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCampaigns(campaigns, cfg)
}

// ExecuteCampaignToggle switches a campaign on or off.
func ExecuteCampaignToggle(ctx context.Context, w io.Writer, mgr contract.StoreManager, id string, active bool) error {
	store, err := surveyStore(mgr)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("campaign id is required")
	}
	if err := store.ToggleCampaign(ctx, id, active); err != nil {
		return err
	}
	state := "inactive"
	if active {
		state = "active"
	}
	_, err = fmt.Fprintf(w, "Campaign %s is now %s.\n", id, state)
	return err
}
