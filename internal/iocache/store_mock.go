package iocache

import (
	"context"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSurveyStore implements the StoreManager interface.
func (m *MockStoreManager) GetSurveyStore() contract.SurveyStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SurveyStore)
	return store
}

// MockSurveyStore is a mock implementation of SurveyStore for testing.
type MockSurveyStore struct {
	mock.Mock
}

var _ contract.SurveyStore = &MockSurveyStore{} // Compile-time check

// CreateCompany implements the SurveyStore interface.
func (m *MockSurveyStore) CreateCompany(ctx context.Context, name, nit string) (schema.Company, error) {
	args := m.Called(ctx, name, nit)
	return args.Get(0).(schema.Company), args.Error(1)
}

// GetCompany implements the SurveyStore interface.
func (m *MockSurveyStore) GetCompany(ctx context.Context, id string) (schema.Company, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(schema.Company), args.Error(1)
}

// ListCompanies implements the SurveyStore interface.
func (m *MockSurveyStore) ListCompanies(ctx context.Context) ([]schema.Company, error) {
	args := m.Called(ctx)
	companies, _ := args.Get(0).([]schema.Company)
	return companies, args.Error(1)
}

// CreateCampaign implements the SurveyStore interface.
func (m *MockSurveyStore) CreateCampaign(ctx context.Context, companyID, name string) (schema.Campaign, error) {
	args := m.Called(ctx, companyID, name)
	return args.Get(0).(schema.Campaign), args.Error(1)
}

// ToggleCampaign implements the SurveyStore interface.
func (m *MockSurveyStore) ToggleCampaign(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// ListCampaigns implements the SurveyStore interface.
func (m *MockSurveyStore) ListCampaigns(ctx context.Context, companyID string) ([]schema.Campaign, error) {
	args := m.Called(ctx, companyID)
	campaigns, _ := args.Get(0).([]schema.Campaign)
	return campaigns, args.Error(1)
}

// ValidateToken implements the SurveyStore interface.
func (m *MockSurveyStore) ValidateToken(ctx context.Context, token string) (schema.CampaignSummary, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(schema.CampaignSummary), args.Error(1)
}

// VerifyCedula implements the SurveyStore interface.
func (m *MockSurveyStore) VerifyCedula(ctx context.Context, campaignID, cedula string) (bool, error) {
	args := m.Called(ctx, campaignID, cedula)
	return args.Bool(0), args.Error(1)
}

// SubmitResponse implements the SurveyStore interface.
func (m *MockSurveyStore) SubmitResponse(ctx context.Context, rec schema.ResponseRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// LoadCampaignData implements the SurveyStore interface.
func (m *MockSurveyStore) LoadCampaignData(ctx context.Context, campaignID string) (*schema.CampaignData, error) {
	args := m.Called(ctx, campaignID)
	data, _ := args.Get(0).(*schema.CampaignData)
	return data, args.Error(1)
}

// ExportResponses implements the SurveyStore interface.
func (m *MockSurveyStore) ExportResponses(ctx context.Context, campaignID string) ([]schema.ResponseExportRow, error) {
	args := m.Called(ctx, campaignID)
	rows, _ := args.Get(0).([]schema.ResponseExportRow)
	return rows, args.Error(1)
}

// GetStatus implements the SurveyStore interface.
func (m *MockSurveyStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the SurveyStore interface.
func (m *MockSurveyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
