package core

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/internal/iocache"
	"github.com/huangsam/psicosocial/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonConfig(t *testing.T) (*contract.Config, string) {
	out := filepath.Join(t.TempDir(), "out.json")
	return &contract.Config{Output: schema.JSONOut, OutputFile: out, Precision: 1}, out
}

func TestExecuteCompanyCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and prints", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		store.On("CreateCompany", mock.Anything, "Acme", "900123456").
			Return(schema.Company{ID: "comp-1", Name: "Acme", Nit: "900123456", CreatedAt: testNow}, nil)
		cfg, out := jsonConfig(t)

		require.NoError(t, ExecuteCompanyCreate(ctx, cfg, mockManager(store), " Acme ", "900123456"))

		raw, err := os.ReadFile(out)
		require.NoError(t, err)
		var companies []schema.Company
		require.NoError(t, json.Unmarshal(raw, &companies))
		require.Len(t, companies, 1)
		assert.Equal(t, "comp-1", companies[0].ID)
		store.AssertExpectations(t)
	})

	t.Run("requires name", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		cfg, _ := jsonConfig(t)
		err := ExecuteCompanyCreate(ctx, cfg, mockManager(store), "  ", "")
		assert.ErrorIs(t, err, schema.ErrInvalidInput)
		store.AssertNotCalled(t, "CreateCompany", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExecuteCompanyList(t *testing.T) {
	store := &iocache.MockSurveyStore{}
	store.On("ListCompanies", mock.Anything).Return(nil, nil)
	cfg, out := jsonConfig(t)

	require.NoError(t, ExecuteCompanyList(context.Background(), cfg, mockManager(store)))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestExecuteCampaignCreate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		companyID string
		campaign  string
		setup     func(*iocache.MockSurveyStore)
		wantErr   error
	}{
		{
			name:      "creates campaign",
			companyID: "comp-1",
			campaign:  "Medición 2025",
			setup: func(s *iocache.MockSurveyStore) {
				s.On("GetCompany", mock.Anything, "comp-1").Return(schema.Company{ID: "comp-1"}, nil)
				s.On("CreateCampaign", mock.Anything, "comp-1", "Medición 2025").
					Return(schema.Campaign{ID: "camp-1", CompanyID: "comp-1", Name: "Medición 2025", Token: "abc", IsActive: true}, nil)
			},
		},
		{
			name:      "unknown company",
			companyID: "nope",
			campaign:  "Medición 2025",
			setup: func(s *iocache.MockSurveyStore) {
				s.On("GetCompany", mock.Anything, "nope").Return(schema.Company{}, schema.ErrCompanyNotFound)
			},
			wantErr: schema.ErrCompanyNotFound,
		},
		{
			name:      "missing name",
			companyID: "comp-1",
			setup:     func(*iocache.MockSurveyStore) {},
			wantErr:   schema.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockSurveyStore{}
			tt.setup(store)
			cfg, out := jsonConfig(t)

			err := ExecuteCampaignCreate(ctx, cfg, mockManager(store), tt.companyID, tt.campaign)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			raw, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Contains(t, string(raw), `"token": "abc"`)
			store.AssertExpectations(t)
		})
	}
}

func TestExecuteCampaignList(t *testing.T) {
	store := &iocache.MockSurveyStore{}
	store.On("ListCampaigns", mock.Anything, "comp-1").Return([]schema.Campaign{{ID: "camp-1"}, {ID: "camp-2"}}, nil)
	cfg, out := jsonConfig(t)

	require.NoError(t, ExecuteCampaignList(context.Background(), cfg, mockManager(store), "comp-1"))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var campaigns []schema.Campaign
	require.NoError(t, json.Unmarshal(raw, &campaigns))
	assert.Len(t, campaigns, 2)
}

func TestExecuteCampaignToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		store.On("ToggleCampaign", mock.Anything, "camp-1", false).Return(nil)
		var buf bytes.Buffer

		require.NoError(t, ExecuteCampaignToggle(ctx, &buf, mockManager(store), "camp-1", false))
		assert.Equal(t, "Campaign camp-1 is now inactive.\n", buf.String())
	})

	t.Run("unknown campaign", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		store.On("ToggleCampaign", mock.Anything, "nope", true).Return(schema.ErrCampaignNotFound)

		err := ExecuteCampaignToggle(ctx, &bytes.Buffer{}, mockManager(store), "nope", true)
		assert.ErrorIs(t, err, schema.ErrCampaignNotFound)
	})

	t.Run("no store", func(t *testing.T) {
		err := ExecuteCampaignToggle(ctx, &bytes.Buffer{}, nil, "camp-1", true)
		assert.ErrorIs(t, err, errNoStore)
	})
}
