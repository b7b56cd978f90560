package mcp_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/internal/iocache"
	mcp_internal "github.com/huangsam/psicosocial/internal/mcp"
	"github.com/huangsam/psicosocial/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func managerWith(store contract.SurveyStore) *iocache.MockStoreManager {
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetSurveyStore").Return(store)
	return mgr
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{City: "Montería"}, nil)

	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"score_survey invalid form", "score_survey", map[string]any{"form": "C", "answers": "{}"}, "invalid form"},
		{"score_survey missing answers", "score_survey", map[string]any{"form": "A"}, "answers is required"},
		{"score_survey malformed answers", "score_survey", map[string]any{"answers": "{nope"}, "invalid answers"},
		{"get_report_data missing campaign", "get_report_data", map[string]any{}, "campaign_id is required"},
		{"get_report_data without store", "get_report_data", map[string]any{"campaign_id": "camp-1"}, "survey store is not configured"},
		{"list_campaigns without store", "list_campaigns", map[string]any{}, "survey store is not configured"},
		{"get_chart_svg missing campaign", "get_chart_svg", map[string]any{"chart": "sexo"}, "campaign_id is required"},
		{"get_chart_svg missing chart", "get_chart_svg", map[string]any{"campaign_id": "camp-1"}, "chart is required"},
		{"get_chart_svg without store", "get_chart_svg", map[string]any{"campaign_id": "camp-1", "chart": "sexo"}, "survey store is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, s, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.want)
		})
	}
}

func TestScoreSurveyTool(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{}, nil)

	answers := `{"intralaboral":{"intralaboral_13":"siempre","intralaboral_14":"siempre","intralaboral_15":"siempre"}}`
	res := callTool(t, s, "score_survey", map[string]any{"form": "b", "answers": answers})
	require.False(t, res.IsError, resultText(t, res))

	var rows []struct {
		Key   string           `json:"key"`
		Score float64          `json:"score"`
		Level schema.RiskLevel `json:"level"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rows))
	assert.Len(t, rows, 13+4+4)
	assert.Equal(t, "Intra - Condiciones Ambientales", rows[0].Key)
}

func TestGetReportDataTool(t *testing.T) {
	t.Run("unknown campaign", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		store.On("LoadCampaignData", mock.Anything, "nope").Return(nil, schema.ErrCampaignNotFound)
		s := mcp_internal.NewMCPServer(&contract.Config{}, managerWith(store))

		res := callTool(t, s, "get_report_data", map[string]any{"campaign_id": "nope"})
		assert.True(t, res.IsError)
		assert.Equal(t, schema.ErrCampaignNotFound.Error(), resultText(t, res))
	})

	t.Run("empty campaign", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		store.On("LoadCampaignData", mock.Anything, "camp-1").Return(&schema.CampaignData{}, nil)
		s := mcp_internal.NewMCPServer(&contract.Config{}, managerWith(store))

		res := callTool(t, s, "get_report_data", map[string]any{"campaign_id": "camp-1"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "No hay respuestas")
	})

	t.Run("aggregates responses", func(t *testing.T) {
		data := &schema.CampaignData{
			Company: schema.Company{Name: "Acme", Nit: "900"},
			Responses: []schema.ResponseRecord{
				{FormType: schema.FormA, Ficha: schema.Ficha{}, Results: schema.SurveyResults{}},
			},
		}
		store := &iocache.MockSurveyStore{}
		store.On("LoadCampaignData", mock.Anything, "camp-1").Return(data, nil)
		s := mcp_internal.NewMCPServer(&contract.Config{City: "Sincelejo"}, managerWith(store))

		res := callTool(t, s, "get_report_data", map[string]any{"campaign_id": "camp-1"})
		require.False(t, res.IsError, resultText(t, res))

		var report schema.ReportData
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
		assert.Equal(t, "Acme", report.EmpresaNombre)
		assert.Contains(t, report.FechaInforme, "Sincelejo, ")
		assert.Equal(t, 1, report.Demographics.TotalParticipants)
	})
}

func TestGetChartSVGTool(t *testing.T) {
	data := &schema.CampaignData{
		Company: schema.Company{Name: "Acme", Nit: "900"},
		Responses: []schema.ResponseRecord{
			{FormType: schema.FormA, Ficha: schema.Ficha{"ficha_2": "Femenino"}, Results: schema.SurveyResults{}},
		},
	}
	store := &iocache.MockSurveyStore{}
	store.On("LoadCampaignData", mock.Anything, "camp-1").Return(data, nil)
	s := mcp_internal.NewMCPServer(&contract.Config{}, managerWith(store))

	t.Run("known chart", func(t *testing.T) {
		res := callTool(t, s, "get_chart_svg", map[string]any{"campaign_id": "camp-1", "chart": "sexo"})
		require.False(t, res.IsError, resultText(t, res))
		svg := resultText(t, res)
		assert.True(t, strings.HasPrefix(svg, "<svg "))
		assert.Contains(t, svg, ">Femenino")
	})

	t.Run("unknown chart", func(t *testing.T) {
		res := callTool(t, s, "get_chart_svg", map[string]any{"campaign_id": "camp-1", "chart": "torta"})
		assert.True(t, res.IsError)
		assert.Equal(t, "unknown chart 'torta'", resultText(t, res))
	})
}

func TestListCampaignsTool(t *testing.T) {
	store := &iocache.MockSurveyStore{}
	store.On("ListCampaigns", mock.Anything, "comp-1").Return([]schema.Campaign{{ID: "camp-1", Token: "abc", IsActive: true}}, nil)
	store.On("ListCampaigns", mock.Anything, "").Return(nil, nil)
	s := mcp_internal.NewMCPServer(&contract.Config{}, managerWith(store))

	res := callTool(t, s, "list_campaigns", map[string]any{"company_id": "comp-1"})
	require.False(t, res.IsError)
	var campaigns []schema.Campaign
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &campaigns))
	require.Len(t, campaigns, 1)
	assert.Equal(t, "abc", campaigns[0].Token)

	res = callTool(t, s, "list_campaigns", map[string]any{})
	require.False(t, res.IsError)
	assert.JSONEq(t, "[]", resultText(t, res))
}
