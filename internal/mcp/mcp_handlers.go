package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/psicosocial/core"
	"github.com/huangsam/psicosocial/internal/charts"
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// scoredDimension is one row of the score_survey result.
type scoredDimension struct {
	Key string `json:"key"`
	schema.DimensionResult
}

func (h *toolHandler) store() contract.SurveyStore {
	if h.mgr == nil {
		return nil
	}
	return h.mgr.GetSurveyStore()
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreSurvey(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form := schema.FormType(strings.ToUpper(request.GetString("form", string(schema.FormA))))
	if _, ok := schema.ValidFormTypes[form]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid form '%s'. must be A or B", form)), nil
	}

	raw := request.GetString("answers", "")
	if strings.TrimSpace(raw) == "" {
		return mcp.NewToolResultError("answers is required"), nil
	}
	var answers schema.SurveyAnswers
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid answers: %v", err)), nil
	}

	results := core.ProcessSurvey(form, answers)
	keys := core.OrderedResultKeys(form)
	rows := make([]scoredDimension, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, scoredDimension{Key: key, DimensionResult: results[key]})
	}
	return jsonResult(rows)
}

func (h *toolHandler) handleGetReportData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaignID := strings.TrimSpace(request.GetString("campaign_id", ""))
	if campaignID == "" {
		return mcp.NewToolResultError("campaign_id is required"), nil
	}
	city := request.GetString("city", "")
	if city == "" && h.baseCfg != nil {
		city = h.baseCfg.City
	}

	data, errResult := h.loadReportData(ctx, campaignID, city)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(data)
}

// loadReportData aggregates a campaign or returns the tool error to report.
func (h *toolHandler) loadReportData(ctx context.Context, campaignID, city string) (*schema.ReportData, *mcp.CallToolResult) {
	data, err := core.LoadReportData(ctx, h.store(), campaignID, core.ReportOptions{City: city, Now: time.Now()})
	switch {
	case errors.Is(err, schema.ErrCampaignNotFound), errors.Is(err, schema.ErrNoResponses):
		return nil, mcp.NewToolResultError(err.Error())
	case err != nil:
		return nil, mcp.NewToolResultError(fmt.Sprintf("report aggregation failed: %v", err))
	}
	return data, nil
}

func (h *toolHandler) handleGetChartSVG(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaignID := strings.TrimSpace(request.GetString("campaign_id", ""))
	if campaignID == "" {
		return mcp.NewToolResultError("campaign_id is required"), nil
	}
	key := charts.ChartKey(strings.TrimSpace(request.GetString("chart", "")))
	if key == "" {
		return mcp.NewToolResultError("chart is required"), nil
	}

	data, errResult := h.loadReportData(ctx, campaignID, "")
	if errResult != nil {
		return errResult, nil
	}
	scene, ok := charts.FindScene(data, key)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown chart '%s'", key)), nil
	}
	return mcp.NewToolResultText(scene.SVG()), nil
}

func (h *toolHandler) handleListCampaigns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.store()
	if store == nil {
		return mcp.NewToolResultError("survey store is not configured"), nil
	}
	campaigns, err := store.ListCampaigns(ctx, strings.TrimSpace(request.GetString("company_id", "")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing campaigns failed: %v", err)), nil
	}
	if campaigns == nil {
		campaigns = []schema.Campaign{}
	}
	return jsonResult(campaigns)
}
