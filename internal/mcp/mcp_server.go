// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the survey MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Psicosocial Survey Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_survey ---
	s.AddTool(mcp.NewTool("score_survey",
		mcp.WithDescription("Score one respondent's intralaboral, extralaboral and stress answers."),
		mcp.WithString("form", mcp.Description("Intralaboral form variant. Defaults to 'A'."), mcp.Enum("A", "B")),
		mcp.WithString("answers", mcp.Description(`Answers as JSON: {"intralaboral":{...},"extralaboral":{...},"estres":{...}}.`), mcp.Required()),
	), h.handleScoreSurvey)

	// --- 2. Tool: get_report_data ---
	s.AddTool(mcp.NewTool("get_report_data",
		mcp.WithDescription("Aggregate a campaign's responses into risk tables, stress distributions, matrices and PVE rows."),
		mcp.WithString("campaign_id", mcp.Description("The campaign to aggregate."), mcp.Required()),
		mcp.WithString("city", mcp.Description("City shown in the report date line.")),
	), h.handleGetReportData)

	// --- 3. Tool: list_campaigns ---
	s.AddTool(mcp.NewTool("list_campaigns",
		mcp.WithDescription("List survey campaigns with their access tokens."),
		mcp.WithString("company_id", mcp.Description("Only list the campaigns of this company.")),
	), h.handleListCampaigns)

	// --- 4. Tool: get_chart_svg ---
	s.AddTool(mcp.NewTool("get_chart_svg",
		mcp.WithDescription("Render one chart of a campaign's report as an SVG document."),
		mcp.WithString("campaign_id", mcp.Description("The campaign to chart."), mcp.Required()),
		mcp.WithString("chart", mcp.Description("Chart key, e.g. 'sexo' or 'intralaboralFormaA'."), mcp.Required()),
	), h.handleGetChartSVG)

	return s
}

// StartMCPServer starts the survey MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
