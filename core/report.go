package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/psicosocial/core/agg"
	"github.com/huangsam/psicosocial/internal/charts"
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/internal/docx"
	"github.com/huangsam/psicosocial/schema"
)

// DocxContentType is the media type of generated reports.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ReportOptions configure a report build.
type ReportOptions struct {
	City         string
	TemplatePath string // Empty means the built-in template
	Workers      int
	Now          time.Time
}

// ReportDocument is a generated report ready to be written or served.
type ReportDocument struct {
	FileName string
	Content  []byte
	Missing  []string // template markers that were not found
}

// ReportFileName returns the download name of a company's report.
func ReportFileName(company string, now time.Time) string {
	return fmt.Sprintf("Informe_Riesgo_Psicosocial_%s_%s.docx", schema.SafeFileComponent(company, 40), now.UTC().Format(time.DateOnly))
}

// ChartsDirName returns the default directory of a company's SVG charts.
func ChartsDirName(company string, now time.Time) string {
	return fmt.Sprintf("Graficos_%s_%s", schema.SafeFileComponent(company, 40), now.UTC().Format(time.DateOnly))
}

// WriteChartSVGs writes every report chart to dir as <key>.svg and returns
// the written paths in report order.
func WriteChartSVGs(dir string, data *schema.ReportData) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create charts directory: %w", err)
	}
	scenes := charts.ReportScenes(data)
	paths := make([]string, 0, len(scenes))
	for _, c := range scenes {
		path := filepath.Join(dir, string(c.Key)+".svg")
		if err := os.WriteFile(path, []byte(c.Scene.SVG()), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write chart %s: %w", c.Key, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// LoadReportData loads a campaign and aggregates its responses.
// A campaign without responses yields schema.ErrNoResponses.
func LoadReportData(ctx context.Context, store contract.SurveyStore, campaignID string, opts ReportOptions) (*schema.ReportData, error) {
	if store == nil {
		return nil, errors.New("survey store is not configured")
	}
	data, err := store.LoadCampaignData(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if len(data.Responses) == 0 {
		return nil, schema.ErrNoResponses
	}
	report := agg.ProcessReportData(data, agg.Options{City: opts.City, Now: opts.Now})
	return &report, nil
}

// loadTemplate reads the configured template or falls back to the built-in one.
func loadTemplate(path string) ([]byte, error) {
	if path == "" {
		return docx.DefaultTemplate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read template: %w", err)
	}
	return data, nil
}

// BuildReportDocument aggregates a campaign, renders every chart and fills
// the report template. It backs the CLI, HTTP and MCP report surfaces.
func BuildReportDocument(ctx context.Context, store contract.SurveyStore, campaignID string, opts ReportOptions) (*ReportDocument, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.City == "" {
		opts.City = contract.DefaultCity
	}

	data, err := LoadReportData(ctx, store, campaignID, opts)
	if err != nil {
		return nil, err
	}

	template, err := loadTemplate(opts.TemplatePath)
	if err != nil {
		return nil, err
	}

	images, err := charts.RenderAll(ctx, data, opts.Workers, chartProgress(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to render charts: %w", err)
	}

	content, res, err := docx.Render(template, data, images, opts.Now)
	if err != nil {
		return nil, err
	}
	return &ReportDocument{
		FileName: ReportFileName(data.EmpresaNombre, opts.Now),
		Content:  content,
		Missing:  res.Missing,
	}, nil
}
