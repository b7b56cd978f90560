// Package core has core logic for scoring, submission and report orchestration.
package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/psicosocial/internal/charts"
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/internal/iocache"
	"github.com/huangsam/psicosocial/internal/outwriter"
	"github.com/huangsam/psicosocial/schema"
)

// ExecutorFunc defines the function signature for executing the survey commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// errNoStore is returned when a command needs the survey store but none is configured.
var errNoStore = errors.New("survey store is not configured")

// surveyStore returns the configured store or errNoStore.
func surveyStore(mgr contract.StoreManager) (contract.SurveyStore, error) {
	if mgr == nil {
		return nil, errNoStore
	}
	store := mgr.GetSurveyStore()
	if store == nil {
		return nil, errNoStore
	}
	return store, nil
}

// readAnswers decodes an answers file. The path "-" reads standard input.
func readAnswers(path string) (schema.SurveyAnswers, error) {
	var answers schema.SurveyAnswers
	if path == "" {
		return answers, errors.New("--answers is required")
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return answers, fmt.Errorf("cannot read answers: %w", err)
	}
	if err := json.Unmarshal(data, &answers); err != nil {
		return answers, fmt.Errorf("invalid answers file %s: %w", path, err)
	}
	return answers, nil
}

// ExecuteScore scores one answers file and prints one row per dimension.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	answers, err := readAnswers(cfg.AnswersPath)
	if err != nil {
		return err
	}
	form := cfg.FormType
	if form == "" {
		form = schema.FormA
	}
	results := ProcessSurvey(form, answers)
	return outwriter.NewOutWriter().WriteScores(form, OrderedResultKeys(form), results, cfg)
}

// ExecuteReport builds the report of a campaign. The data format prints the
// aggregate in the configured output mode; the charts format writes one SVG
// per chart into the --output-file directory; the docx format writes the
// filled template to --output-file or to the default report name.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.CampaignID == "" {
		return errors.New("--campaign is required")
	}
	store, err := surveyStore(mgr)
	if err != nil {
		return err
	}
	opts := ReportOptions{
		City:         cfg.City,
		TemplatePath: cfg.TemplatePath,
		Workers:      cfg.Workers,
		Now:          time.Now(),
	}

	switch cfg.ReportFormat {
	case schema.DataReport:
		data, err := LoadReportData(ctx, store, cfg.CampaignID, opts)
		if err != nil {
			return err
		}
		return outwriter.NewOutWriter().WriteReportData(data, cfg)
	case schema.ChartsReport:
		data, err := LoadReportData(ctx, store, cfg.CampaignID, opts)
		if err != nil {
			return err
		}
		dir := cfg.OutputFile
		if dir == "" {
			dir = ChartsDirName(data.EmpresaNombre, opts.Now)
		}
		paths, err := WriteChartSVGs(dir, data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(os.Stdout, "%d charts written to: %s\n", len(paths), dir)
		return err
	}

	bar := newTracker(os.Stderr, "Rendering charts", charts.ChartCount)
	doc, err := BuildReportDocument(withChartProgress(ctx, bar.Tick), store, cfg.CampaignID, opts)
	bar.Finish()
	if err != nil {
		return err
	}

	outputFile := cfg.OutputFile
	if outputFile == "" {
		outputFile = doc.FileName
	}
	if err := os.WriteFile(outputFile, doc.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	_, err = fmt.Fprintf(os.Stdout, "Report written to: %s\n", outputFile)
	return err
}

// ExportFileName returns the default name of a CSV response export.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("resultados-%s.csv", now.UTC().Format(time.DateOnly))
}

// ExecuteExport exports stored responses, newest first. An empty campaign
// exports every campaign.
func ExecuteExport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := surveyStore(mgr)
	if err != nil {
		return err
	}

	if cfg.Output == schema.ParquetOut {
		return iocache.ExecuteResponseExport(ctx, store, cfg.CampaignID, cfg.OutputFile, os.Stdout)
	}

	rows, err := store.ExportResponses(ctx, cfg.CampaignID)
	if err != nil {
		return fmt.Errorf("failed to export responses: %w", err)
	}

	out := *cfg
	if out.Output == schema.CSVOut && out.OutputFile == "" {
		out.OutputFile = ExportFileName(time.Now())
	}
	return outwriter.NewOutWriter().WriteResponses(rows, &out)
}
