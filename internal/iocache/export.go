package iocache

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/internal/parquet"
)

// DimensionScoresSuffix is appended to the output path for the long-format scores file.
const DimensionScoresSuffix = ".dimension_scores.parquet"

// ExecuteResponseExport writes the stored responses of a campaign (or of every
// campaign when campaignID is empty) to outputFile and their per-dimension
// scores to outputFile+DimensionScoresSuffix.
func ExecuteResponseExport(ctx context.Context, store contract.SurveyStore, campaignID, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for parquet export")
	}

	rows, err := store.ExportResponses(ctx, campaignID)
	if err != nil {
		return fmt.Errorf("failed to retrieve responses: %w", err)
	}
	if len(rows) == 0 {
		return errors.New("no survey responses found to export")
	}

	responses, err := parquet.ConvertResponseRows(rows)
	if err != nil {
		return err
	}
	scores := parquet.ConvertDimensionScores(rows)

	if err := parquet.WriteResponsesParquet(responses, outputFile); err != nil {
		return fmt.Errorf("failed to write responses: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d responses to: %s\n", len(responses), outputFile)

	scoresFile := outputFile + DimensionScoresSuffix
	if err := parquet.WriteDimensionScoresParquet(scores, scoresFile); err != nil {
		return fmt.Errorf("failed to write dimension scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d dimension scores to: %s\n", len(scores), scoresFile)
	return nil
}
