package outwriter

import (
	"encoding/csv"
	"fmt"

	"github.com/huangsam/psicosocial/schema"
)

// scoreRow is the JSON shape of one scored dimension.
type scoreRow struct {
	Key string `json:"key"`
	schema.DimensionResult
}

// scoreTables lays out one respondent's results in the given key order.
// Keys missing from results are skipped.
func scoreTables(form schema.FormType, keys []string, results schema.SurveyResults) tableSet {
	table := dataTable{
		Title:  fmt.Sprintf("Forma %s", form),
		Header: []string{"Dimension", "Score", "Level", "Answered"},
	}
	rows := make([]scoreRow, 0, len(keys))
	for _, key := range keys {
		res, ok := results[key]
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, []any{key, res.Score, res.Level, res.Answered})
		rows = append(rows, scoreRow{Key: key, DimensionResult: res})
	}

	return tableSet{
		Tables: []dataTable{table},
		JSON:   rows,
		CSV: func(w *csv.Writer, f cellFormat) error {
			if err := w.Write([]string{"key", "score", "level", "answered"}); err != nil {
				return fmt.Errorf("failed to write CSV header: %w", err)
			}
			for _, r := range rows {
				record := []string{r.Key, f.fmtFloat(r.Score), string(r.Level), f.plain(r.Answered)}
				if err := w.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			return nil
		},
	}
}
