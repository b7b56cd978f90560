package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/psicosocial/schema"
)

// ResponsesHeader is the header of the response export CSV.
var ResponsesHeader = []string{
	"Empresa",
	"Campaña",
	"Cédula",
	"Fecha Respuesta",
	"Forma",
	"Consentimiento",
	"Intralaboral (JSON)",
	"Extralaboral (JSON)",
	"Estrés (JSON)",
}

// responseRecord flattens one exported response into CSV fields.
func responseRecord(r schema.ResponseExportRow) ([]string, error) {
	consent := "No"
	if r.ConsentAccepted {
		consent = "Sí"
	}
	record := []string{
		r.EmpresaNombre,
		r.CampanaNombre,
		r.Cedula,
		r.CreatedAt.UTC().Format(time.RFC3339),
		string(r.FormType),
		consent,
	}
	for _, answers := range []schema.AnswerSet{r.Intralaboral, r.Extralaboral, r.Estres} {
		data, err := json.Marshal(answers)
		if err != nil {
			return nil, fmt.Errorf("failed to encode answers of %s: %w", r.ID, err)
		}
		record = append(record, string(data))
	}
	return record, nil
}

// WriteResponsesCSV writes exported responses as CSV, one record per response.
func WriteResponsesCSV(w io.Writer, rows []schema.ResponseExportRow) error {
	return writeCSVWithHeader(w, ResponsesHeader, func(csvWriter *csv.Writer) error {
		return writeResponseRecords(csvWriter, rows)
	})
}

func writeResponseRecords(w *csv.Writer, rows []schema.ResponseExportRow) error {
	for _, r := range rows {
		record, err := responseRecord(r)
		if err != nil {
			return err
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}

// responseTables shows the exported responses. The terminal table leaves the
// answer sets out; CSV and XLSX keep them as JSON text.
func responseTables(rows []schema.ResponseExportRow) (tableSet, error) {
	sheet := dataTable{Title: "Resultados", Header: ResponsesHeader}
	for _, r := range rows {
		record, err := responseRecord(r)
		if err != nil {
			return tableSet{}, err
		}
		cells := make([]any, len(record))
		for i, v := range record {
			cells[i] = v
		}
		sheet.Rows = append(sheet.Rows, cells)
	}

	summary := dataTable{Title: "Resultados", Header: ResponsesHeader[:6]}
	for _, r := range rows {
		summary.Rows = append(summary.Rows, []any{r.EmpresaNombre, r.CampanaNombre, r.Cedula, r.CreatedAt, r.FormType, r.ConsentAccepted})
	}

	if rows == nil {
		rows = []schema.ResponseExportRow{}
	}
	return tableSet{
		Tables: []dataTable{sheet},
		JSON:   rows,
		CSV: func(w *csv.Writer, _ cellFormat) error {
			if err := w.Write(ResponsesHeader); err != nil {
				return fmt.Errorf("failed to write CSV header: %w", err)
			}
			return writeResponseRecords(w, rows)
		},
		Text: []dataTable{summary},
	}, nil
}
