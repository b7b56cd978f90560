// Package parquet provides data structures and functions for exporting survey
// responses to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/psicosocial/schema"
	"github.com/parquet-go/parquet-go"
)

// Response represents one stored survey response with its campaign context.
// Answer sets are kept as JSON text so every question survives the export.
type Response struct {
	ResponseID      string    `parquet:"response_id,snappy"`
	CampaignID      string    `parquet:"campaign_id,snappy"`
	Empresa         string    `parquet:"empresa,snappy"`
	Campana         string    `parquet:"campana,snappy"`
	Cedula          string    `parquet:"cedula,snappy"`
	Email           *string   `parquet:"email,optional,snappy"`
	FormType        string    `parquet:"form_type,snappy"`
	ConsentAccepted bool      `parquet:"consent_accepted"`
	CreatedAt       time.Time `parquet:"created_at,snappy"`
	Ficha           string    `parquet:"ficha,snappy"`
	Intralaboral    string    `parquet:"intralaboral,snappy"`
	Extralaboral    string    `parquet:"extralaboral,snappy"`
	Estres          string    `parquet:"estres,snappy"`
}

// DimensionScore is one dimension result of one response, in long format.
type DimensionScore struct {
	ResponseID string    `parquet:"response_id,snappy"`
	CampaignID string    `parquet:"campaign_id,snappy"`
	FormType   string    `parquet:"form_type,snappy"`
	Namespace  string    `parquet:"namespace,snappy"`
	Dimension  string    `parquet:"dimension,snappy"`
	Score      float64   `parquet:"score,snappy"`
	Level      string    `parquet:"level,snappy"`
	Answered   int32     `parquet:"answered,snappy"`
	CreatedAt  time.Time `parquet:"created_at,snappy"`
}

// namespaces maps a result key prefix to its short namespace label.
var namespaces = []struct {
	prefix string
	label  string
}{
	{schema.IntraKeyPrefix, "Intralaboral"},
	{schema.ExtraKeyPrefix, "Extralaboral"},
	{schema.EstresKeyPrefix, "Estrés"},
}

func splitKey(key string) (namespace, dimension string) {
	for _, ns := range namespaces {
		if rest, ok := strings.CutPrefix(key, ns.prefix); ok {
			return ns.label, rest
		}
	}
	return "", key
}

func jsonText(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ConvertResponseRows converts exported store rows into Parquet rows.
func ConvertResponseRows(rows []schema.ResponseExportRow) ([]Response, error) {
	out := make([]Response, 0, len(rows))
	for _, r := range rows {
		rec := Response{
			ResponseID:      r.ID,
			CampaignID:      r.CampaignID,
			Empresa:         r.EmpresaNombre,
			Campana:         r.CampanaNombre,
			Cedula:          r.Cedula,
			FormType:        string(r.FormType),
			ConsentAccepted: r.ConsentAccepted,
			CreatedAt:       r.CreatedAt,
		}
		if r.Email != "" {
			email := r.Email
			rec.Email = &email
		}
		fields := []struct {
			dst *string
			src any
		}{
			{&rec.Ficha, r.Ficha},
			{&rec.Intralaboral, r.Intralaboral},
			{&rec.Extralaboral, r.Extralaboral},
			{&rec.Estres, r.Estres},
		}
		for _, f := range fields {
			text, err := jsonText(f.src)
			if err != nil {
				return nil, fmt.Errorf("failed to encode response %s: %w", r.ID, err)
			}
			*f.dst = text
		}
		out = append(out, rec)
	}
	return out, nil
}

// ConvertDimensionScores flattens the stored results of every row into one
// Parquet row per dimension, ordered by response and then by result key.
func ConvertDimensionScores(rows []schema.ResponseExportRow) []DimensionScore {
	var out []DimensionScore
	for _, r := range rows {
		keys := make([]string, 0, len(r.Results))
		for k := range r.Results {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			res := r.Results[k]
			ns, dim := splitKey(k)
			out = append(out, DimensionScore{
				ResponseID: r.ID,
				CampaignID: r.CampaignID,
				FormType:   string(r.FormType),
				Namespace:  ns,
				Dimension:  dim,
				Score:      res.Score,
				Level:      string(res.Level),
				Answered:   int32(res.Answered),
				CreatedAt:  r.CreatedAt,
			})
		}
	}
	return out
}

// writeParquet writes rows to a new Parquet file whose schema is derived
// from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteResponsesParquet writes a slice of Response structs to a Parquet file.
func WriteResponsesParquet(data []Response, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDimensionScoresParquet writes a slice of DimensionScore structs to a Parquet file.
func WriteDimensionScoresParquet(data []DimensionScore, outputPath string) error {
	return writeParquet(data, outputPath)
}
