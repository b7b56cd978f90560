package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testConfig(t *testing.T, output schema.OutputMode, file string) *contract.Config {
	t.Helper()
	path := ""
	if file != "" {
		path = filepath.Join(t.TempDir(), file)
	}
	return &contract.Config{
		Precision:  1,
		Output:     output,
		OutputFile: path,
		Width:      120,
	}
}

func sampleResults() (schema.FormType, []string, schema.SurveyResults) {
	keys := []string{"Intra - Claridad de rol", "Intra - Capacitación", "Extra - Vivienda", "Estrés - Estrés"}
	results := schema.SurveyResults{
		"Intra - Claridad de rol": {Dimension: "Claridad de rol", Score: 43.75, Level: schema.RiesgoAlto, Answered: 7},
		"Extra - Vivienda":        {Dimension: "Vivienda", Score: 0, Level: schema.SinRiesgo, Answered: 9},
		"Estrés - Estrés":         {Dimension: "Estrés", Score: 12.5, Level: schema.RiesgoBajo, Answered: 31},
	}
	return schema.FormA, keys, results
}

func sampleRiskRow(factor string) schema.RiskTableRow {
	return schema.RiskTableRow{
		Factor:    factor,
		SinRiesgo: schema.RiskCount{Count: 1, Pct: 0.25},
		Bajo:      schema.RiskCount{Count: 1, Pct: 0.25},
		Medio:     schema.RiskCount{},
		Alto:      schema.RiskCount{Count: 2, Pct: 0.5},
		MuyAlto:   schema.RiskCount{},
		Total:     4,
	}
}

func sampleReportData() *schema.ReportData {
	dist := []schema.FrequencyItem{
		{Label: string(schema.SinRiesgo), Count: 3, Percentage: 0.75},
		{Label: string(schema.RiesgoBajo)},
		{Label: string(schema.RiesgoMedio)},
		{Label: string(schema.RiesgoAlto), Count: 1, Percentage: 0.25},
		{Label: string(schema.RiesgoMuyAlto)},
	}
	stress := schema.StressAggregate{Distribution: dist, SintomasEmocionales: dist}
	return &schema.ReportData{
		EmpresaNombre: "Acme SAS",
		EmpresaNit:    "900.123",
		CampanaNombre: "Medición 2025",
		FechaInforme:  "Montería, 5 de marzo de 2025",
		Demographics: schema.Demographics{
			TotalParticipants: 4,
			FormaA:            3,
			FormaB:            1,
			Sexo: []schema.FrequencyItem{
				{Label: "Femenino", Count: 3, Percentage: 0.75},
				{Label: "Masculino", Count: 1, Percentage: 0.25},
			},
		},
		IntralaboralFormaA: []schema.RiskTableRow{sampleRiskRow("Claridad de rol")},
		GeneralRisk: []schema.GeneralRiskRow{
			{RiskTableRow: sampleRiskRow("Claridad de rol"), Tipo: schema.TipoDimension},
		},
		EstresGeneral: stress,
		MatrizIntralaboral: []schema.MatrixRow{
			{Factor: "Claridad de rol", NivelRiesgo: schema.RiesgoAlto, Acciones: "Definir funciones, socializar el manual"},
		},
		PVERows: []schema.PVERow{
			{Evaluacion: "Intralaboral", Porcentaje: "50%", Criterio: "Mayor o igual a 35%", RequiereIngreso: "Sí"},
		},
		DimensionesPriorizadasA: []string{"Claridad de rol"},
	}
}

func sampleExportRows() []schema.ResponseExportRow {
	return []schema.ResponseExportRow{{
		ResponseRecord: schema.ResponseRecord{
			ID:              "r-1",
			Cedula:          "1001",
			FormType:        schema.FormA,
			ConsentAccepted: true,
			Intralaboral:    schema.AnswerSet{"intralaboral_1": "siempre"},
			Extralaboral:    schema.AnswerSet{},
			Estres:          schema.AnswerSet{"estres_1": "nunca"},
			CreatedAt:       time.Date(2025, 3, 5, 14, 30, 0, 0, time.FixedZone("COT", -5*3600)),
		},
		EmpresaNombre: "Acme SAS",
		CampanaNombre: "Medición 2025",
	}}
}

func TestCellFormat(t *testing.T) {
	f := cellFormat{fmtFloat: createFormatter(1), maxWidth: 12}
	when := time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		cell  any
		text  string
		plain string
	}{
		{"short string", "Liderazgo", "Liderazgo", "Liderazgo"},
		{"long string", "Características del liderazgo", "Caracterí...", "Características del liderazgo"},
		{"risk level", schema.SinRiesgo, "Sin riesgo", string(schema.SinRiesgo)},
		{"form", schema.FormB, "B", "B"},
		{"risk count", schema.RiskCount{Count: 2, Pct: 0.5}, "2 (50.0%)", "2 (50.0%)"},
		{"percent", percent(0.125), "12.5%", "12.5%"},
		{"float", 43.75, "43.8", "43.8"},
		{"int", 7, "7", "7"},
		{"bool", true, "Sí", "Sí"},
		{"time", when, "2025-03-05T14:30:00Z", "2025-03-05T14:30:00Z"},
		{"nil", nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, f.text(tt.cell))
			assert.Equal(t, tt.plain, f.plain(tt.cell))
		})
	}
}

func TestGetMaxLabelWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{100, 40},
		{50, 15},
		{300, 70},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, getMaxLabelWidth(&contract.Config{Width: tt.width}))
	}
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "Intralaboral Forma A", sheetName("Intralaboral Forma A", 0, used))
	assert.Equal(t, "intralaboral forma a 2", sheetName("intralaboral forma a", 1, used))
	assert.Equal(t, "Riesgo-PVE", sheetName("Riesgo/PVE?", 2, used))
	assert.Equal(t, "Hoja 4", sheetName(" [] ", 3, used))

	long := sheetName("Síntomas intelectuales y laborales por forma", 4, used)
	assert.Len(t, []rune(long), maxSheetName)
	dup := sheetName("Síntomas intelectuales y laborales por forma", 5, used)
	assert.Len(t, []rune(dup), maxSheetName)
	assert.True(t, strings.HasSuffix(dup, " 2"))
}

func TestScoreTables(t *testing.T) {
	form, keys, results := sampleResults()
	set := scoreTables(form, keys, results)

	require.Len(t, set.Tables, 1)
	assert.Equal(t, "Forma A", set.Tables[0].Title)
	require.Len(t, set.Tables[0].Rows, 3, "keys without a result are skipped")
	assert.Equal(t, "Intra - Claridad de rol", set.Tables[0].Rows[0][0])
	assert.Equal(t, "Estrés - Estrés", set.Tables[0].Rows[2][0])

	var buf bytes.Buffer
	require.NoError(t, writeTableSetCSV(&buf, set, cellFormat{fmtFloat: createFormatter(1)}))
	expected := "key,score,level,answered\n" +
		"Intra - Claridad de rol,43.8,Riesgo alto,7\n" +
		"Extra - Vivienda,0.0,Sin riesgo o riesgo despreciable,9\n" +
		"Estrés - Estrés,12.5,Riesgo bajo,31\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteScores(t *testing.T) {
	form, keys, results := sampleResults()
	ow := NewOutWriter()

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "scores.txt")
		require.NoError(t, ow.WriteScores(form, keys, results, cfg))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		out := string(content)
		assert.True(t, strings.HasPrefix(out, "Forma A\n"))
		assert.Contains(t, out, "Intra - Claridad de rol")
		assert.Contains(t, out, "Riesgo alto")
		assert.Contains(t, out, "43.8")
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut, "scores.json")
		require.NoError(t, ow.WriteScores(form, keys, results, cfg))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(content, &rows))
		require.Len(t, rows, 3)
		assert.Equal(t, "Intra - Claridad de rol", rows[0]["key"])
		assert.Equal(t, "Claridad de rol", rows[0]["dimension"])
		assert.Equal(t, 43.75, rows[0]["score"])
		assert.Equal(t, string(schema.RiesgoAlto), rows[0]["level"])
	})

	t.Run("xlsx", func(t *testing.T) {
		cfg := testConfig(t, schema.XLSXOut, "scores.xlsx")
		require.NoError(t, ow.WriteScores(form, keys, results, cfg))

		f, err := excelize.OpenFile(cfg.OutputFile)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, []string{"Forma A"}, f.GetSheetList())
		rows, err := f.GetRows("Forma A")
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"Dimension", "Score", "Level", "Answered"}, rows[0])
		assert.Equal(t, []string{"Intra - Claridad de rol", "43.8", string(schema.RiesgoAlto), "7"}, rows[1])
	})

	t.Run("xlsx requires a file", func(t *testing.T) {
		err := ow.WriteScores(form, keys, results, testConfig(t, schema.XLSXOut, ""))
		assert.ErrorContains(t, err, "--output-file")
	})

	t.Run("parquet is rejected", func(t *testing.T) {
		err := ow.WriteScores(form, keys, results, testConfig(t, schema.ParquetOut, "scores.parquet"))
		assert.ErrorContains(t, err, "parquet")
	})
}

func TestReportTables(t *testing.T) {
	set := reportTables(sampleReportData())

	titles := make([]string, 0, len(set.Tables))
	for _, tbl := range set.Tables {
		titles = append(titles, tbl.Title)
	}
	assert.Equal(t, []string{
		"Resumen", "Ficha sociodemográfica",
		"Intralaboral Forma A", "Intralaboral Forma B",
		"Dominios Forma A", "Dominios Forma B",
		"Extralaboral Forma A", "Extralaboral Forma B",
		"Riesgo general", "Estrés", "Síntomas de estrés",
		"Matriz intralaboral", "Matriz extralaboral",
		"PVE", "Dimensiones priorizadas",
	}, titles)

	summary := set.Tables[0]
	assert.Equal(t, []any{"Empresa", "Acme SAS"}, summary.Rows[0])
	assert.Equal(t, []any{"Participantes", 4}, summary.Rows[4])

	demo := set.Tables[1]
	require.Len(t, demo.Rows, 2)
	assert.Equal(t, []any{"Sexo", "Femenino", 3, percent(0.75)}, demo.Rows[0])

	general := set.Tables[8]
	require.Len(t, general.Rows, 1)
	assert.Equal(t, percent(0.5), general.Rows[0][4])
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	set := reportTables(sampleReportData())
	require.NoError(t, writeTableSetCSV(&buf, set, cellFormat{fmtFloat: createFormatter(1)}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"tabla", "factor", "nivel", "cantidad", "porcentaje"}, records[0])
	assert.Equal(t, []string{"Ficha sociodemográfica", "Sexo", "Femenino", "3", "75.0"}, records[1])
	assert.Contains(t, records, []string{"Intralaboral Forma A", "Claridad de rol", string(schema.RiesgoAlto), "2", "50.0"})
	assert.Contains(t, records, []string{"Estrés general", "Síntomas emocionales", string(schema.RiesgoAlto), "1", "25.0"})

	// header, sexo, one risk row and the general stress levels with one symptom group
	assert.Len(t, records, 1+2+5+5+5)
}

func TestWriteReportData(t *testing.T) {
	ow := NewOutWriter()
	data := sampleReportData()

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "report.txt")
		require.NoError(t, ow.WriteReportData(data, cfg))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		out := string(content)
		for _, want := range []string{"Resumen", "Acme SAS", "Matriz intralaboral", "2 (50.0%)", "Dimensiones priorizadas"} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("xlsx", func(t *testing.T) {
		cfg := testConfig(t, schema.XLSXOut, "report.xlsx")
		require.NoError(t, ow.WriteReportData(data, cfg))

		f, err := excelize.OpenFile(cfg.OutputFile)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		sheets := f.GetSheetList()
		assert.Len(t, sheets, 15)
		assert.Equal(t, "Resumen", sheets[0])

		value, err := f.GetCellValue("Matriz intralaboral", "C2")
		require.NoError(t, err)
		assert.Equal(t, "Definir funciones, socializar el manual", value)
	})
}

func TestWriteResponsesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponsesCSV(&buf, sampleExportRows()))

	expected := "Empresa,Campaña,Cédula,Fecha Respuesta,Forma,Consentimiento,Intralaboral (JSON),Extralaboral (JSON),Estrés (JSON)\n" +
		`Acme SAS,Medición 2025,1001,2025-03-05T19:30:00Z,A,Sí,"{""intralaboral_1"":""siempre""}",{},"{""estres_1"":""nunca""}"` + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteResponses(t *testing.T) {
	ow := NewOutWriter()

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "resultados.csv")
		require.NoError(t, ow.WriteResponses(sampleExportRows(), cfg))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)

		var direct bytes.Buffer
		require.NoError(t, WriteResponsesCSV(&direct, sampleExportRows()))
		assert.Equal(t, direct.String(), string(content))
	})

	t.Run("text leaves answers out", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "resultados.txt")
		require.NoError(t, ow.WriteResponses(sampleExportRows(), cfg))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "1001")
		assert.NotContains(t, string(content), "intralaboral_1")
	})

	t.Run("json empty", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut, "resultados.json")
		require.NoError(t, ow.WriteResponses(nil, cfg))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(content))
	})

	t.Run("xlsx sheet", func(t *testing.T) {
		cfg := testConfig(t, schema.XLSXOut, "resultados.xlsx")
		require.NoError(t, ow.WriteResponses(sampleExportRows(), cfg))
		f, err := excelize.OpenFile(cfg.OutputFile)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, []string{"Resultados"}, f.GetSheetList())
		value, err := f.GetCellValue("Resultados", "G2")
		require.NoError(t, err)
		assert.Equal(t, `{"intralaboral_1":"siempre"}`, value)
	})
}

func TestWriteCompaniesAndCampaigns(t *testing.T) {
	ow := NewOutWriter()
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	cfg := testConfig(t, schema.CSVOut, "empresas.csv")
	require.NoError(t, ow.WriteCompanies([]schema.Company{{ID: "e-1", Name: "Acme", Nit: "900", CreatedAt: created}}, cfg))
	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "ID,Nombre,NIT,Creada\ne-1,Acme,900,2025-01-02T03:04:05Z\n", string(content))

	cfg = testConfig(t, schema.CSVOut, "campanas.csv")
	require.NoError(t, ow.WriteCampaigns([]schema.Campaign{{ID: "c-1", CompanyID: "e-1", Name: "2025", Token: "abc", IsActive: false, CreatedAt: created}}, cfg))
	content, err = os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "ID,Empresa,Nombre,Token,Activa,Creada\nc-1,e-1,2025,abc,No,2025-01-02T03:04:05Z\n", string(content))

	cfg = testConfig(t, schema.JSONOut, "empresas.json")
	require.NoError(t, ow.WriteCompanies(nil, cfg))
	content, err = os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(content))
}
