package docx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/psicosocial/core/agg"
	"github.com/huangsam/psicosocial/core/algo"
	"github.com/huangsam/psicosocial/internal/charts"
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
)

var errMarkerNotFound = errors.New("marker not found")

// chartSlot places one chart at the template paragraph or cell holding marker.
type chartSlot struct {
	marker string
	key    charts.ChartKey
	cx, cy int64
}

var chartSlots = []chartSlot{
	{"Gráfico 1: Genero", charts.ChartSexo, EMUFull, EMUHeightFull},
	{"Gráfico 2: Promedio de edad", charts.ChartRangoEdad, EMUFull, EMUHeightFull},
	{"Gráfico 3: Nivel de estudios", charts.ChartNivelEstudios, EMUFull, EMUHeightFull},
	{"Gráfico 4: Tipo de vivienda", charts.ChartTipoVivienda, EMUFull, EMUHeightFull},
	{"Gráfico 5: Estado civil", charts.ChartEstadoCivil, EMUFull, EMUHeightFull},
	{"Gráfico 6: Nivel socioeconómico", charts.ChartEstrato, EMUFull, EMUHeightFull},
	{"Gráfico 7: Personas a cargo", charts.ChartPersonasACargo, EMUFull, EMUHeightFull},
	{"Gráfico 8: Antigüedad en la empresa", charts.ChartAniosEmpresa, EMUFull, EMUHeightFull},
	{"Gráfico 9: antigüedad en el cargo", charts.ChartAniosCargo, EMUFull, EMUHeightFull},
	{"Gráfico 10: Niveles jerárquicos", charts.ChartTipoCargo, EMUFull, EMUHeightFull},
	{"Gráfico 11: Tipo de contrato", charts.ChartTipoContrato, EMUFull, EMUHeightFull},
	{"Gráfico 12: Tipo de salario", charts.ChartTipoSalario, EMUFull, EMUHeightFull},
	{"Gráfico 13: Ocupación u oficio", charts.ChartOcupacion, EMUFull, EMUHeightFull},
	{"Gráfico 14: Horas de trabajo al día", charts.ChartHorasDiarias, EMUFull, EMUHeightFull},
	{"Gráfico 15: Ciudad de residencia", charts.ChartCiudadResidencia, EMUFull, EMUHeightFull},
	{"Gráfico 16: Departamento de residencia", charts.ChartDeptResidencia, EMUFull, EMUHeightFull},
	{"Gráfico 17: Ciudad donde trabaja actualmente", charts.ChartCiudadTrabajo, EMUFull, EMUHeightFull},
	{"Gráfico 18: Departamentos donde trabaja actualmente", charts.ChartDeptTrabajo, EMUFull, EMUHeightFull},
	{"Gráfico 19: Factores intralaborales Forma A", charts.ChartIntralaboralFormaA, EMUHalf, EMUHeightHalf},
	{"Gráfico 20: Factores intralaborales", charts.ChartIntralaboralFormaB, EMUHalf, EMUHeightHalf},
	{"Gráfico 21: Factores extralaborales forma A", charts.ChartExtralaboralFormaA, EMUHalf, EMUHeightHalf},
	{"Gráfico 22: Factores extralaborales forma B", charts.ChartExtralaboralFormaB, EMUHalf, EMUHeightHalf},
	{"Gráfico 23: Estrés TOTAL GENERAL", charts.ChartEstresGeneral, EMUHalf, EMUHeightHalf},
	{"Gráfico 24: Principales síntomas del estrés", charts.ChartEstresGeneralSintomas, EMUHalf, EMUHeightHalf},
	{"Gráfico 25: Estrés forma A", charts.ChartEstresFormaA, EMUHalf, EMUHeightHalf},
	{"Gráfico 26: Principales síntomas del estrés. Forma A", charts.ChartEstresFormaASintomas, EMUHalf, EMUHeightHalf},
	{"Gráfico 27: Estrés forma B", charts.ChartEstresFormaB, EMUHalf, EMUHeightHalf},
	{"Gráfico 28: Principales síntomas de estrés. Forma B", charts.ChartEstresFormaBSintomas, EMUHalf, EMUHeightHalf},
	{"Gráfico 29: Factores - Total general", charts.ChartGeneralFactores, EMUFull, EMUHeightFull},
	{"Gráfico 30: Factores - Forma A", charts.ChartGeneralFormaA, EMUHalf, EMUHeightHalf},
	{"Gráfico 31: Factores forma B", charts.ChartGeneralFormaB, EMUHalf, EMUHeightHalf},
}

// Table captions and the PVE table marker.
const (
	CaptionIntralaboral = "Tabla 14: Análisis intralaboral"
	CaptionDominios     = "Tabla 15: Análisis intralaboral por dominios"
	CaptionExtralaboral = "Tabla 16: Análisis extralaboral por dimensiones"
	CaptionGeneral      = "Tabla 17: análisis de la empresa a nivel general"
	CaptionMatrizIntra  = "Tabla 18: Matriz de dimensiones"
	CaptionMatrizExtra  = "Tabla 19: Matriz de intervención extralaboral"
	MarkerPVETable      = "Resultados de la evaluaci"
)

// Placeholder phrases replaced with the company name, most specific first.
var companyPlaceholders = []string{
	"Nombre de la empresa cliente",
	"NOMBRE DE LA EMPRESA CLIENTE",
	"NOMBRE DE LA EMPRESA",
	"Nombre de la empresa",
	"Logo empresa cliente",
}

// Conclusion placeholders, in template order.
const (
	ConclusionSexo         = "Conclusiones sexo y distribución geográfica."
	ConclusionEscolaridad  = "Conclusiones nivel de escolaridad y ocupaciones."
	ConclusionContrato     = "Conclusiones tipo de contrato y horas de la jornada laboral."
	ConclusionFormaA       = "Conclusiones Forma A."
	ConclusionFormaB       = "Conclusiones Forma B."
	ConclusionDominios     = "Conclusiones dominios."
	ConclusionIntralaboral = "Conclusiones intralaborales."
	ConclusionIntraAreas   = "Conclusiones intralaborales áreas y cargos."
	ConclusionExtralaboral = "Conclusiones extralaborales áreas y cargos."
)

// Example values left in the template by its authors.
const (
	templateParticipants    = "133 colaboradores"
	templateReportDate      = "Montería, fecha"
	templateNit             = "Nit."
	templateDateRun         = "fecha"
	templateFormCountsLower = "Forma A: 13 y Forma B: 120"
	templateFormCountsUpper = "Forma A: 13 Y Forma B: 120"
)

var templateExampleDates = []string{"26/08/2023", "30/08/2023"}

// conclusionOrder keeps conclusions in template order since maps do not.
var conclusionOrder = []string{
	ConclusionSexo, ConclusionEscolaridad, ConclusionContrato,
	ConclusionFormaA, ConclusionFormaB, ConclusionDominios,
	ConclusionIntralaboral, ConclusionIntraAreas, ConclusionExtralaboral,
}

func findLabel(items []schema.FrequencyItem, fragment string) (schema.FrequencyItem, bool) {
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Label), fragment) {
			return it, true
		}
	}
	return schema.FrequencyItem{}, false
}

func priorityText(names []string, found, none string) string {
	if len(names) == 0 {
		return none
	}
	return found + strings.Join(names, ", ") + "."
}

// Conclusions returns the text written over each conclusion placeholder.
func Conclusions(data *schema.ReportData) map[string]string {
	dem := data.Demographics

	sexo := fmt.Sprintf("Total de trabajadores evaluados: %d.", dem.TotalParticipants)
	fem, okF := findLabel(dem.Sexo, "femen")
	masc, okM := findLabel(dem.Sexo, "mascul")
	if okF && okM {
		sexo = fmt.Sprintf("La población evaluada está conformada por %.1f%% de mujeres y %.1f%% de hombres. Total evaluados: %d trabajadores.",
			fem.Percentage*100, masc.Percentage*100, dem.TotalParticipants)
	}

	var edu []string
	for _, e := range dem.NivelEstudios[:min(2, len(dem.NivelEstudios))] {
		edu = append(edu, fmt.Sprintf("%s (%.0f%%)", e.Label, e.Percentage*100))
	}

	contrato, contratoPct := "N/A", 0.0
	if len(dem.TipoContrato) > 0 {
		contrato, contratoPct = dem.TipoContrato[0].Label, dem.TipoContrato[0].Percentage
	}
	horas := "N/A"
	if len(dem.HorasDiarias) > 0 {
		horas = dem.HorasDiarias[0].Label
	}

	out := make(map[string]string, len(conclusionOrder))
	out[ConclusionSexo] = sexo
	out[ConclusionEscolaridad] = "Los niveles de escolaridad más frecuentes son: " + strings.Join(edu, " y ") + "."
	out[ConclusionContrato] = fmt.Sprintf("El tipo de contrato predominante es %q (%.0f%%). Las horas diarias más reportadas: %s.",
		contrato, contratoPct*100, horas)
	out[ConclusionFormaA] = priorityText(data.DimensionesPriorizadasA,
		"Las dimensiones intralaborales priorizadas (Forma A) son: ",
		"No se identificaron dimensiones de alto riesgo prioritarias en Forma A.")
	out[ConclusionFormaB] = priorityText(data.DimensionesPriorizadasB,
		"Las dimensiones intralaborales priorizadas (Forma B) son: ",
		"No se identificaron dimensiones de alto riesgo prioritarias en Forma B.")
	out[ConclusionDominios] = "Los dominios con mayor nivel de riesgo se priorizan para intervención organizacional conforme a los resultados obtenidos."
	out[ConclusionIntralaboral] = fmt.Sprintf("El análisis intralaboral incluyó %d trabajadores: Forma A (%d) y Forma B (%d).",
		dem.FormaA+dem.FormaB, dem.FormaA, dem.FormaB)
	out[ConclusionIntraAreas] = "Se recomienda revisar los factores de riesgo prioritarios por área y cargo para focalizar las intervenciones."
	out[ConclusionExtralaboral] = priorityText(data.DimensionesExtralaboralesPriorizadas,
		"Las dimensiones extralaborales priorizadas son: ",
		"No se identificaron dimensiones extralaborales de riesgo alto prioritarias.")
	return out
}

// FillResult lists the captions and markers that were not found in the template.
type FillResult struct {
	Missing []string
}

func (r *FillResult) miss(kind, marker string) {
	r.Missing = append(r.Missing, marker)
	contract.LogWarn("Template "+kind+" skipped", fmt.Errorf("%w: %q", errMarkerNotFound, marker))
}

// Fill writes report data and chart images into a loaded template. Missing
// captions and markers are logged and skipped; the document is still valid.
func Fill(doc *Document, data *schema.ReportData, images charts.ReportCharts, now time.Time) FillResult {
	var res FillResult
	dem := data.Demographics
	today := agg.FormatFecha(now)

	for _, ph := range companyPlaceholders {
		doc.ReplaceText(ph, data.EmpresaNombre, true)
	}
	if data.EmpresaNit != "" {
		doc.ReplaceRun(func(s string) bool { return s == templateNit }, data.EmpresaNit)
	}
	doc.ReplaceText(templateReportDate, data.FechaInforme, false)
	doc.ReplaceRun(func(s string) bool { return strings.TrimSpace(s) == templateDateRun }, today)
	for _, d := range templateExampleDates {
		doc.ReplaceText(d, today, false)
	}
	doc.ReplaceText(templateParticipants, strconv.Itoa(dem.TotalParticipants)+" colaboradores", false)
	counts := fmt.Sprintf("Forma A: %d y Forma B: %d", dem.FormaA, dem.FormaB)
	doc.ReplaceText(templateFormCountsLower, counts, false)
	doc.ReplaceText(templateFormCountsUpper, counts, false)

	conclusions := Conclusions(data)
	for _, ph := range conclusionOrder {
		if !doc.SetParagraphText(ph, conclusions[ph]) {
			res.miss("conclusion", ph)
		}
	}

	general := make([]schema.RiskTableRow, len(data.GeneralRisk))
	for i, g := range data.GeneralRisk {
		general[i] = g.RiskTableRow
	}
	inserts := []struct {
		caption string
		table   *Node
	}{
		{CaptionIntralaboral, RiskTable(dedupe(data.IntralaboralFormaA, data.IntralaboralFormaB))},
		{CaptionDominios, RiskTable(dedupe(data.DominiosFormaA, data.DominiosFormaB))},
		{CaptionExtralaboral, RiskTable(dedupe(data.ExtralaboralFormaA, data.ExtralaboralFormaB))},
		{CaptionGeneral, RiskTable(dedupe(general, nil))},
		{CaptionMatrizIntra, MatrixTable(data.MatrizIntralaboral)},
		{CaptionMatrizExtra, MatrixTable(data.MatrizExtralaboral)},
	}
	for _, in := range inserts {
		if !doc.InsertAfterParagraph(in.caption, in.table) {
			res.miss("table caption", in.caption)
		}
	}

	if !doc.ReplaceTable(MarkerPVETable, PVETable(data.PVERows)) {
		res.miss("table", MarkerPVETable)
	}

	for _, slot := range chartSlots {
		png, ok := images[slot.key]
		if !ok {
			continue
		}
		if !doc.InjectImage(slot.marker, png, slot.cx, slot.cy) {
			res.miss("chart marker", slot.marker)
		}
	}
	return res
}

func dedupe(a, b []schema.RiskTableRow) []schema.RiskTableRow {
	rows := make([]schema.RiskTableRow, 0, len(a)+len(b))
	rows = append(rows, a...)
	rows = append(rows, b...)
	return algo.DedupeByFactor(rows)
}

// Render loads a template, fills it and returns the finished document.
func Render(template []byte, data *schema.ReportData, images charts.ReportCharts, now time.Time) ([]byte, FillResult, error) {
	doc, err := Load(template)
	if err != nil {
		return nil, FillResult{}, err
	}
	res := Fill(doc, data, images, now)
	out, err := doc.Save()
	if err != nil {
		return nil, res, fmt.Errorf("failed to write report: %w", err)
	}
	return out, res, nil
}
