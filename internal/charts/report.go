package charts

import (
	"context"
	"fmt"

	"github.com/huangsam/psicosocial/schema"
	"github.com/sourcegraph/conc/pool"
)

// ChartKey names one chart of the report.
type ChartKey string

// Report chart keys.
const (
	ChartSexo                  ChartKey = "sexo"
	ChartRangoEdad             ChartKey = "rangoEdad"
	ChartNivelEstudios         ChartKey = "nivelEstudios"
	ChartTipoVivienda          ChartKey = "tipoVivienda"
	ChartEstadoCivil           ChartKey = "estadoCivil"
	ChartEstrato               ChartKey = "estrato"
	ChartPersonasACargo        ChartKey = "personasACargo"
	ChartAniosEmpresa          ChartKey = "aniosEmpresa"
	ChartAniosCargo            ChartKey = "aniosCargo"
	ChartTipoCargo             ChartKey = "tipoCargo"
	ChartTipoContrato          ChartKey = "tipoContrato"
	ChartTipoSalario           ChartKey = "tipoSalario"
	ChartOcupacion             ChartKey = "ocupacion"
	ChartHorasDiarias          ChartKey = "horasDiarias"
	ChartCiudadResidencia      ChartKey = "ciudadResidencia"
	ChartDeptResidencia        ChartKey = "deptResidencia"
	ChartCiudadTrabajo         ChartKey = "ciudadTrabajo"
	ChartDeptTrabajo           ChartKey = "deptTrabajo"
	ChartIntralaboralFormaA    ChartKey = "intralaboralFormaA"
	ChartIntralaboralFormaB    ChartKey = "intralaboralFormaB"
	ChartExtralaboralFormaA    ChartKey = "extralaboralFormaA"
	ChartExtralaboralFormaB    ChartKey = "extralaboralFormaB"
	ChartEstresGeneral         ChartKey = "estresGeneral"
	ChartEstresGeneralSintomas ChartKey = "estresGeneralSintomas"
	ChartEstresFormaA          ChartKey = "estresFormaA"
	ChartEstresFormaASintomas  ChartKey = "estresFormaASintomas"
	ChartEstresFormaB          ChartKey = "estresFormaB"
	ChartEstresFormaBSintomas  ChartKey = "estresFormaBSintomas"
	ChartGeneralFactores       ChartKey = "generalFactores"
	ChartGeneralFormaA         ChartKey = "generalFormaA"
	ChartGeneralFormaB         ChartKey = "generalFormaB"
)

// ChartCount is the number of charts in a report.
const ChartCount = 31

// Chart sizes used by the report.
const (
	pieWidth      = 500.0
	pieHeight     = 320.0
	barWidth      = 550.0
	stressWidth   = 600.0
	riskWidth     = 700.0
	generalRowCap = 19
)

// Chart pairs a chart key with its scene.
type Chart struct {
	Key   ChartKey
	Scene *Scene
}

// ReportCharts holds PNG images by chart key.
type ReportCharts map[ChartKey][]byte

func prefixLabels(items []schema.FrequencyItem, prefix string) []schema.FrequencyItem {
	out := make([]schema.FrequencyItem, len(items))
	for i, it := range items {
		it.Label = prefix + ": " + it.Label
		out[i] = it
	}
	return out
}

// ReportScenes builds the scenes of every report chart in template order.
func ReportScenes(data *schema.ReportData) []Chart {
	dem := data.Demographics
	pie := func(items []schema.FrequencyItem) *Scene { return Pie(items, pieWidth, pieHeight) }
	bar := func(items []schema.FrequencyItem, title string) *Scene { return Bar(items, title, barWidth) }
	risk := func(rows []schema.RiskTableRow, title string) *Scene { return RiskBar(rows, title, riskWidth) }

	var dimensions []schema.RiskTableRow
	for _, g := range data.GeneralRisk {
		if g.Tipo == schema.TipoDimension && len(dimensions) < generalRowCap {
			dimensions = append(dimensions, g.RiskTableRow)
		}
	}

	generalSymptoms := append(
		prefixLabels(data.EstresGeneral.SintomasFisiologicos, "Fisiológicos"),
		prefixLabels(data.EstresGeneral.SintomasComportamentales, "Comportamentales")...,
	)

	return []Chart{
		{ChartSexo, pie(dem.Sexo)},
		{ChartRangoEdad, pie(dem.RangoEdad)},
		{ChartNivelEstudios, bar(dem.NivelEstudios, "Nivel de estudios")},
		{ChartTipoVivienda, pie(dem.TipoVivienda)},
		{ChartEstadoCivil, pie(dem.EstadoCivil)},
		{ChartEstrato, pie(dem.Estrato)},
		{ChartPersonasACargo, bar(dem.PersonasACargo, "Personas a cargo")},
		{ChartAniosEmpresa, bar(dem.AniosEmpresa, "Antigüedad en la empresa")},
		{ChartAniosCargo, bar(dem.AniosCargo, "Antigüedad en el cargo")},
		{ChartTipoCargo, pie(dem.TipoCargo)},
		{ChartTipoContrato, pie(dem.TipoContrato)},
		{ChartTipoSalario, pie(dem.TipoSalario)},
		{ChartOcupacion, bar(dem.Ocupacion, "Ocupación u oficio")},
		{ChartHorasDiarias, pie(dem.HorasDiarias)},
		{ChartCiudadResidencia, bar(dem.CiudadResidencia, "Ciudad de residencia")},
		{ChartDeptResidencia, pie(dem.DeptResidencia)},
		{ChartCiudadTrabajo, bar(dem.CiudadTrabajo, "Ciudad donde trabaja")},
		{ChartDeptTrabajo, pie(dem.DeptTrabajo)},
		{ChartIntralaboralFormaA, risk(data.IntralaboralFormaA, "Factores intralaborales - Forma A")},
		{ChartIntralaboralFormaB, risk(data.IntralaboralFormaB, "Factores intralaborales - Forma B")},
		{ChartExtralaboralFormaA, risk(data.ExtralaboralFormaA, "Factores extralaborales - Forma A")},
		{ChartExtralaboralFormaB, risk(data.ExtralaboralFormaB, "Factores extralaborales - Forma B")},
		{ChartEstresGeneral, pie(data.EstresGeneral.Distribution)},
		{ChartEstresGeneralSintomas, Bar(generalSymptoms, "Principales síntomas del estrés", stressWidth)},
		{ChartEstresFormaA, pie(data.EstresFormaA.Distribution)},
		{ChartEstresFormaASintomas, Bar(data.EstresFormaA.SintomasFisiologicos, "Síntomas del estrés - Forma A", stressWidth)},
		{ChartEstresFormaB, pie(data.EstresFormaB.Distribution)},
		{ChartEstresFormaBSintomas, Bar(data.EstresFormaB.SintomasFisiologicos, "Síntomas del estrés - Forma B", stressWidth)},
		{ChartGeneralFactores, risk(dimensions, "Factores - Total general")},
		{ChartGeneralFormaA, risk(data.IntralaboralFormaA, "Factores - Forma A")},
		{ChartGeneralFormaB, risk(data.IntralaboralFormaB, "Factores - Forma B")},
	}
}

// FindScene returns the scene of one report chart.
func FindScene(data *schema.ReportData, key ChartKey) (*Scene, bool) {
	for _, c := range ReportScenes(data) {
		if c.Key == key {
			return c.Scene, true
		}
	}
	return nil, false
}

type rendered struct {
	key ChartKey
	png []byte
}

// RenderAll rasterizes every report chart concurrently with at most 'workers'
// goroutines. Any rasterization failure fails the whole set. onDone, when not
// nil, is called once per finished chart and must be safe for concurrent use.
func RenderAll(ctx context.Context, data *schema.ReportData, workers int, onDone func()) (ReportCharts, error) {
	charts := ReportScenes(data)
	p := pool.NewWithResults[rendered]().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(max(workers, 1))

	for _, c := range charts {
		p.Go(func(ctx context.Context) (rendered, error) {
			if err := ctx.Err(); err != nil {
				return rendered{}, err
			}
			png, err := RasterizePNG(c.Scene)
			if err != nil {
				return rendered{}, fmt.Errorf("chart %s: %w", c.Key, err)
			}
			if onDone != nil {
				onDone()
			}
			return rendered{key: c.Key, png: png}, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make(ReportCharts, len(results))
	for _, r := range results {
		out[r.key] = r.png
	}
	return out, nil
}
