// Package agg has aggregation logic for campaign survey results.
package agg

import (
	"fmt"
	"time"

	"github.com/huangsam/psicosocial/core/algo"
	"github.com/huangsam/psicosocial/schema"
)

// DefaultCity heads the report date line when no city is configured.
const DefaultCity = "Montería"

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatFecha renders a long Spanish date, e.g. "5 de marzo de 2025".
func FormatFecha(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// FormatFechaInforme renders the report date line, e.g. "Montería, 5 de marzo de 2025".
func FormatFechaInforme(city string, t time.Time) string {
	if city == "" {
		city = DefaultCity
	}
	return city + ", " + FormatFecha(t)
}

// Options tune the parts of the report that do not come from the responses.
type Options struct {
	City string
	Now  time.Time
}

// ProcessReportData aggregates a campaign's stored responses into report data.
// It never fails: an empty campaign produces zero-filled tables.
func ProcessReportData(data *schema.CampaignData, opts Options) schema.ReportData {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	respondents := data.Respondents()
	formA := FilterByForm(respondents, schema.FormA)
	formB := FilterByForm(respondents, schema.FormB)

	intA := buildRiskTable(intraKeys, formA)
	intB := buildRiskTable(intraKeys, formB)
	extA := buildRiskTable(extraKeys, formA)
	extB := buildRiskTable(extraKeys, formB)
	estA := aggregateStress(formA)
	estB := aggregateStress(formB)

	report := schema.ReportData{
		EmpresaNombre: data.Company.Name,
		EmpresaNit:    data.Company.Nit,
		CampanaNombre: data.Campaign.Name,
		FechaInforme:  FormatFechaInforme(opts.City, now),
		Demographics:  buildDemographics(respondents, now),

		IntralaboralFormaA: intA,
		IntralaboralFormaB: intB,
		DominiosFormaA:     buildDomainTable(formA),
		DominiosFormaB:     buildDomainTable(formB),
		ExtralaboralFormaA: extA,
		ExtralaboralFormaB: extB,

		EstresGeneral: aggregateStress(respondents),
		EstresFormaA:  estA,
		EstresFormaB:  estB,

		GeneralRisk: buildGeneralRisk(respondents),

		MatrizIntralaboral: BuildMatrix(concatRows(intA, intB)),
		MatrizExtralaboral: BuildMatrix(concatRows(extA, extB)),
		PVERows:            BuildPVERows(intA, intB, extA, extB, estA, estB),

		DimensionesPriorizadasA:              Prioritize(intA, topIntralaboral),
		DimensionesPriorizadasB:              Prioritize(intB, topIntralaboral),
		DimensionesExtralaboralesPriorizadas: Prioritize(algo.DedupeByFactor(concatRows(extA, extB)), topExtralaboral),
	}
	return report
}

// buildGeneralRisk lists all-respondent dimension rows, then domain rows, then
// extralaboral rows.
func buildGeneralRisk(respondents []schema.RespondentRecord) []schema.GeneralRiskRow {
	var out []schema.GeneralRiskRow
	tag := func(rows []schema.RiskTableRow, tipo string) {
		for _, r := range rows {
			out = append(out, schema.GeneralRiskRow{RiskTableRow: r, Tipo: tipo})
		}
	}
	tag(buildRiskTable(intraKeys, respondents), schema.TipoDimension)
	tag(buildDomainTable(respondents), schema.TipoDominio)
	tag(buildRiskTable(extraKeys, respondents), schema.TipoExtralaboral)
	return out
}

func concatRows(a, b []schema.RiskTableRow) []schema.RiskTableRow {
	out := make([]schema.RiskTableRow, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
