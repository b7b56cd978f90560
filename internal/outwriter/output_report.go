package outwriter

import (
	"encoding/csv"
	"fmt"

	"github.com/huangsam/psicosocial/schema"
)

var riskHeader = []string{"Factor", "Sin riesgo", "Bajo", "Medio", "Alto", "Muy alto", "Total"}

// namedRiskTable pairs a report risk table with its title.
type namedRiskTable struct {
	title string
	rows  []schema.RiskTableRow
}

func reportRiskTables(data *schema.ReportData) []namedRiskTable {
	return []namedRiskTable{
		{"Intralaboral Forma A", data.IntralaboralFormaA},
		{"Intralaboral Forma B", data.IntralaboralFormaB},
		{"Dominios Forma A", data.DominiosFormaA},
		{"Dominios Forma B", data.DominiosFormaB},
		{"Extralaboral Forma A", data.ExtralaboralFormaA},
		{"Extralaboral Forma B", data.ExtralaboralFormaB},
	}
}

// namedStress pairs a stress aggregate with the population it describes.
type namedStress struct {
	title string
	agg   schema.StressAggregate
}

func reportStress(data *schema.ReportData) []namedStress {
	return []namedStress{
		{"Estrés general", data.EstresGeneral},
		{"Estrés Forma A", data.EstresFormaA},
		{"Estrés Forma B", data.EstresFormaB},
	}
}

// demographicFields lists the ficha distributions in report order.
func demographicFields(d *schema.Demographics) []struct {
	label string
	items []schema.FrequencyItem
} {
	return []struct {
		label string
		items []schema.FrequencyItem
	}{
		{"Sexo", d.Sexo},
		{"Rango de edad", d.RangoEdad},
		{"Nivel de estudios", d.NivelEstudios},
		{"Tipo de vivienda", d.TipoVivienda},
		{"Estado civil", d.EstadoCivil},
		{"Estrato", d.Estrato},
		{"Personas a cargo", d.PersonasACargo},
		{"Años en la empresa", d.AniosEmpresa},
		{"Años en el cargo", d.AniosCargo},
		{"Tipo de cargo", d.TipoCargo},
		{"Tipo de contrato", d.TipoContrato},
		{"Tipo de salario", d.TipoSalario},
		{"Ocupación", d.Ocupacion},
		{"Horas diarias", d.HorasDiarias},
		{"Ciudad de residencia", d.CiudadResidencia},
		{"Departamento de residencia", d.DeptResidencia},
		{"Ciudad de trabajo", d.CiudadTrabajo},
		{"Departamento de trabajo", d.DeptTrabajo},
	}
}

func riskRowCells(r schema.RiskTableRow) []any {
	return []any{r.Factor, r.SinRiesgo, r.Bajo, r.Medio, r.Alto, r.MuyAlto, r.Total}
}

func symptomGroups(a schema.StressAggregate) []struct {
	label string
	items []schema.FrequencyItem
} {
	return []struct {
		label string
		items []schema.FrequencyItem
	}{
		{"Síntomas fisiológicos", a.SintomasFisiologicos},
		{"Síntomas comportamentales", a.SintomasComportamentales},
		{"Síntomas intelectuales y laborales", a.SintomasIntelectualesLaborales},
		{"Síntomas emocionales", a.SintomasEmocionales},
	}
}

// reportTables lays out the report aggregate. Every risk table and matrix
// becomes its own table; distributions are listed in long format.
func reportTables(data *schema.ReportData) tableSet {
	d := &data.Demographics
	tables := []dataTable{{
		Title:  "Resumen",
		Header: []string{"Campo", "Valor"},
		Rows: [][]any{
			{"Empresa", data.EmpresaNombre},
			{"NIT", data.EmpresaNit},
			{"Campaña", data.CampanaNombre},
			{"Fecha", data.FechaInforme},
			{"Participantes", d.TotalParticipants},
			{"Forma A", d.FormaA},
			{"Forma B", d.FormaB},
		},
	}}

	demo := dataTable{Title: "Ficha sociodemográfica", Header: []string{"Variable", "Categoría", "Cantidad", "Porcentaje"}}
	for _, field := range demographicFields(d) {
		for _, item := range field.items {
			demo.Rows = append(demo.Rows, []any{field.label, item.Label, item.Count, percent(item.Percentage)})
		}
	}
	tables = append(tables, demo)

	for _, rt := range reportRiskTables(data) {
		t := dataTable{Title: rt.title, Header: riskHeader}
		for _, r := range rt.rows {
			t.Rows = append(t.Rows, riskRowCells(r))
		}
		tables = append(tables, t)
	}

	general := dataTable{Title: "Riesgo general", Header: []string{"Factor", "Tipo", "Alto", "Muy alto", "Alto y muy alto", "Total"}}
	for _, r := range data.GeneralRisk {
		general.Rows = append(general.Rows, []any{r.Factor, r.Tipo, r.Alto, r.MuyAlto, percent(r.HighPct()), r.Total})
	}
	tables = append(tables, general)

	stress := dataTable{Title: "Estrés", Header: []string{"Población", "Nivel", "Cantidad", "Porcentaje"}}
	symptoms := dataTable{Title: "Síntomas de estrés", Header: []string{"Grupo", "Nivel", "Cantidad", "Porcentaje"}}
	for _, s := range reportStress(data) {
		for _, item := range s.agg.Distribution {
			stress.Rows = append(stress.Rows, []any{s.title, schema.RiskLevel(item.Label), item.Count, percent(item.Percentage)})
		}
	}
	for _, g := range symptomGroups(data.EstresGeneral) {
		for _, item := range g.items {
			symptoms.Rows = append(symptoms.Rows, []any{g.label, schema.RiskLevel(item.Label), item.Count, percent(item.Percentage)})
		}
	}
	tables = append(tables, stress, symptoms)

	for _, m := range []struct {
		title string
		rows  []schema.MatrixRow
	}{
		{"Matriz intralaboral", data.MatrizIntralaboral},
		{"Matriz extralaboral", data.MatrizExtralaboral},
	} {
		t := dataTable{Title: m.title, Header: []string{"Factor", "Nivel de riesgo", "Acciones"}}
		for _, r := range m.rows {
			t.Rows = append(t.Rows, []any{r.Factor, r.NivelRiesgo, r.Acciones})
		}
		tables = append(tables, t)
	}

	pve := dataTable{Title: "PVE", Header: []string{"Evaluación", "Porcentaje", "Criterio", "Requiere ingreso"}}
	for _, r := range data.PVERows {
		pve.Rows = append(pve.Rows, []any{r.Evaluacion, r.Porcentaje, r.Criterio, r.RequiereIngreso})
	}
	tables = append(tables, pve)

	prio := dataTable{Title: "Dimensiones priorizadas", Header: []string{"Grupo", "Dimensión"}}
	for _, p := range []struct {
		group string
		dims  []string
	}{
		{"Intralaboral Forma A", data.DimensionesPriorizadasA},
		{"Intralaboral Forma B", data.DimensionesPriorizadasB},
		{"Extralaboral", data.DimensionesExtralaboralesPriorizadas},
	} {
		for _, dim := range p.dims {
			prio.Rows = append(prio.Rows, []any{p.group, dim})
		}
	}
	tables = append(tables, prio)

	return tableSet{
		Tables: tables,
		JSON:   data,
		CSV: func(w *csv.Writer, f cellFormat) error {
			return writeReportCSV(w, data, f)
		},
	}
}

// writeReportCSV writes every distribution of the report in long format:
// one record per table, factor and level.
func writeReportCSV(w *csv.Writer, data *schema.ReportData, f cellFormat) error {
	if err := w.Write([]string{"tabla", "factor", "nivel", "cantidad", "porcentaje"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	write := func(table, factor, level string, count int, pct float64) error {
		record := []string{table, factor, level, f.plain(count), f.fmtFloat(pct * 100)}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		return nil
	}

	for _, field := range demographicFields(&data.Demographics) {
		for _, item := range field.items {
			if err := write("Ficha sociodemográfica", field.label, item.Label, item.Count, item.Percentage); err != nil {
				return err
			}
		}
	}
	for _, rt := range reportRiskTables(data) {
		for _, r := range rt.rows {
			for i, c := range r.Counts() {
				if err := write(rt.title, r.Factor, string(schema.RiskLevels[i]), c.Count, c.Pct); err != nil {
					return err
				}
			}
		}
	}
	for _, s := range reportStress(data) {
		for _, item := range s.agg.Distribution {
			if err := write(s.title, "Estrés", item.Label, item.Count, item.Percentage); err != nil {
				return err
			}
		}
		for _, g := range symptomGroups(s.agg) {
			for _, item := range g.items {
				if err := write(s.title, g.label, item.Label, item.Count, item.Percentage); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
