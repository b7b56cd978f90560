package agg

import (
	"fmt"
	"math"

	"github.com/huangsam/psicosocial/core/algo"
	"github.com/huangsam/psicosocial/schema"
)

// Top-N sizes of the prioritized dimension lists.
const (
	topIntralaboral = 4
	topExtralaboral = 3
)

// Prioritize returns the names of the top-n factors by alto + muy alto share,
// dropping factors with no respondent at those levels.
func Prioritize(rows []schema.RiskTableRow, n int) []string {
	names := []string{}
	for _, r := range algo.RankByHighRisk(rows, n) {
		if r.HighPct() > 0 {
			names = append(names, r.Factor)
		}
	}
	return names
}

var actions = map[schema.RiskLevel]string{
	schema.SinRiesgo:     "Mantener y fortalecer los factores protectores identificados.",
	schema.RiesgoBajo:    "Implementar acciones de mantenimiento y mejora continua.",
	schema.RiesgoMedio:   "Diseñar e implementar intervenciones preventivas a nivel organizacional e individual.",
	schema.RiesgoAlto:    "Intervención prioritaria: diseñar programas específicos de intervención y seguimiento.",
	schema.RiesgoMuyAlto: "Intervención INMEDIATA: establecer medidas urgentes de control y seguimiento individual.",
}

// InterventionLevel classifies how urgently a factor needs intervention.
func InterventionLevel(r schema.RiskTableRow) schema.RiskLevel {
	switch {
	case r.MuyAlto.Pct >= 0.2:
		return schema.RiesgoMuyAlto
	case r.HighPct() >= 0.3:
		return schema.RiesgoAlto
	case r.Medio.Pct >= 0.3:
		return schema.RiesgoMedio
	case r.Bajo.Pct >= 0.3:
		return schema.RiesgoBajo
	default:
		return schema.SinRiesgo
	}
}

// BuildMatrix emits one intervention row per distinct factor, using the first
// row seen for a factor that appears more than once.
func BuildMatrix(rows []schema.RiskTableRow) []schema.MatrixRow {
	unique := algo.DedupeByFactor(rows)
	out := make([]schema.MatrixRow, 0, len(unique))
	for _, r := range unique {
		level := InterventionLevel(r)
		out = append(out, schema.MatrixRow{Factor: r.Factor, NivelRiesgo: level, Acciones: actions[level]})
	}
	return out
}

const (
	pveCriterion    = "30% o más en nivel de riesgo alto o muy alto"
	pveThreshold    = 30
	pveDiseaseLabel = "No se identificaron trabajadores con enfermedad de interés Psicosocial."
	pveDiseaseRule  = "Positivo en el 9% o más"
	pveRequires     = "Sí"
	pveDoesNotNeed  = "No"
)

// highRiskPercent is the rounded share of alto + muy alto over all counted
// results of the rows, or 0 when nothing was counted.
func highRiskPercent(rows []schema.RiskTableRow) int {
	high, total := 0, 0
	for _, r := range rows {
		high += r.Alto.Count + r.MuyAlto.Count
		total += r.Total
	}
	return roundPercent(high, total)
}

// stressHighPercent is the rounded share of alto + muy alto in the overall
// stress distribution.
func stressHighPercent(agg schema.StressAggregate) int {
	high, total := 0, 0
	for _, item := range agg.Distribution {
		total += item.Count
		if item.Label == string(schema.RiesgoAlto) || item.Label == string(schema.RiesgoMuyAlto) {
			high += item.Count
		}
	}
	return roundPercent(high, total)
}

func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// BuildPVERows decides PVE enrollment for each form and questionnaire, followed
// by the fixed occupational disease row.
func BuildPVERows(intA, intB, extA, extB []schema.RiskTableRow, estA, estB schema.StressAggregate) []schema.PVERow {
	data := []struct {
		label string
		pct   int
	}{
		{"Total Factores Intralaborales Nivel Alto - Forma A", highRiskPercent(intA)},
		{"Total Factores Intralaborales Nivel Alto y muy alto - Forma B", highRiskPercent(intB)},
		{"Total Factores Extralaborales Nivel Alto - Forma A", highRiskPercent(extA)},
		{"Total Factores Extralaborales Nivel Alto y muy alto - Forma B", highRiskPercent(extB)},
		{"Síntomas de Estrés – Forma A", stressHighPercent(estA)},
		{"Síntomas de Estrés – Forma B", stressHighPercent(estB)},
	}

	rows := make([]schema.PVERow, 0, len(data)+1)
	for _, d := range data {
		requires := pveDoesNotNeed
		if d.pct >= pveThreshold {
			requires = pveRequires
		}
		rows = append(rows, schema.PVERow{
			Evaluacion:      d.label,
			Porcentaje:      fmt.Sprintf("%d%%", d.pct),
			Criterio:        pveCriterion,
			RequiereIngreso: requires,
		})
	}
	return append(rows, schema.PVERow{
		Evaluacion:      pveDiseaseLabel,
		Porcentaje:      "0%",
		Criterio:        pveDiseaseRule,
		RequiereIngreso: pveDoesNotNeed,
	})
}
