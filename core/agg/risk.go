package agg

import (
	"github.com/huangsam/psicosocial/core/algo"
	"github.com/huangsam/psicosocial/schema"
	"gonum.org/v1/gonum/stat"
)

// levelCounter tallies respondents per risk level for one factor.
type levelCounter struct {
	counts [5]int
	total  int
}

func (c *levelCounter) add(level schema.RiskLevel) {
	if rank := level.Rank(); rank >= 0 {
		c.counts[rank]++
		c.total++
	}
}

// row turns the tally into a table row. An empty tally yields an all-zero row.
func (c *levelCounter) row(factor string) schema.RiskTableRow {
	denom := float64(max(c.total, 1))
	rc := func(i int) schema.RiskCount {
		return schema.RiskCount{Count: c.counts[i], Pct: float64(c.counts[i]) / denom}
	}
	return schema.RiskTableRow{
		Factor:    factor,
		SinRiesgo: rc(0),
		Bajo:      rc(1),
		Medio:     rc(2),
		Alto:      rc(3),
		MuyAlto:   rc(4),
		Total:     c.total,
	}
}

// FilterByForm keeps respondents of the given form. An empty form keeps everyone.
func FilterByForm(respondents []schema.RespondentRecord, form schema.FormType) []schema.RespondentRecord {
	if form == "" {
		return respondents
	}
	out := make([]schema.RespondentRecord, 0, len(respondents))
	for _, r := range respondents {
		if r.FormType == form {
			out = append(out, r)
		}
	}
	return out
}

// buildRiskTable counts the levels of each factor across respondents. Missing
// results and "No aplica" results are left out of that factor's total.
func buildRiskTable(keys []factorKey, respondents []schema.RespondentRecord) []schema.RiskTableRow {
	rows := make([]schema.RiskTableRow, 0, len(keys))
	for _, fk := range keys {
		var c levelCounter
		for _, r := range respondents {
			entry, ok := r.Results[fk.Key]
			if !ok {
				continue
			}
			level := schema.NormalizeRiskLevel(string(entry.Level))
			if level == schema.NoAplica {
				continue
			}
			c.add(level)
		}
		rows = append(rows, c.row(fk.Name))
	}
	return rows
}

// buildDomainTable averages each respondent's member dimension scores per
// domain and classifies the average with the domain thresholds. Respondents
// without any member result are skipped.
func buildDomainTable(respondents []schema.RespondentRecord) []schema.RiskTableRow {
	rows := make([]schema.RiskTableRow, 0, len(domains))
	for _, d := range domains {
		var c levelCounter
		for _, r := range respondents {
			var scores []float64
			for _, name := range d.Members {
				if entry, ok := r.Results[intraKeyByName[name]]; ok {
					scores = append(scores, entry.Score)
				}
			}
			if len(scores) == 0 {
				continue
			}
			c.add(algo.ClassifyDomain(stat.Mean(scores, nil)))
		}
		rows = append(rows, c.row(d.Name))
	}
	return rows
}

// aggregateStress builds the overall stress distribution, from each respondent's
// average symptom score, and one distribution per symptom group. Percentages
// are over all respondents given.
func aggregateStress(respondents []schema.RespondentRecord) schema.StressAggregate {
	total := float64(max(len(respondents), 1))
	overall := make(map[schema.RiskLevel]int)
	byKey := make(map[string]map[schema.RiskLevel]int, len(estresKeys))
	for _, k := range estresKeys {
		byKey[k] = make(map[schema.RiskLevel]int)
	}

	for _, r := range respondents {
		var scores []float64
		for _, k := range estresKeys {
			entry, ok := r.Results[k]
			if !ok {
				continue
			}
			scores = append(scores, entry.Score)
			byKey[k][schema.NormalizeRiskLevel(string(entry.Level))]++
		}
		if len(scores) > 0 {
			overall[algo.ClassifyDomain(stat.Mean(scores, nil))]++
		}
	}

	toFreq := func(m map[schema.RiskLevel]int) []schema.FrequencyItem {
		items := make([]schema.FrequencyItem, len(schema.RiskLevels))
		for i, lvl := range schema.RiskLevels {
			items[i] = schema.FrequencyItem{Label: string(lvl), Count: m[lvl], Percentage: float64(m[lvl]) / total}
		}
		return items
	}

	return schema.StressAggregate{
		Distribution:                   toFreq(overall),
		SintomasFisiologicos:           toFreq(byKey[keyFisiologicos]),
		SintomasComportamentales:       toFreq(byKey[keyComportamiento]),
		SintomasIntelectualesLaborales: toFreq(byKey[keyIntelectuales]),
		SintomasEmocionales:            toFreq(byKey[keyPsicoemocionales]),
	}
}
