package algo

import "github.com/huangsam/psicosocial/schema"

// Threshold maps scores strictly below Max to Level.
type Threshold struct {
	Max   float64
	Level schema.RiskLevel
}

// DimensionThresholds classify a single dimension's transformed score.
var DimensionThresholds = []Threshold{
	{Max: 19.7, Level: schema.SinRiesgo},
	{Max: 25.8, Level: schema.RiesgoBajo},
	{Max: 31.5, Level: schema.RiesgoMedio},
	{Max: 38.0, Level: schema.RiesgoAlto},
}

// DomainThresholds classify averaged domain and stress scores.
var DomainThresholds = []Threshold{
	{Max: 20, Level: schema.SinRiesgo},
	{Max: 40, Level: schema.RiesgoBajo},
	{Max: 60, Level: schema.RiesgoMedio},
	{Max: 80, Level: schema.RiesgoAlto},
}

// Classify returns the level of the first threshold whose Max exceeds score,
// or RiesgoMuyAlto when none does.
func Classify(score float64, table []Threshold) schema.RiskLevel {
	for _, t := range table {
		if score < t.Max {
			return t.Level
		}
	}
	return schema.RiesgoMuyAlto
}

// ClassifyDimension classifies a dimension score.
func ClassifyDimension(score float64) schema.RiskLevel {
	return Classify(score, DimensionThresholds)
}

// ClassifyDomain classifies a domain or stress average.
func ClassifyDomain(avg float64) schema.RiskLevel {
	return Classify(avg, DomainThresholds)
}
