package core

import "github.com/huangsam/psicosocial/schema"

// ProcessSurvey scores every intralaboral, extralaboral and stress dimension
// for one respondent. The intralaboral map is chosen by form variant; an empty
// variant scores as Forma A.
func ProcessSurvey(form schema.FormType, answers schema.SurveyAnswers) schema.SurveyResults {
	if form == "" {
		form = schema.FormA
	}

	results := make(schema.SurveyResults)
	scoreSet(results, IntralaboralSet(form), NormalizeAnswers(answers.Intralaboral))
	scoreSet(results, ExtralaboralSet(), NormalizeAnswers(answers.Extralaboral))
	scoreSet(results, EstresSet(), NormalizeAnswers(answers.Estres))
	return results
}

// scoreSet scores each dimension of qs and stores it under its namespaced key.
func scoreSet(results schema.SurveyResults, qs QuestionSet, answers map[string]string) {
	for _, dim := range qs.Dimensions {
		res := ScoreDimension(answers, dim.Items, qs.Inverse)
		results[qs.Prefix+dim.Name] = schema.DimensionResult{
			Dimension: dim.Name,
			Score:     res.TransformedScore,
			Level:     res.Level,
			Answered:  res.Answered,
		}
	}
}

// OrderedResultKeys lists the result keys a form produces in presentation order.
func OrderedResultKeys(form schema.FormType) []string {
	var keys []string
	for _, qs := range []QuestionSet{IntralaboralSet(form), ExtralaboralSet(), EstresSet()} {
		for _, dim := range qs.Dimensions {
			keys = append(keys, qs.Prefix+dim.Name)
		}
	}
	return keys
}
