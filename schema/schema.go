// Package schema has models, constants and sentinel errors for all parts of psicosocial.
package schema

// AnswerSet maps a compound form key (e.g. "intralaboral_12") to the raw answer token,
// which is either a Likert label or a numeric string.
type AnswerSet map[string]string

// SurveyAnswers bundles the three questionnaires answered by one respondent.
type SurveyAnswers struct {
	Intralaboral AnswerSet `json:"intralaboral"`
	Extralaboral AnswerSet `json:"extralaboral"`
	Estres       AnswerSet `json:"estres"`
}

// ScoreResult is the outcome of scoring one dimension.
type ScoreResult struct {
	RawScore         int       // Sum of resolved item values after inversion
	Answered         int       // Number of items that resolved to a value
	TransformedScore float64   // 0-100, one decimal
	Level            RiskLevel // Classification of the transformed score
}

// DimensionResult is the persisted per-dimension outcome for one respondent.
type DimensionResult struct {
	Dimension string    `json:"dimension"`
	Score     float64   `json:"score"`
	Level     RiskLevel `json:"level"`
	Answered  int       `json:"answered"`
}

// SurveyResults maps a namespaced key ("Intra - X", "Extra - X", "Estrés - X")
// to the dimension result for one respondent.
type SurveyResults map[string]DimensionResult

// Submission is one respondent's completed survey as received at intake.
type Submission struct {
	CampaignID      string    `json:"campaignId"`
	Cedula          string    `json:"cedula"`
	Email           string    `json:"email,omitempty"`
	ConsentName     string    `json:"consentName"`
	ConsentDoc      string    `json:"consentDoc"`
	ConsentAccepted bool      `json:"consentAccepted"`
	FormType        FormType  `json:"formType"`
	Ficha           Ficha     `json:"fichaAnswers"`
	Intralaboral    AnswerSet `json:"intralaboralAnswers"`
	Extralaboral    AnswerSet `json:"extralaboralAnswers"`
	Estres          AnswerSet `json:"estresAnswers"`
}

// Answers returns the three questionnaires of the submission.
func (s *Submission) Answers() SurveyAnswers {
	return SurveyAnswers{
		Intralaboral: s.Intralaboral,
		Extralaboral: s.Extralaboral,
		Estres:       s.Estres,
	}
}
