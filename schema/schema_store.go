package schema

import "time"

// Company represents a row from the psicosocial_companies table.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nit       string    `json:"nit"`
	CreatedAt time.Time `json:"createdAt"`
}

// Campaign represents a row from the psicosocial_campaigns table.
type Campaign struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// CampaignSummary is what a respondent sees after validating a campaign token.
type CampaignSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Empresa string `json:"empresa"`
}

// ResponseRecord represents a row from the psicosocial_responses table.
// Answer sets and results are frozen at submission time.
type ResponseRecord struct {
	ID              string        `json:"id"`
	CampaignID      string        `json:"campaignId"`
	Cedula          string        `json:"cedula"`
	Email           string        `json:"email,omitempty"`
	ConsentName     string        `json:"consentName"`
	ConsentDoc      string        `json:"consentDoc"`
	ConsentAccepted bool          `json:"consentAccepted"`
	FormType        FormType      `json:"formType"`
	Ficha           Ficha         `json:"ficha"`
	Intralaboral    AnswerSet     `json:"intralaboral"`
	Extralaboral    AnswerSet     `json:"extralaboral"`
	Estres          AnswerSet     `json:"estres"`
	Results         SurveyResults `json:"results"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// ResponseExportRow is a response joined with its campaign and company names.
type ResponseExportRow struct {
	ResponseRecord
	EmpresaNombre string `json:"empresa"`
	CampanaNombre string `json:"campana"`
}

// CampaignData is everything the report pipeline reads for one campaign.
type CampaignData struct {
	Campaign  Campaign
	Company   Company
	Responses []ResponseRecord
}

// Respondents converts the stored responses into aggregator input.
// A response without a form type is reported as Forma B.
func (c *CampaignData) Respondents() []RespondentRecord {
	out := make([]RespondentRecord, 0, len(c.Responses))
	for _, r := range c.Responses {
		form := r.FormType
		if form == "" {
			form = FormB
		}
		ficha := r.Ficha
		if ficha == nil {
			ficha = Ficha{}
		}
		results := r.Results
		if results == nil {
			results = SurveyResults{}
		}
		out = append(out, RespondentRecord{FormType: form, Ficha: ficha, Results: results})
	}
	return out
}
