package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
)

// ValidateSubmission rejects submissions that cannot be stored.
func ValidateSubmission(sub *schema.Submission) error {
	if strings.TrimSpace(sub.CampaignID) == "" {
		return fmt.Errorf("%w: campaignId is required", schema.ErrInvalidInput)
	}
	if strings.TrimSpace(sub.Cedula) == "" {
		return fmt.Errorf("%w: cedula is required", schema.ErrInvalidInput)
	}
	if _, ok := schema.ValidFormTypes[sub.FormType]; !ok {
		return fmt.Errorf("%w: formType must be A or B, got %q", schema.ErrInvalidInput, sub.FormType)
	}
	if !sub.ConsentAccepted {
		return fmt.Errorf("%w: consent must be accepted", schema.ErrInvalidInput)
	}
	return nil
}

// BuildResponse scores a validated submission and returns the record to persist.
// Results are computed once here and never updated afterwards.
func BuildResponse(sub *schema.Submission, now time.Time) schema.ResponseRecord {
	ficha := sub.Ficha
	if ficha == nil {
		ficha = schema.Ficha{}
	}
	return schema.ResponseRecord{
		ID:              uuid.NewString(),
		CampaignID:      sub.CampaignID,
		Cedula:          strings.TrimSpace(sub.Cedula),
		Email:           sub.Email,
		ConsentName:     sub.ConsentName,
		ConsentDoc:      sub.ConsentDoc,
		ConsentAccepted: sub.ConsentAccepted,
		FormType:        sub.FormType,
		Ficha:           ficha,
		Intralaboral:    nonNil(sub.Intralaboral),
		Extralaboral:    nonNil(sub.Extralaboral),
		Estres:          nonNil(sub.Estres),
		Results:         ProcessSurvey(sub.FormType, sub.Answers()),
		CreatedAt:       now.UTC(),
	}
}

func nonNil(a schema.AnswerSet) schema.AnswerSet {
	if a == nil {
		return schema.AnswerSet{}
	}
	return a
}

// SubmitSurvey validates, scores and stores one submission. Store errors such
// as schema.ErrAlreadySubmitted are returned unchanged.
func SubmitSurvey(ctx context.Context, store contract.SurveyStore, sub *schema.Submission, now time.Time) (schema.ResponseRecord, error) {
	if err := ValidateSubmission(sub); err != nil {
		return schema.ResponseRecord{}, err
	}
	rec := BuildResponse(sub, now)
	if err := store.SubmitResponse(ctx, rec); err != nil {
		return schema.ResponseRecord{}, err
	}
	return rec, nil
}
