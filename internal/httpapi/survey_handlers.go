package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/huangsam/psicosocial/core"
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
)

var errStoreUnavailable = errors.New("survey store is not configured")

func (s *Server) store() (contract.SurveyStore, error) {
	if s.mgr == nil {
		return nil, errStoreUnavailable
	}
	store := s.mgr.GetSurveyStore()
	if store == nil {
		return nil, errStoreUnavailable
	}
	return store, nil
}

type validateResponse struct {
	Valid    bool                   `json:"valid"`
	Campaign schema.CampaignSummary `json:"campaign"`
}

// handleValidate resolves a campaign access token.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		writeError(w, http.StatusBadRequest, "Token is required")
		return
	}
	store, err := s.store()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	campaign, err := store.ValidateToken(r.Context(), token)
	switch {
	case errors.Is(err, schema.ErrInvalidToken):
		writeError(w, http.StatusNotFound, "Invalid token")
	case errors.Is(err, schema.ErrCampaignInactive):
		writeError(w, http.StatusForbidden, "Campaign is inactive")
	case err != nil:
		contract.LogWarn("Token validation failed", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	default:
		writeJSON(w, http.StatusOK, validateResponse{Valid: true, Campaign: campaign})
	}
}

type verifyCedulaRequest struct {
	CampaignID string `json:"campaignId"`
	Cedula     string `json:"cedula"`
}

// handleVerifyCedula reports whether a participant already answered a campaign.
func (s *Server) handleVerifyCedula(w http.ResponseWriter, r *http.Request) {
	var req verifyCedulaRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.CampaignID, req.Cedula = strings.TrimSpace(req.CampaignID), strings.TrimSpace(req.Cedula)
	if req.CampaignID == "" || req.Cedula == "" {
		writeError(w, http.StatusBadRequest, "campaignId and cedula are required")
		return
	}
	store, err := s.store()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error interno: %v", err))
		return
	}

	done, err := store.VerifyCedula(r.Context(), req.CampaignID, req.Cedula)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error interno: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"hasCompleted": done})
}

// handleSubmit scores and stores one completed survey.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub schema.Submission
	if err := decodeBody(w, r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	store, err := s.store()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to submit survey")
		return
	}

	_, err = core.SubmitSurvey(r.Context(), store, &sub, s.now())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	case errors.Is(err, schema.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, schema.ErrAlreadySubmitted):
		writeError(w, http.StatusConflict, schema.ErrAlreadySubmitted.Error())
	case errors.Is(err, schema.ErrCampaignNotFound):
		writeError(w, http.StatusNotFound, "Campaña no encontrada")
	case errors.Is(err, schema.ErrCampaignInactive):
		writeError(w, http.StatusForbidden, "Campaign is inactive")
	default:
		contract.LogWarn("Submission failed", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit survey")
	}
}
