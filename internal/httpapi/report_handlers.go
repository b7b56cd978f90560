package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/psicosocial/core"
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/internal/outwriter"
	"github.com/huangsam/psicosocial/schema"
)

// handleExport downloads stored responses as CSV, newest first. The optional
// campaignId query parameter restricts the export to one campaign.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	store, err := s.store()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export results")
		return
	}
	rows, err := store.ExportResponses(r.Context(), strings.TrimSpace(r.URL.Query().Get("campaignId")))
	if err != nil {
		contract.LogWarn("Export failed", err)
		writeError(w, http.StatusInternalServerError, "Failed to export results")
		return
	}

	var buf bytes.Buffer
	if err := outwriter.WriteResponsesCSV(&buf, rows); err != nil {
		contract.LogWarn("Export failed", err)
		writeError(w, http.StatusInternalServerError, "Failed to export results")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, core.ExportFileName(s.now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleReport builds and downloads the DOCX report of a campaign.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	campaignID := strings.TrimSpace(chi.URLParam(r, "campaignId"))
	store, err := s.store()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Error al generar el informe", Details: err.Error()})
		return
	}

	doc, err := core.BuildReportDocument(r.Context(), store, campaignID, core.ReportOptions{
		City:         s.cfg.City,
		TemplatePath: s.cfg.TemplatePath,
		Workers:      s.cfg.Workers,
		Now:          s.now(),
	})
	switch {
	case errors.Is(err, schema.ErrCampaignNotFound):
		writeError(w, http.StatusNotFound, "Campaña no encontrada")
		return
	case errors.Is(err, schema.ErrNoResponses):
		writeError(w, http.StatusBadRequest, schema.ErrNoResponses.Error())
		return
	case err != nil:
		contract.LogWarn("Report generation failed", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Error al generar el informe", Details: err.Error()})
		return
	}
	for _, marker := range doc.Missing {
		contract.LogWarn("Template marker not found", errors.New(marker))
	}

	w.Header().Set("Content-Type", core.DocxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Content)
}
