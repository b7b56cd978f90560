package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/internal/iocache"
	"github.com/huangsam/psicosocial/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, store contract.SurveyStore) http.Handler {
	t.Helper()
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetSurveyStore").Return(store)
	s := NewServer(&contract.Config{City: "Montería", Workers: 2, AllowedOrigins: []string{"https://encuesta.example.com"}}, mgr)
	s.now = func() time.Time { return fixedNow }
	return s.Routes()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHandleValidate(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setup      func(*iocache.MockSurveyStore)
		wantStatus int
		wantError  string
	}{
		{"missing token", "", func(*iocache.MockSurveyStore) {}, http.StatusBadRequest, "Token is required"},
		{
			"unknown token", "?token=nope",
			func(s *iocache.MockSurveyStore) {
				s.On("ValidateToken", mock.Anything, "nope").Return(schema.CampaignSummary{}, schema.ErrInvalidToken)
			},
			http.StatusNotFound, "Invalid token",
		},
		{
			"inactive campaign", "?token=old",
			func(s *iocache.MockSurveyStore) {
				s.On("ValidateToken", mock.Anything, "old").Return(schema.CampaignSummary{}, schema.ErrCampaignInactive)
			},
			http.StatusForbidden, "Campaign is inactive",
		},
		{
			"store failure", "?token=boom",
			func(s *iocache.MockSurveyStore) {
				s.On("ValidateToken", mock.Anything, "boom").Return(schema.CampaignSummary{}, assert.AnError)
			},
			http.StatusInternalServerError, "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockSurveyStore{}
			tt.setup(store)
			rec := do(t, newTestServer(t, store), http.MethodGet, "/api/survey/validate"+tt.query, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decode(t, rec)["error"])
		})
	}

	t.Run("valid token", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		store.On("ValidateToken", mock.Anything, "abc").Return(schema.CampaignSummary{ID: "camp-1", Name: "Medición 2025", Empresa: "Acme"}, nil)

		rec := do(t, newTestServer(t, store), http.MethodGet, "/api/survey/validate?token=abc", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"valid":true,"campaign":{"id":"camp-1","name":"Medición 2025","empresa":"Acme"}}`, rec.Body.String())
	})
}

func TestHandleVerifyCedula(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		rec := do(t, newTestServer(t, &iocache.MockSurveyStore{}), http.MethodPost, "/api/survey/verify-cedula", `{"campaignId":"camp-1"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "campaignId and cedula are required", decode(t, rec)["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := do(t, newTestServer(t, &iocache.MockSurveyStore{}), http.MethodPost, "/api/survey/verify-cedula", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	for _, done := range []bool{true, false} {
		store := &iocache.MockSurveyStore{}
		store.On("VerifyCedula", mock.Anything, "camp-1", "1001").Return(done, nil)

		rec := do(t, newTestServer(t, store), http.MethodPost, "/api/survey/verify-cedula", `{"campaignId":"camp-1","cedula":" 1001 "}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, done, decode(t, rec)["hasCompleted"])
	}
}

func submissionBody(t *testing.T, mutate func(*schema.Submission)) string {
	t.Helper()
	sub := schema.Submission{
		CampaignID:      "camp-1",
		Cedula:          "1001",
		ConsentName:     "Ana",
		ConsentDoc:      "1001",
		ConsentAccepted: true,
		FormType:        schema.FormA,
		Ficha:           schema.Ficha{"sexo": "Femenino"},
		Intralaboral:    schema.AnswerSet{"intralaboral_13": "siempre"},
		Extralaboral:    schema.AnswerSet{},
		Estres:          schema.AnswerSet{},
	}
	if mutate != nil {
		mutate(&sub)
	}
	data, err := json.Marshal(sub)
	require.NoError(t, err)
	return string(data)
}

func TestHandleSubmit(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*schema.Submission)
		storeErr   error
		callsStore bool
		wantStatus int
		wantError  string
	}{
		{"accepted", nil, nil, true, http.StatusOK, ""},
		{"duplicate", nil, schema.ErrAlreadySubmitted, true, http.StatusConflict, "Ya has completado esta encuesta."},
		{"unknown campaign", nil, schema.ErrCampaignNotFound, true, http.StatusNotFound, "Campaña no encontrada"},
		{"inactive campaign", nil, schema.ErrCampaignInactive, true, http.StatusForbidden, "Campaign is inactive"},
		{"store failure", nil, assert.AnError, true, http.StatusInternalServerError, "Failed to submit survey"},
		{"no consent", func(s *schema.Submission) { s.ConsentAccepted = false }, nil, false, http.StatusBadRequest, ""},
		{"bad form", func(s *schema.Submission) { s.FormType = "C" }, nil, false, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockSurveyStore{}
			if tt.callsStore {
				store.On("SubmitResponse", mock.Anything, mock.MatchedBy(func(rec schema.ResponseRecord) bool {
					return rec.CampaignID == "camp-1" && rec.CreatedAt.Equal(fixedNow) && len(rec.Results) > 0
				})).Return(tt.storeErr)
			}

			rec := do(t, newTestServer(t, store), http.MethodPost, "/api/survey/submit", submissionBody(t, tt.mutate))
			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, true, body["success"])
			} else if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			}
			if !tt.callsStore {
				store.AssertNotCalled(t, "SubmitResponse", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHandleExport(t *testing.T) {
	rows := []schema.ResponseExportRow{{
		ResponseRecord: schema.ResponseRecord{
			Cedula: "1001", FormType: schema.FormB, ConsentAccepted: true, CreatedAt: fixedNow,
			Intralaboral: schema.AnswerSet{}, Extralaboral: schema.AnswerSet{}, Estres: schema.AnswerSet{},
		},
		EmpresaNombre: "Acme",
		CampanaNombre: "Medición 2025",
	}}

	t.Run("csv attachment", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		store.On("ExportResponses", mock.Anything, "camp-1").Return(rows, nil)

		rec := do(t, newTestServer(t, store), http.MethodGet, "/api/admin/export?campaignId=camp-1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="resultados-2025-06-15.csv"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "Acme,Medición 2025,1001,2025-06-15T09:00:00Z,B,Sí,{},{},{}", lines[1])
	})

	t.Run("store failure", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		store.On("ExportResponses", mock.Anything, "").Return(nil, assert.AnError)

		rec := do(t, newTestServer(t, store), http.MethodGet, "/api/admin/export", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to export results", decode(t, rec)["error"])
	})
}

func TestHandleReport(t *testing.T) {
	t.Run("unknown campaign", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		store.On("LoadCampaignData", mock.Anything, "nope").Return(nil, schema.ErrCampaignNotFound)

		rec := do(t, newTestServer(t, store), http.MethodPost, "/api/reports/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Campaña no encontrada", decode(t, rec)["error"])
	})

	t.Run("no responses", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		store.On("LoadCampaignData", mock.Anything, "camp-1").Return(&schema.CampaignData{}, nil)

		rec := do(t, newTestServer(t, store), http.MethodGet, "/api/reports/camp-1", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No hay respuestas completadas en esta campaña", decode(t, rec)["error"])
	})

	t.Run("store failure", func(t *testing.T) {
		store := &iocache.MockSurveyStore{}
		store.On("LoadCampaignData", mock.Anything, "camp-1").Return(nil, assert.AnError)

		rec := do(t, newTestServer(t, store), http.MethodGet, "/api/reports/camp-1", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Error al generar el informe", body["error"])
		assert.Equal(t, assert.AnError.Error(), body["details"])
	})

	t.Run("docx download", func(t *testing.T) {
		data := &schema.CampaignData{
			Company: schema.Company{Name: "Acme", Nit: "900"},
			Responses: []schema.ResponseRecord{
				{FormType: schema.FormA, Ficha: schema.Ficha{"sexo": "Femenino"}, Results: schema.SurveyResults{}},
				{FormType: schema.FormB, Ficha: schema.Ficha{"sexo": "Masculino"}, Results: schema.SurveyResults{}},
			},
		}
		store := &iocache.MockSurveyStore{}
		store.On("LoadCampaignData", mock.Anything, "camp-1").Return(data, nil)

		rec := do(t, newTestServer(t, store), http.MethodPost, "/api/reports/camp-1", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, `attachment; filename="Informe_Riesgo_Psicosocial_Acme_2025-06-15.docx"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
	})
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, &iocache.MockSurveyStore{})

	req := httptest.NewRequest(http.MethodOptions, "/api/survey/submit", nil)
	req.Header.Set("Origin", "https://encuesta.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://encuesta.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/survey/submit", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
