package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/huangsam/psicosocial/internal/contract"
)

// maxBodyBytes caps request bodies; a full survey is a few kilobytes.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contract.LogWarn("Failed to write response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
