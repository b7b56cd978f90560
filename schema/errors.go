package schema

import "errors"

// Sentinel errors shared by the store, the CLI and the HTTP surface.
var (
	ErrCompanyNotFound  = errors.New("empresa no encontrada")
	ErrCampaignNotFound = errors.New("campaña no encontrada")
	ErrCampaignInactive = errors.New("campaign is inactive")
	ErrInvalidToken     = errors.New("invalid token")
	ErrAlreadySubmitted = errors.New("Ya has completado esta encuesta.")
	ErrNoResponses      = errors.New("No hay respuestas completadas en esta campaña")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidTemplate  = errors.New("invalid report template")
)
