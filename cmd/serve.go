package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/psicosocial/internal/httpapi"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API used by the survey web client.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the survey HTTP API.",
	Long: `Serve the survey endpoints used by respondents and administrators.

Routes:
  GET  /api/survey/validate?token=...
  POST /api/survey/verify-cedula
  POST /api/survey/submit
  GET  /api/admin/export
  GET  /api/reports/{campaignId}
  GET  /healthz

The server stops gracefully on SIGINT or SIGTERM.

Examples:
  psicosocial serve --addr :8080 --allowed-origins https://encuesta.example.com`,
	PreRunE: storeSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return httpapi.Serve(ctx, cfg, storeManager)
	},
}
