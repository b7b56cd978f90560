// Package httpapi exposes survey intake, response export and report download over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/huangsam/psicosocial/internal/contract"
)

// reportTimeout bounds one report build, charts included.
const reportTimeout = 2 * time.Minute

// Server holds the dependencies shared by every handler.
type Server struct {
	cfg *contract.Config
	mgr contract.StoreManager
	now func() time.Time
}

// NewServer creates the handler set for the given config and store manager.
func NewServer(cfg *contract.Config, mgr contract.StoreManager) *Server {
	return &Server{cfg: cfg, mgr: mgr, now: time.Now}
}

// Routes builds the chi router with CORS and the survey, admin and report routes.
func (s *Server) Routes() http.Handler {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "Content-Length"},
		MaxAge:         300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Route("/survey", func(sr chi.Router) {
			sr.Get("/validate", s.handleValidate)
			sr.Post("/verify-cedula", s.handleVerifyCedula)
			sr.Post("/submit", s.handleSubmit)
		})
		api.Get("/admin/export", s.handleExport)
		api.With(middleware.Timeout(reportTimeout)).Route("/reports/{campaignId}", func(rr chi.Router) {
			rr.Get("/", s.handleReport)
			rr.Post("/", s.handleReport)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}

// Serve listens on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           middleware.Logger(NewServer(cfg, mgr).Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		_, _ = fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
