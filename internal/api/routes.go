package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/junhoahn/manse-api/internal/config"
	"github.com/junhoahn/manse-api/internal/database"
)

// SetupRoutes configures and returns the HTTP router.
func SetupRoutes(db *database.DB, cfg *config.Config, log *slog.Logger) http.Handler {
	h := NewHandlers(db, cfg, log)

	r := chi.NewRouter()
	r.Use(RecoveryMiddleware(log))
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(log))
	r.Use(CORSMiddleware())

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1/charts", func(r chi.Router) {
		r.Post("/", h.ComputeChart)
		r.Get("/date/{date}", h.GetDateChart)

		// Saved charts are behind the API key.
		r.Route("/saved", func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, log))
			r.Get("/", h.ListSavedCharts)
			r.Post("/", h.CreateSavedChart)
			r.Get("/{id}", h.GetSavedChart)
			r.Delete("/{id}", h.DeleteSavedChart)
		})
	})

	return r
}
