// Package rest assembles the HTTP surface: health and metrics probes plus
// the versioned analysis API.
package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"herbnet/infrastructure/di"
	"herbnet/interfaces/http/rest/handlers"
	"herbnet/interfaces/http/rest/middleware"
)

// NewRouter builds the service router from the wired container
func NewRouter(container *di.Container) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(container.Logger))
	r.Use(middleware.Logger(container.Logger))
	r.Use(middleware.Metrics(container.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", healthHandler(container))
	r.Method(http.MethodGet, "/metrics", container.Metrics.Handler())

	analysis := handlers.NewAnalysisHandler(container.Analysis, container.Logger)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analysis", analysis.AnalyzeTargets)
		r.Post("/similarity", analysis.HerbSimilarity)
		r.Post("/network", analysis.BuildNetwork)
	})

	return r
}

func healthHandler(container *di.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{
			"status":      "ok",
			"environment": container.Config.Environment,
			"datasource":  container.Config.DataSource.Kind,
		}); err != nil {
			container.Logger.Error("encode health response", zap.Error(err))
		}
	}
}
