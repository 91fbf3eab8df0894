package handler

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anchor-corps/chat-relay/internal/middleware"
	"github.com/anchor-corps/chat-relay/pkg/logger"
)

// NewRouter wires the relay's routes and global middleware. The widget posts
// from arbitrary page origins, so CORS is wide open for POST.
func NewRouter(fh *ForwardHandler, hh *HealthHandler, log *logger.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", TokenHeader},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", hh.Health)
	r.Get("/ready", hh.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/forward-transcript", fh.Transcript)
	r.Post("/forward-lead", fh.Lead)

	return r
}
