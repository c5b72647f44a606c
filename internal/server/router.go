package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/career-guide/internal/observability"
	"github.com/jonathan/career-guide/internal/server/middleware"
)

// Handler constructs the HTTP handler with all middlewares and routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(s.log))
	r.Use(observability.HTTPMetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/health/db", s.handleHealthDB)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.AuthMiddleware(s.verifier, s.log))

		api.Get("/users/me", s.handleGetMe)
		api.Post("/users/me", s.handleUpsertMe)

		api.Route("/career-recommendations", func(cr chi.Router) {
			cr.Get("/", s.handleListAssessments)
			cr.Post("/", s.handleSubmitAssessment)
			cr.Get("/ai-questions/{recommendationId}", s.handleGetAIQuestions)
			cr.Get("/recommendations", s.handleListCareerOptions)
			cr.Get("/recommendations/{recommendationId}", s.handleListCareerOptions)

			// Each of these issues at least one model call.
			cr.Group(func(gen chi.Router) {
				gen.Use(httprate.LimitByIP(s.cfg.RateLimitPerMin, time.Minute))
				gen.Post("/ai-submit", s.handleAISubmit)
				gen.Post("/ai-answers", s.handleAIAnswers)
				gen.Get("/roadmap/{recommendationId}/{title}", s.handleRoadmap)
			})

			cr.Get("/{recId}", s.handleGetAssessment)
		})
	})

	return r
}
