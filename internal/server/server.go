// Package server provides the HTTP REST API for the career guidance service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/identity"
	"github.com/jonathan/career-guide/internal/logger"
	"github.com/jonathan/career-guide/internal/types"
)

// Store is the persistence the handlers need. *db.DB satisfies it.
type Store interface {
	Ping(ctx context.Context) error
	UpsertUser(ctx context.Context, uid, email string) (*db.User, error)
	GetUserBySubject(ctx context.Context, uid string) (*db.User, error)
	CreateAssessment(ctx context.Context, userID int64, p *types.Profile) (*db.Assessment, error)
	GetAssessment(ctx context.Context, id int64) (*db.Assessment, error)
	ListAssessments(ctx context.Context, userID int64) ([]db.Assessment, error)
	SaveGeneratedQuestions(ctx context.Context, assessmentID int64, questions []types.GeneratedQuestion) error
	SaveAIAnswers(ctx context.Context, assessmentID int64, answers []types.AIAnswer) error
	SaveFinalRecommendations(ctx context.Context, assessmentID int64, set types.RecommendationSet) error
	ReplaceCareerOptions(ctx context.Context, userID int64, options []types.CareerOption) error
	ListCareerOptions(ctx context.Context, userID int64) ([]types.CareerOption, error)
}

// Generator runs the generation tasks. *guidance.Service satisfies it.
type Generator interface {
	FollowUpQuestions(ctx context.Context, previous []types.QuestionAnswer, count int) ([]types.GeneratedQuestion, error)
	CareerRecommendations(ctx context.Context, answers []types.QuestionAnswer) (types.RecommendationSet, error)
	CareerOptions(ctx context.Context, answers []types.QuestionAnswer, ownerID int64) ([]types.CareerOption, error)
	CareerRoadmap(ctx context.Context, title string, profile types.Profile, supplemental []types.QuestionAnswer) types.Roadmap
}

// Config holds server configuration
type Config struct {
	Port            int
	AllowedOrigins  []string
	RateLimitPerMin int
	QuestionCount   int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      Store
	generator  Generator
	verifier   identity.Verifier
	log        *logger.Logger
	cfg        Config
}

// New creates a new server instance
func New(cfg Config, store Store, generator Generator, verifier identity.Verifier, log *logger.Logger) *Server {
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 30
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		// Long enough for two sequential generation calls with one retry each.
		cfg.WriteTimeout = 120 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		store:     store,
		generator: generator,
		verifier:  verifier,
		log:       log,
		cfg:       cfg,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleHealthDB reports whether the store is reachable.
func (s *Server) handleHealthDB(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.log.Error("database ping failed", "error", err.Error())
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("error encoding JSON response", "error", err.Error())
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status. Server-side failures are logged and
// reported with the fallback message; client errors carry their own text.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error(fallback, "path", r.URL.Path, "error", err.Error())
		s.errorResponse(w, status, fallback)
		return
	}
	s.errorResponse(w, status, err.Error())
}

// dataResponse wraps payload in the {success, data} envelope.
func (s *Server) dataResponse(w http.ResponseWriter, status int, payload any) {
	s.jsonResponse(w, status, map[string]any{"success": true, "data": payload})
}
