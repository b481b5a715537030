// Package server exposes the learning store, quiz generator, resource
// search, and tutor agent over HTTP. Routes are mounted on a chi
// router with slog request logging and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mentora/mentora/internal/agent"
	"github.com/mentora/mentora/internal/metrics"
	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/quizgen"
	"github.com/mentora/mentora/internal/resources"
)

// Tutor runs one chat turn. Satisfied by *agent.Agent.
type Tutor interface {
	Chat(ctx context.Context, input agent.ChatInput) (*agent.ChatResult, error)
}

// Searcher finds study resources. Satisfied by *resources.Chain.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]resources.Resource, error)
}

// ProfileStore is the profile surface the API serves. Satisfied by
// *profile.Service.
type ProfileStore interface {
	Summary(ctx context.Context, userID string) (*profile.Summary, error)
	TopicMastery(ctx context.Context, userID, topic string) (*profile.TopicMastery, error)
	RecordQuizAttempt(ctx context.Context, userID, topic string, numQuestions, numCorrect int) (*profile.TopicMastery, error)
}

// Deps are the services the API serves. Tutor may be nil when no LLM
// provider is configured; /api/chat then answers 503.
type Deps struct {
	Profiles ProfileStore
	Plans    *plan.Service
	Quizzes  quizgen.Generator
	Search   Searcher
	Tutor    Tutor
	Logger   *slog.Logger
}

// Server is the Mentora HTTP API.
type Server struct {
	deps    Deps
	logger  *slog.Logger
	metrics *metrics.Metrics
	http    *http.Server
}

// New builds the API server for addr.
func New(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		deps:    deps,
		logger:  logger,
		metrics: metrics.New(),
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router assembles the route tree. Exposed so tests can drive the
// handlers without a listener.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger(s.logger))
	r.Use(metricsMiddleware(s.metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/profile/{userID}", s.handleProfile)
		r.Get("/profile/{userID}/topics/{topic}", s.handleTopicMastery)
		r.Post("/attempts", s.handleRecordAttempt)
		r.Post("/quiz", s.handleGenerateQuiz)
		r.Post("/chat", s.handleChat)
		r.Get("/resources", s.handleSearchResources)
		r.Get("/plan/{userID}", s.handleGetPlan)
		r.Post("/plan", s.handleCreatePlan)
	})

	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()
	s.logger.Info("http api listening", "addr", s.http.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
