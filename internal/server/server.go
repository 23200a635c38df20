// Package server exposes the planning pipeline and its single stages over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/josephgoksu/AgentX/internal/logger"
	"github.com/josephgoksu/AgentX/internal/pipeline"
	"github.com/josephgoksu/AgentX/store"
)

// Config holds the HTTP settings.
type Config struct {
	Addr           string
	AllowedOrigins []string
	RequestTimeout time.Duration
	// MinFields is the number of top-level fields /pipeline and /ba_agent need.
	MinFields int
	Provider  string
	Model     string
	Version   string
}

type Server struct {
	orch    *pipeline.Orchestrator
	runs    store.RunStore
	cfg     Config
	logger  *slog.Logger
	crashes *logger.CrashReporter
	router  chi.Router
	server  *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithRunStore serves run history from runs.
func WithRunStore(runs store.RunStore) Option {
	return func(s *Server) { s.runs = runs }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCrashReporter stores a report for every recovered handler panic.
func WithCrashReporter(c *logger.CrashReporter) Option {
	return func(s *Server) { s.crashes = c }
}

func New(orch *pipeline.Orchestrator, cfg Config, opts ...Option) *Server {
	if cfg.MinFields <= 0 {
		cfg.MinFields = 6
	}
	s := &Server{orch: orch, cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.registerRoutes()
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.logger.Info("api server listening", "addr", s.cfg.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
