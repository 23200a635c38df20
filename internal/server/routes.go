package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/josephgoksu/AgentX/internal/logger"
)

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger(s.logger))
	r.Use(logger.Recoverer(s.logger, s.crashes))
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	r.Use(s.corsMiddleware())

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)
	r.Get("/agents", s.handleAgents)

	// Full pipeline
	r.Post("/pipeline", s.handlePipeline)

	// Single-stage services
	r.Post("/init_project", s.handleInitProject)
	r.Post("/identify_key_features", s.handleIdentifyKeyFeatures)
	r.Post("/generate_docs", s.handleGenerateDocs)
	r.Post("/create_tasks", s.handleCreateTasks)

	// Raw agents
	r.Post("/ba_agent", s.handleBAAgent)
	r.Post("/po_agent", s.handlePOAgent)
	r.Post("/pm_agent", s.handlePMAgent)
	r.Post("/ssd_agent", s.handleSSDAgent)

	if s.runs != nil {
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeAPIJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeAPIJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})
	return r
}
