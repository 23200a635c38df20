package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/josephgoksu/AgentX/internal/agents"
	"github.com/josephgoksu/AgentX/internal/agents/core"
	"github.com/josephgoksu/AgentX/internal/pipeline"
	"github.com/josephgoksu/AgentX/models"
	"github.com/josephgoksu/AgentX/store"
)

// handleHome answers the welcome message.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the AgentX Service!"})
}

// handleHealth reports the active provider, model and version.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"provider": s.cfg.Provider,
		"model":    s.cfg.Model,
		"version":  s.cfg.Version,
	})
}

// handleAgents lists the registered stages.
func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	infos := core.Registry()
	result := make([]AgentInfo, 0, len(infos))
	for _, a := range infos {
		result = append(result, AgentInfo{ID: a.ID, Name: a.Name, Description: a.Description, Prompt: a.Prompt})
	}
	writeAPIJSON(w, http.StatusOK, result)
}

// handlePipeline runs every stage for a project definition.
func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	var def models.ProjectDefinition
	spec := requestSpec{minFields: s.cfg.MinFields, expected: pipelineFields}
	if err := decodeRequest(r, spec, &def); err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := s.orch.Execute(r.Context(), def)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if !def.WantsText() {
		writeAPIJSON(w, http.StatusOK, out.Artifact)
		return
	}
	summaries, err := out.Summaries()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, summaries)
}

// handleInitProject rewrites a project definition.
func (s *Server) handleInitProject(w http.ResponseWriter, r *http.Request) {
	var req InitProjectRequest
	if err := decodeRequest(r, requestSpec{required: []string{"project_name", "defination"}}, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	redef, err := s.orch.Redefine(r.Context(), req.Model, req.ProjectName, req.Definition)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, redef)
}

// handleIdentifyKeyFeatures lists a definition's key features.
func (s *Server) handleIdentifyKeyFeatures(w http.ResponseWriter, r *http.Request) {
	var req KeyFeaturesRequest
	if err := decodeRequest(r, requestSpec{required: []string{"defination"}}, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	features, err := s.orch.IdentifyKeyFeatures(r.Context(), req.Model, req.Definition)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, features)
}

// handleGenerateDocs writes the specification document and both diagrams.
func (s *Server) handleGenerateDocs(w http.ResponseWriter, r *http.Request) {
	var req GenerateDocsRequest
	if err := decodeRequest(r, requestSpec{required: []string{"defination", "key_features"}}, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	docs, err := s.orch.GenerateDocs(r.Context(), req.Model, req.Definition, req.KeyFeatures)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, docs)
}

// handleCreateTasks creates assigned tasks from a definition.
func (s *Server) handleCreateTasks(w http.ResponseWriter, r *http.Request) {
	var req CreateTasksRequest
	if err := decodeRequest(r, requestSpec{required: []string{"defination", "key_features"}}, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	plan, err := s.orch.CreateTasks(r.Context(), pipeline.TaskRequest{
		Definition:  req.Definition,
		KeyFeatures: req.KeyFeatures,
		Employees:   req.Employees,
		Timeline:    req.Timeline.String(),
		Model:       req.Model,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, plan)
}

// handleBAAgent runs the business analyst alone.
func (s *Server) handleBAAgent(w http.ResponseWriter, r *http.Request) {
	var def models.ProjectDefinition
	spec := requestSpec{minFields: s.cfg.MinFields, expected: pipelineFields}
	if err := decodeRequest(r, spec, &def); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := agents.AnalyzeRequirements(r.Context(), s.orch.Runner(def.Model), def.DefinitionText())
	respondAgent(s, w, r, "requirements", agents.StageRequirements, res, err, def.WantsText())
}

// handlePOAgent runs the product owner on caller-supplied requirements.
func (s *Server) handlePOAgent(w http.ResponseWriter, r *http.Request) {
	var req POAgentRequest
	if err := decodeRequest(r, requestSpec{required: []string{"definition", "requirements"}}, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	requirements, err := literalOrSummary[models.Requirements](req.Requirements, "requirements")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := agents.PrioritizeGoals(r.Context(), s.orch.Runner(req.Model), req.Definition, requirements)
	respondAgent(s, w, r, "goals", agents.StageGoals, res, err, req.ResponseType == models.ResponseText)
}

// handlePMAgent runs the project manager on caller-supplied goals.
func (s *Server) handlePMAgent(w http.ResponseWriter, r *http.Request) {
	var req PMAgentRequest
	if err := decodeRequest(r, requestSpec{required: []string{"goals"}}, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	goals, err := literalOrSummary[models.Goals](req.Goals, "goals")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := agents.Decompose(r.Context(), s.orch.Runner(req.Model), goals)
	respondAgent(s, w, r, "documentation", agents.StageDecomposition, res, err, req.ResponseType == models.ResponseText)
}

// handleSSDAgent runs the senior developer on caller-supplied documentation.
func (s *Server) handleSSDAgent(w http.ResponseWriter, r *http.Request) {
	var req SSDAgentRequest
	if err := decodeRequest(r, requestSpec{required: []string{"num_of_devs", "documentation"}}, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	numDevs, err := strconv.Atoi(strings.TrimSpace(req.NumOfDevs.String()))
	if err != nil || numDevs < 1 {
		s.writeError(w, r, &ValidationError{Message: "num_of_devs must be a positive integer", Missing: []string{"num_of_devs"}})
		return
	}
	documentation, err := literalOrSummary[models.Decomposition](req.Documentation, "documentation")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var roster string
	if len(req.Employees) > 0 {
		team := models.ProjectDefinition{Employees: req.Employees, Timeline: req.Timeline}
		roster = team.RosterText()
	}
	res, err := agents.AssignTasks(r.Context(), s.orch.Runner(req.Model), numDevs, roster, documentation)
	respondAgent(s, w, r, "Tasks", agents.StageTaskAssignment, res, err, req.ResponseType == models.ResponseText)
}

// respondAgent writes a raw agent's result as {key: value}, or as
// {"message": summary} when text was asked for.
func respondAgent[T any](s *Server, w http.ResponseWriter, r *http.Request, key, stage string, res core.Result[T], err error, text bool) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !text {
		writeAPIJSON(w, http.StatusOK, map[string]any{key: res.Value})
		return
	}
	if res.Empty() {
		s.writeError(w, r, &stageError{stage: stage, reason: res.Reason})
		return
	}
	summary, err := agents.Summary(res.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]string{"message": summary})
}

// literalOrSummary returns a prior stage's output as prompt text. A JSON
// string is used as is; an object is decoded as T and summarized.
func literalOrSummary[T any](raw json.RawMessage, field string) (string, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if strings.TrimSpace(text) == "" {
			return "", &ValidationError{Message: "Missing parameters", Missing: []string{field}}
		}
		return text, nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", &ValidationError{Message: fmt.Sprintf("%s must be text or a %s document", field, field), Missing: []string{field}}
	}
	summary, err := agents.Summary(value)
	var missing *agents.MissingFieldError
	if errors.As(err, &missing) {
		return "", &ValidationError{Message: err.Error(), Missing: []string{field + "." + missing.Field}}
	}
	return summary, err
}

// handleListRuns returns recorded runs, newest first, honoring ?limit.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 500 {
			limit = l
		}
	}

	runs, err := s.runs.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		result = append(result, toRunSummary(run))
	}
	writeAPIJSON(w, http.StatusOK, result)
}

// handleGetRun returns one recorded run with its artifact, or 404.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeAPIJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, RunDetail{
		RunSummary: toRunSummary(run),
		Definition: run.Definition,
		Artifact:   run.Artifact,
	})
}

func toRunSummary(run store.Run) RunSummary {
	return RunSummary{
		ID:          run.ID,
		ProjectName: run.ProjectName,
		Status:      string(run.Status),
		FailedStage: run.FailedStage,
		Error:       run.Error,
		Provider:    run.Provider,
		Model:       run.Model,
		StartedAt:   run.StartedAt,
		DurationMS:  run.Duration().Milliseconds(),
	}
}
