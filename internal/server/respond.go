package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/josephgoksu/AgentX/internal/agents"
	"github.com/josephgoksu/AgentX/internal/llm"
	"github.com/josephgoksu/AgentX/internal/pipeline"
	"github.com/josephgoksu/AgentX/prompts"
)

func writeAPIJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var (
		validation *ValidationError
		backend    *llm.BackendError
		failed     *pipeline.StageFailedError
		missingVar *prompts.MissingVariableError
		missingFld *agents.MissingFieldError
		empty      *stageError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &backend):
		return http.StatusBadGateway
	case errors.As(err, &missingVar), errors.As(err, &missingFld):
		return http.StatusInternalServerError
	case errors.As(err, &failed), errors.As(err, &empty):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error", "missing", "stage"}.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}

	var validation *ValidationError
	if errors.As(err, &validation) {
		resp.Missing = validation.Missing
	}
	var failed *pipeline.StageFailedError
	if errors.As(err, &failed) {
		resp.Stage = string(failed.Stage)
	}
	var stage *stageError
	if errors.As(err, &stage) {
		resp.Stage = stage.stage
	}

	attrs := []any{"request_id", middleware.GetReqID(r.Context()), "path", r.URL.Path, "status", status, "error", err}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", attrs...)
	} else {
		s.logger.Warn("request rejected", attrs...)
	}
	writeAPIJSON(w, status, resp)
}

// stageError is an Empty stage result that a text response cannot render.
type stageError struct {
	stage  string
	reason error
}

func (e *stageError) Error() string {
	return "stage " + e.stage + " returned no usable result: " + e.reason.Error()
}

func (e *stageError) Unwrap() error { return e.reason }
