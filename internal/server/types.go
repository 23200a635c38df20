package server

import (
	"encoding/json"
	"time"

	"github.com/josephgoksu/AgentX/models"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
	Stage   string   `json:"stage,omitempty"`
}

// pipelineFields are the top-level keys of a full pipeline request
var pipelineFields = []string{"project_name", "employees", "description", "development_type", "complexity", "key_features", "timeline"}

// InitProjectRequest is the payload for /init_project
type InitProjectRequest struct {
	ProjectName string `json:"project_name" validate:"required,nonempty"`
	Definition  string `json:"defination" validate:"required,nonempty"`
	Model       string `json:"model,omitempty"`
}

// KeyFeaturesRequest is the payload for /identify_key_features
type KeyFeaturesRequest struct {
	Definition string `json:"defination" validate:"required,nonempty"`
	Model      string `json:"model,omitempty"`
}

// GenerateDocsRequest is the payload for /generate_docs
type GenerateDocsRequest struct {
	Definition  string   `json:"defination" validate:"required,nonempty"`
	KeyFeatures []string `json:"key_features"`
	Model       string   `json:"model,omitempty"`
}

// CreateTasksRequest is the payload for /create_tasks
type CreateTasksRequest struct {
	Definition  string              `json:"defination" validate:"required,nonempty"`
	KeyFeatures []string            `json:"key_features"`
	Employees   []models.TeamMember `json:"employees" validate:"dive"`
	Timeline    models.FlexString   `json:"timeline"`
	Model       string              `json:"model,omitempty"`
}

// POAgentRequest is the payload for /po_agent. Requirements is either the
// analyst's summary text or its JSON document.
type POAgentRequest struct {
	Definition   string              `json:"definition" validate:"required,nonempty"`
	Requirements json.RawMessage     `json:"requirements" validate:"required"`
	ResponseType models.ResponseType `json:"response_type,omitempty" validate:"omitempty,oneof=json text"`
	Model        string              `json:"model,omitempty"`
}

// PMAgentRequest is the payload for /pm_agent. Goals is either summary
// text or the product owner's JSON document.
type PMAgentRequest struct {
	Goals        json.RawMessage     `json:"goals" validate:"required"`
	ResponseType models.ResponseType `json:"response_type,omitempty" validate:"omitempty,oneof=json text"`
	Model        string              `json:"model,omitempty"`
}

// SSDAgentRequest is the payload for /ssd_agent. Documentation is either
// summary text or the project manager's JSON document.
type SSDAgentRequest struct {
	NumOfDevs     models.FlexString   `json:"num_of_devs" validate:"required"`
	Documentation json.RawMessage     `json:"documentation" validate:"required"`
	Employees     []models.TeamMember `json:"employees" validate:"dive"`
	Timeline      models.FlexString   `json:"timeline"`
	ResponseType  models.ResponseType `json:"response_type,omitempty" validate:"omitempty,oneof=json text"`
	Model         string              `json:"model,omitempty"`
}

// AgentInfo describes a registered stage
type AgentInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

// RunSummary is one entry of /runs
type RunSummary struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"project_name"`
	Status      string    `json:"status"`
	FailedStage string    `json:"failed_stage,omitempty"`
	Error       string    `json:"error,omitempty"`
	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	DurationMS  int64     `json:"duration_ms"`
}

// RunDetail is the body of /runs/{id}
type RunDetail struct {
	RunSummary
	Definition json.RawMessage `json:"definition,omitempty"`
	Artifact   json.RawMessage `json:"artifact,omitempty"`
}
