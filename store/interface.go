package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// RunStatus is the terminal state of a recorded pipeline run.
type RunStatus string

const (
	RunDone   RunStatus = "done"
	RunFailed RunStatus = "failed"
)

// ErrNotFound is returned when a run id is unknown.
var ErrNotFound = errors.New("run not found")

// Run is one recorded pipeline invocation.
type Run struct {
	ID          string          `json:"id"`
	ProjectName string          `json:"project_name"`
	Status      RunStatus       `json:"status"`
	FailedStage string          `json:"failed_stage,omitempty"`
	Error       string          `json:"error,omitempty"`
	Provider    string          `json:"provider,omitempty"`
	Model       string          `json:"model,omitempty"`
	Definition  json.RawMessage `json:"definition,omitempty"`
	Artifact    json.RawMessage `json:"artifact,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
}

// Duration is how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunStore persists pipeline run history.
type RunStore interface {
	// Record stores a finished run. Recording an existing id replaces it.
	Record(ctx context.Context, run Run) error

	// Get returns the run with id, or ErrNotFound.
	Get(ctx context.Context, id string) (Run, error)

	// List returns up to limit runs, newest first. The artifact payload is
	// omitted; use Get for the full record. A limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]Run, error)

	// Close releases the underlying resources.
	Close() error
}
