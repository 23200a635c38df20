/*
Package core provides the stage runtime shared by all agents.

A stage renders one prompt, sends it to the model gateway once and parses the
reply into a typed value checked against the stage's schema.
*/
package core

import (
	"fmt"

	"github.com/josephgoksu/AgentX/internal/extract"
	"github.com/josephgoksu/AgentX/models"
	"github.com/josephgoksu/AgentX/prompts"
)

// Stage describes one prompt-to-JSON step.
type Stage[T any] struct {
	Name        string
	Description string
	Prompt      prompts.Key
	Shape       extract.Shape
	// Default builds the value carried by an Empty result. Nil means T's zero value.
	Default func() T
}

func (s Stage[T]) fallback() T {
	if s.Default != nil {
		return s.Default()
	}
	var zero T
	return zero
}

// Info returns the registry metadata for the stage.
func (s Stage[T]) Info() StageInfo {
	return StageInfo{ID: s.Name, Name: s.Name, Description: s.Description, Prompt: string(s.Prompt)}
}

// Result is the outcome of a stage. An Ok result always holds a value that
// passed the stage schema; an Empty result holds the stage default and the
// reason parsing failed.
type Result[T any] struct {
	Value  T
	Reason error
	Raw    string
}

// Empty reports whether the reply could not be used.
func (r Result[T]) Empty() bool { return r.Reason != nil }

// Ok reports whether Value passed the stage schema.
func (r Result[T]) Ok() bool { return r.Reason == nil }

// ExtractionError means no usable JSON payload was found in the reply.
type ExtractionError struct {
	Stage string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SchemaError means the payload parsed but lacks required keys.
type SchemaError struct {
	Stage  string
	Result models.ValidationResult
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("stage %s: schema check failed: %s", e.Stage, e.Result.ErrorSummary())
}

// Parse turns a raw model reply into a Result. It never returns an error:
// every failure becomes an Empty result carrying the stage default.
func Parse[T any](stage Stage[T], raw string) Result[T] {
	value, err := extract.Decode[T](raw, stage.Shape)
	if err != nil {
		return Result[T]{Value: stage.fallback(), Reason: &ExtractionError{Stage: stage.Name, Err: err}, Raw: raw}
	}
	if check := models.Validate(value); !check.Valid {
		return Result[T]{Value: stage.fallback(), Reason: &SchemaError{Stage: stage.Name, Result: check}, Raw: raw}
	}
	return Result[T]{Value: value, Raw: raw}
}
