package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/josephgoksu/AgentX/internal/llm"
	"github.com/josephgoksu/AgentX/prompts"
)

// Runner executes stages against a gateway. It holds no per-run state and
// is safe for concurrent use.
type Runner struct {
	gateway llm.Gateway
	prompts *prompts.Renderer
	opts    llm.Options
	mirror  *Mirror
	logger  *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRenderer sets the prompt renderer. The default renders built-in templates.
func WithRenderer(r *prompts.Renderer) RunnerOption {
	return func(rn *Runner) { rn.prompts = r }
}

// WithMirror copies every raw reply to m.
func WithMirror(m *Mirror) RunnerOption {
	return func(rn *Runner) { rn.mirror = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(rn *Runner) {
		if l != nil {
			rn.logger = l
		}
	}
}

// NewRunner creates a Runner that calls gw with opts.
func NewRunner(gw llm.Gateway, opts llm.Options, options ...RunnerOption) *Runner {
	r := &Runner{gateway: gw, opts: opts, logger: slog.Default()}
	for _, o := range options {
		o(r)
	}
	return r
}

// Options returns the per-call options the runner sends.
func (r *Runner) Options() llm.Options { return r.opts }

// WithModel returns a copy of r that overrides the model for every call.
// An empty id returns r unchanged.
func (r *Runner) WithModel(id string) *Runner {
	if id == "" {
		return r
	}
	clone := *r
	clone.opts.ModelID = id
	return &clone
}

// Run renders the stage prompt, calls the gateway once and parses the reply.
// Only precondition failures (missing template variables) and backend
// failures are returned as errors; unusable replies become Empty results.
func Run[T any](ctx context.Context, r *Runner, stage Stage[T], vars prompts.Vars) (Result[T], error) {
	empty := Result[T]{Value: stage.fallback()}

	prompt, err := r.prompts.Render(stage.Prompt, vars)
	if err != nil {
		return empty, fmt.Errorf("stage %s: %w", stage.Name, err)
	}

	start := time.Now()
	raw, err := r.gateway.Complete(ctx, prompt, r.opts)
	if err != nil {
		r.logger.Error("stage backend call failed", "stage", stage.Name, "duration", time.Since(start), "error", err)
		return empty, fmt.Errorf("stage %s: %w", stage.Name, err)
	}

	if err := r.mirror.Write(stage.Name, raw); err != nil {
		r.logger.Warn("debug mirror write failed", "stage", stage.Name, "error", err)
	}

	result := Parse(stage, raw)
	if result.Empty() {
		r.logger.Warn("stage reply unusable", "stage", stage.Name, "duration", time.Since(start), "error", result.Reason)
	} else {
		r.logger.Debug("stage completed", "stage", stage.Name, "duration", time.Since(start))
	}
	return result, nil
}
