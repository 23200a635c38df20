/*
Package pipeline sequences the planning stages into one run: requirements,
goals, decomposition and task assignment, with the diagrams drawn alongside.
*/
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/josephgoksu/AgentX/internal/agents"
	"github.com/josephgoksu/AgentX/internal/agents/core"
	"github.com/josephgoksu/AgentX/models"
	"github.com/josephgoksu/AgentX/store"
)

// State is a step of a pipeline run.
type State string

const (
	StateDefineRoster   State = "define_roster"
	StateRequirements   State = "requirements"
	StateGoals          State = "goals"
	StateDecomposition  State = "decomposition"
	StateTaskAssignment State = "task_assignment"
	StateDone           State = "done"
	StateFailed         State = "failed"
)

// Transition is reported to an Observer on every state change.
type Transition struct {
	RunID    string
	From     State
	To       State
	Duration time.Duration // time spent in From
	Err      error         // set when To is StateFailed
}

// Observer receives state transitions. It is called from the run's goroutine.
type Observer func(Transition)

// StageFailedError stops a run at a required stage.
type StageFailedError struct {
	Stage  State
	Reason error
}

func (e *StageFailedError) Error() string {
	return fmt.Sprintf("pipeline failed at stage %s: %v", e.Stage, e.Reason)
}

func (e *StageFailedError) Unwrap() error { return e.Reason }

// Config controls a pipeline run.
type Config struct {
	// Timeout bounds a whole run. Zero means no deadline.
	Timeout time.Duration
	// Diagrams enables the diagram branch.
	Diagrams bool
}

// Orchestrator runs pipelines. It is safe for concurrent use; every run
// works on its own copies of the inputs.
type Orchestrator struct {
	runner   *core.Runner
	cfg      Config
	store    store.RunStore
	observer Observer
	logger   *slog.Logger
	provider string
	model    string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStore records every run in s.
func WithStore(s store.RunStore) Option {
	return func(o *Orchestrator) { o.store = s }
}

// WithObserver reports state transitions to fn.
func WithObserver(fn Observer) Option {
	return func(o *Orchestrator) { o.observer = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBackend labels recorded runs with the configured provider and model.
func WithBackend(provider, model string) Option {
	return func(o *Orchestrator) {
		o.provider = provider
		o.model = model
	}
}

// New creates an Orchestrator.
func New(runner *core.Runner, cfg Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{runner: runner, cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Runner returns the stage runner for a request, applying a per-request
// model override when one is given.
func (o *Orchestrator) Runner(model string) *core.Runner {
	return o.runner.WithModel(model)
}

// run tracks the state of one pipeline invocation.
type run struct {
	id      string
	state   State
	entered time.Time
	o       *Orchestrator
}

func (r *run) advance(to State, err error) {
	t := Transition{RunID: r.id, From: r.state, To: to, Duration: time.Since(r.entered), Err: err}
	r.state = to
	r.entered = time.Now()
	if to == StateFailed {
		r.o.logger.Warn("pipeline run failed", "run_id", r.id, "stage", t.From, "duration", t.Duration, "error", err)
	} else {
		r.o.logger.Debug("pipeline state", "run_id", r.id, "from", t.From, "to", to, "duration", t.Duration)
	}
	if r.o.observer != nil {
		r.o.observer(t)
	}
}

// fail moves the run to StateFailed and returns the error for the stage
// it was in.
func (r *run) fail(reason error) error {
	err := &StageFailedError{Stage: r.state, Reason: reason}
	r.advance(StateFailed, err)
	return err
}

// Outcome is a finished run: the artifact plus each required stage's
// parsed value.
type Outcome struct {
	Artifact      *models.Artifact
	Requirements  models.Requirements
	Goals         models.Goals
	Decomposition models.Decomposition
	Tasks         models.TaskAssignment
}

// Summaries renders every stage as prose, keyed the way text responses
// name them.
func (out *Outcome) Summaries() (map[string]string, error) {
	summaries := make(map[string]string, 4)
	var err error
	if summaries["requirements"], err = agents.SummarizeRequirements(out.Requirements); err != nil {
		return nil, err
	}
	if summaries["goals"], err = agents.SummarizeGoals(out.Goals); err != nil {
		return nil, err
	}
	if summaries["documentation"], err = agents.SummarizeDecomposition(out.Decomposition); err != nil {
		return nil, err
	}
	if summaries["tasks"], err = agents.SummarizeTasks(out.Tasks); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Run executes the full pipeline for def and returns its artifact.
func (o *Orchestrator) Run(ctx context.Context, def models.ProjectDefinition) (*models.Artifact, error) {
	out, err := o.Execute(ctx, def)
	if err != nil {
		return nil, err
	}
	return out.Artifact, nil
}

// Execute runs the full pipeline for def. An Empty result or backend error
// at any required stage stops the run with *StageFailedError; diagram
// failures only leave the diagram empty.
func (o *Orchestrator) Execute(ctx context.Context, def models.ProjectDefinition) (*Outcome, error) {
	started := time.Now()
	r := &run{id: uuid.NewString(), state: StateDefineRoster, entered: started, o: o}
	runner := o.Runner(def.Model)

	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	definition := def.DefinitionText()
	o.logger.Info("pipeline run started", "run_id", r.id, "project", def.ProjectName)

	diagramCtx, cancelDiagrams := context.WithCancel(ctx)
	defer cancelDiagrams()
	var useCase, er agents.Diagram
	var g errgroup.Group
	if o.cfg.Diagrams {
		g.Go(func() error {
			useCase, er = agents.DrawDiagrams(diagramCtx, runner, definition, def.KeyFeatures)
			return nil
		})
	}

	out, err := o.chain(ctx, r, runner, def, definition)
	if err != nil {
		cancelDiagrams()
		_ = g.Wait()
		o.record(r.id, def, started, nil, err)
		return nil, err
	}

	_ = g.Wait()
	artifact := out.Artifact
	if useCase.Reason != nil {
		o.logger.Warn("use case diagram dropped", "run_id", r.id, "error", useCase.Reason)
	}
	if er.Reason != nil {
		o.logger.Warn("er diagram dropped", "run_id", r.id, "error", er.Reason)
	}
	artifact.UseCaseDiagram = useCase.Source
	artifact.ERDiagram = er.Source

	r.advance(StateDone, nil)
	o.logger.Info("pipeline run finished", "run_id", r.id, "tasks", len(artifact.Tasks), "duration", time.Since(started))
	o.record(r.id, def, started, artifact, nil)
	return out, nil
}

// chain runs the sequential stages. Each stage's formatted summary is the
// next stage's prompt context.
func (o *Orchestrator) chain(ctx context.Context, r *run, runner *core.Runner, def models.ProjectDefinition, definition string) (*Outcome, error) {
	roster := def.RosterText()
	numDevs := def.NumDevs()

	r.advance(StateRequirements, nil)
	reqRes, err := agents.AnalyzeRequirements(ctx, runner, definition)
	requirements, err := required(reqRes, err)
	if err != nil {
		return nil, r.fail(err)
	}
	reqSummary, err := agents.SummarizeRequirements(requirements)
	if err != nil {
		return nil, r.fail(err)
	}

	r.advance(StateGoals, nil)
	goalsRes, err := agents.PrioritizeGoals(ctx, runner, definition, reqSummary)
	goals, err := required(goalsRes, err)
	if err != nil {
		return nil, r.fail(err)
	}
	goalsSummary, err := agents.SummarizeGoals(goals)
	if err != nil {
		return nil, r.fail(err)
	}

	r.advance(StateDecomposition, nil)
	decompRes, err := agents.Decompose(ctx, runner, goalsSummary)
	decomposition, err := required(decompRes, err)
	if err != nil {
		return nil, r.fail(err)
	}
	decompSummary, err := agents.SummarizeDecomposition(decomposition)
	if err != nil {
		return nil, r.fail(err)
	}

	r.advance(StateTaskAssignment, nil)
	tasksRes, err := agents.AssignTasks(ctx, runner, numDevs, roster, decompSummary)
	tasks, err := required(tasksRes, err)
	if err != nil {
		return nil, r.fail(err)
	}

	return &Outcome{
		Artifact: &models.Artifact{
			ID:          r.id,
			Name:        requirements.DocName,
			Description: requirements.DocDesc,
			DocBody:     requirements.RequirementsBody,
			Tasks:       tasks,
		},
		Requirements:  requirements,
		Goals:         goals,
		Decomposition: decomposition,
		Tasks:         tasks,
	}, nil
}

// required turns a stage outcome into its value, or the reason the run
// cannot continue.
func required[T any](res core.Result[T], err error) (T, error) {
	if err != nil {
		return res.Value, err
	}
	if res.Empty() {
		return res.Value, res.Reason
	}
	return res.Value, nil
}

func (o *Orchestrator) record(id string, def models.ProjectDefinition, started time.Time, artifact *models.Artifact, runErr error) {
	if o.store == nil {
		return
	}
	rec := store.Run{
		ID:          id,
		ProjectName: def.ProjectName,
		Status:      store.RunDone,
		Provider:    o.provider,
		Model:       o.model,
		StartedAt:   started,
		FinishedAt:  time.Now(),
	}
	if def.Model != "" {
		rec.Model = def.Model
	}
	if b, err := json.Marshal(def); err == nil {
		rec.Definition = b
	}
	if artifact != nil {
		if b, err := json.Marshal(artifact); err == nil {
			rec.Artifact = b
		}
	}
	if runErr != nil {
		rec.Status = store.RunFailed
		rec.Error = runErr.Error()
		var sf *StageFailedError
		if errors.As(runErr, &sf) {
			rec.FailedStage = string(sf.Stage)
		}
	}

	// The request context may already be done; history is written regardless.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.store.Record(ctx, rec); err != nil {
		o.logger.Error("failed to record run", "run_id", id, "error", err)
	}
}
