package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/josephgoksu/AgentX/internal/agents"
	"github.com/josephgoksu/AgentX/internal/agents/core"
	"github.com/josephgoksu/AgentX/models"
)

// The single-stage services below never fail on an unusable reply: they
// return the stage's typed default instead. Backend and precondition
// errors are still returned.

// Redefine rewrites a project definition.
func (o *Orchestrator) Redefine(ctx context.Context, model, projectName, definition string) (models.Redefinition, error) {
	res, err := agents.Redefine(ctx, o.Runner(model), projectName, definition)
	return res.Value, err
}

// IdentifyKeyFeatures lists the key features of a definition.
func (o *Orchestrator) IdentifyKeyFeatures(ctx context.Context, model, definition string) (models.KeyFeatures, error) {
	res, err := agents.IdentifyKeyFeatures(ctx, o.Runner(model), definition)
	return res.Value, err
}

// GenerateDocs writes the specification document and draws both diagrams
// concurrently.
func (o *Orchestrator) GenerateDocs(ctx context.Context, model, definition string, keyFeatures []string) (models.DocsBundle, error) {
	runner := o.Runner(model)

	var doc core.Result[models.Documentation]
	var useCase, er agents.Diagram
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = agents.Document(gctx, runner, definition, keyFeatures)
		return err
	})
	if o.cfg.Diagrams {
		g.Go(func() error {
			useCase, er = agents.DrawDiagrams(gctx, runner, definition, keyFeatures)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.DocsBundle{}, err
	}

	for _, d := range []agents.Diagram{useCase, er} {
		if d.Reason != nil {
			o.logger.Warn("diagram dropped", "error", d.Reason)
		}
	}
	return models.DocsBundle{
		DocName:        doc.Value.DocName,
		DocDesc:        doc.Value.DocDesc,
		DocBody:        doc.Value.DocBody,
		UseCaseDiagram: useCase.Source,
		ERDiagram:      er.Source,
	}, nil
}

// TaskRequest is the input to CreateTasks.
type TaskRequest struct {
	Definition  string
	KeyFeatures []string
	Employees   []models.TeamMember
	Timeline    string
	Model       string
}

// CreateTasks creates assigned tasks straight from a definition.
func (o *Orchestrator) CreateTasks(ctx context.Context, req TaskRequest) (models.TaskPlan, error) {
	team := models.ProjectDefinition{Employees: req.Employees, Timeline: models.FlexString(req.Timeline)}
	definition := req.Definition
	if len(req.KeyFeatures) > 0 {
		definition += "\nKey features: " + agents.FeatureList(req.KeyFeatures)
	}
	res, err := agents.PlanTasks(ctx, o.Runner(req.Model), team.NumDevs(), team.RosterText(), definition)
	return res.Value, err
}
