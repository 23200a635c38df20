package agents

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/josephgoksu/AgentX/internal/agents/core"
	"github.com/josephgoksu/AgentX/internal/extract"
	"github.com/josephgoksu/AgentX/prompts"
)

// Diagram is the outcome of one best-effort diagram generation. Source is
// empty whenever Reason is set.
type Diagram struct {
	Source string
	Reason error
}

// DrawUseCase generates a use case flowchart for definition.
func DrawUseCase(ctx context.Context, r *core.Runner, definition string) Diagram {
	res, err := core.Run(ctx, r, UseCaseDiagrammer, prompts.Vars{"definition": definition})
	if err != nil {
		return Diagram{Reason: err}
	}
	if res.Empty() {
		return Diagram{Reason: res.Reason}
	}
	// Models often wrap the diagram itself in a mermaid fence.
	src := extract.StripFences(res.Value.UseCaseDiagram)
	if err := CheckFlowchart(src); err != nil {
		return Diagram{Reason: err}
	}
	return Diagram{Source: src}
}

// DrawER generates an entity-relationship diagram for definition.
func DrawER(ctx context.Context, r *core.Runner, definition string, keyFeatures []string) Diagram {
	res, err := core.Run(ctx, r, ERDiagrammer, prompts.Vars{"definition": definition, "key_features": FeatureList(keyFeatures)})
	if err != nil {
		return Diagram{Reason: err}
	}
	if res.Empty() {
		return Diagram{Reason: res.Reason}
	}
	src := extract.StripFences(res.Value.ERDiagram)
	if err := CheckERDiagram(src); err != nil {
		return Diagram{Reason: err}
	}
	return Diagram{Source: src}
}

// DrawDiagrams generates both diagrams concurrently. Neither failure affects
// the other.
func DrawDiagrams(ctx context.Context, r *core.Runner, definition string, keyFeatures []string) (useCase, er Diagram) {
	var g errgroup.Group
	g.Go(func() error {
		useCase = DrawUseCase(ctx, r, definition)
		return nil
	})
	g.Go(func() error {
		er = DrawER(ctx, r, definition, keyFeatures)
		return nil
	})
	_ = g.Wait()
	return useCase, er
}
