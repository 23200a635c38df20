/*
Package agents defines the planning stages (business analyst, product owner,
project manager, senior developer and the single-purpose helpers) on top of
the core stage runtime, plus the formatters that turn one stage's result into
the next stage's prompt context.
*/
package agents

import (
	"context"
	"strconv"
	"strings"

	"github.com/josephgoksu/AgentX/internal/agents/core"
	"github.com/josephgoksu/AgentX/internal/extract"
	"github.com/josephgoksu/AgentX/models"
	"github.com/josephgoksu/AgentX/prompts"
)

// Stage names. They double as debug mirror file names.
const (
	StageRequirements   = "requirements"
	StageGoals          = "goals"
	StageDecomposition  = "decomposition"
	StageTaskAssignment = "task_assignment"
	StageRedefine       = "redefine"
	StageKeyFeatures    = "key_features"
	StageDocumentation  = "documentation"
	StageTaskPlan       = "task_plan"
	StageUseCaseDiagram = "use_case_diagram"
	StageERDiagram      = "er_diagram"
)

var (
	BusinessAnalyst = core.Stage[models.Requirements]{
		Name:        StageRequirements,
		Description: "Business analyst: turns a project definition into a requirements document",
		Prompt:      prompts.KeyRequirements,
		Shape:       extract.Object,
		Default:     emptyRequirements,
	}

	ProductOwner = core.Stage[models.Goals]{
		Name:        StageGoals,
		Description: "Product owner: prioritizes the analyst's goals",
		Prompt:      prompts.KeyGoals,
		Shape:       extract.Object,
		Default:     func() models.Goals { return models.Goals{PriorityGoals: []models.PriorityGoal{}} },
	}

	ProjectManager = core.Stage[models.Decomposition]{
		Name:        StageDecomposition,
		Description: "Project manager: decomposes prioritized goals into subtasks",
		Prompt:      prompts.KeyDecomposition,
		Shape:       extract.Object,
		Default: func() models.Decomposition {
			return models.Decomposition{HighLevelRequirements: []string{}, Subtasks: []models.Subtask{}}
		},
	}

	SeniorDeveloper = core.Stage[models.TaskAssignment]{
		Name:        StageTaskAssignment,
		Description: "Senior developer: assigns tasks to the team by designation",
		Prompt:      prompts.KeyTaskAssignment,
		Shape:       extract.Array,
		Default:     func() models.TaskAssignment { return models.TaskAssignment{} },
	}

	Redefiner = core.Stage[models.Redefinition]{
		Name:        StageRedefine,
		Description: "Rewrites a project definition to be precise and consistent",
		Prompt:      prompts.KeyRedefine,
		Shape:       extract.Object,
	}

	KeyFeatureExtractor = core.Stage[models.KeyFeatures]{
		Name:        StageKeyFeatures,
		Description: "Lists the key features of a project definition",
		Prompt:      prompts.KeyKeyFeatures,
		Shape:       extract.Object,
		Default:     func() models.KeyFeatures { return models.KeyFeatures{KeyFeatures: []string{}} },
	}

	Documenter = core.Stage[models.Documentation]{
		Name:        StageDocumentation,
		Description: "Writes a software requirements specification",
		Prompt:      prompts.KeyDocumentation,
		Shape:       extract.Object,
		Default: func() models.Documentation {
			return models.Documentation{DocBody: []byte("{}")}
		},
	}

	TaskPlanner = core.Stage[models.TaskPlan]{
		Name:        StageTaskPlan,
		Description: "Creates and assigns tasks straight from a project definition",
		Prompt:      prompts.KeyTaskPlan,
		Shape:       extract.Object,
		Default:     func() models.TaskPlan { return models.TaskPlan{Tasks: []models.Task{}} },
	}

	UseCaseDiagrammer = core.Stage[models.UseCaseDiagram]{
		Name:        StageUseCaseDiagram,
		Description: "Draws a use case diagram as a Mermaid flowchart",
		Prompt:      prompts.KeyUseCaseDiagram,
		Shape:       extract.Object,
	}

	ERDiagrammer = core.Stage[models.ERDiagram]{
		Name:        StageERDiagram,
		Description: "Draws an entity-relationship diagram in Mermaid",
		Prompt:      prompts.KeyERDiagram,
		Shape:       extract.Object,
	}
)

func init() {
	for _, info := range []core.StageInfo{
		BusinessAnalyst.Info(),
		ProductOwner.Info(),
		ProjectManager.Info(),
		SeniorDeveloper.Info(),
		Redefiner.Info(),
		KeyFeatureExtractor.Info(),
		Documenter.Info(),
		TaskPlanner.Info(),
		UseCaseDiagrammer.Info(),
		ERDiagrammer.Info(),
	} {
		core.Register(info)
	}
}

func emptyRequirements() models.Requirements {
	return models.Requirements{
		RequirementsBody: models.RequirementsBody{
			Goals:                     []string{},
			FunctionalRequirements:    []string{},
			NonFunctionalRequirements: []string{},
			TechnicalRequirements:     []string{},
			StakeholderRequirements:   models.Stakeholders{},
		},
	}
}

// AnalyzeRequirements runs the business analyst on a prose definition.
func AnalyzeRequirements(ctx context.Context, r *core.Runner, definition string) (core.Result[models.Requirements], error) {
	return core.Run(ctx, r, BusinessAnalyst, prompts.Vars{"definition": definition})
}

// PrioritizeGoals runs the product owner on the definition and the
// analyst's summarized requirements.
func PrioritizeGoals(ctx context.Context, r *core.Runner, definition, requirements string) (core.Result[models.Goals], error) {
	return core.Run(ctx, r, ProductOwner, prompts.Vars{"definition": definition, "requirements": requirements})
}

// Decompose runs the project manager on the summarized goals.
func Decompose(ctx context.Context, r *core.Runner, goals string) (core.Result[models.Decomposition], error) {
	return core.Run(ctx, r, ProjectManager, prompts.Vars{"goals": goals})
}

// AssignTasks runs the senior developer on the project manager's document.
func AssignTasks(ctx context.Context, r *core.Runner, numDevs int, roster, documentation string) (core.Result[models.TaskAssignment], error) {
	return core.Run(ctx, r, SeniorDeveloper, prompts.Vars{
		"num_devs":      strconv.Itoa(numDevs),
		"roster":        roster,
		"documentation": documentation,
	})
}

// Redefine rewrites a project definition.
func Redefine(ctx context.Context, r *core.Runner, projectName, definition string) (core.Result[models.Redefinition], error) {
	return core.Run(ctx, r, Redefiner, prompts.Vars{"project_name": projectName, "definition": definition})
}

// IdentifyKeyFeatures lists the key features of a definition.
func IdentifyKeyFeatures(ctx context.Context, r *core.Runner, definition string) (core.Result[models.KeyFeatures], error) {
	return core.Run(ctx, r, KeyFeatureExtractor, prompts.Vars{"definition": definition})
}

// Document writes a requirements specification for a definition.
func Document(ctx context.Context, r *core.Runner, definition string, keyFeatures []string) (core.Result[models.Documentation], error) {
	return core.Run(ctx, r, Documenter, prompts.Vars{"definition": definition, "key_features": FeatureList(keyFeatures)})
}

// PlanTasks creates assigned tasks straight from a definition.
func PlanTasks(ctx context.Context, r *core.Runner, numDevs int, roster, definition string) (core.Result[models.TaskPlan], error) {
	return core.Run(ctx, r, TaskPlanner, prompts.Vars{
		"num_devs":   strconv.Itoa(numDevs),
		"roster":     roster,
		"definition": definition,
	})
}

// FeatureList renders key features for a prompt.
func FeatureList(features []string) string {
	return strings.Join(features, ", ")
}
