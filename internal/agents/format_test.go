package agents

import (
	"errors"
	"strings"
	"testing"

	"github.com/josephgoksu/AgentX/models"
)

func sampleRequirements() models.Requirements {
	return models.Requirements{
		DocName: "Software Requirements Specification",
		DocDesc: "Requirements for the Todo App",
		RequirementsBody: models.RequirementsBody{
			ProjectName:               "Todo App",
			Goals:                     []string{"let users track tasks", "keep data private"},
			FunctionalRequirements:    []string{"Create tasks", "Mark tasks done"},
			NonFunctionalRequirements: []string{"Responds in 200ms"},
			TechnicalRequirements:     []string{"Node.js"},
			StakeholderRequirements: models.Stakeholders{
				"QA":        {"Test flows"},
				"End Users": {"Simple UI", "Offline mode"},
			},
		},
	}
}

func TestSummarizeRequirements(t *testing.T) {
	got, err := SummarizeRequirements(sampleRequirements())
	if err != nil {
		t.Fatalf("SummarizeRequirements() error = %v", err)
	}
	want := strings.Join([]string{
		"1. The Todo App aims to let users track tasks and keep data private.",
		"2. The application will include key functional features such as Create tasks, Mark tasks done.",
		"3. Additionally, it must meet non-functional requirements like Responds in 200ms to ensure usability and reliability.",
		"4. On the technical side, the project will be built using Node.js.",
		"5. From a stakeholder perspective, End Users require: Simple UI, Offline mode. QA require: Test flows.",
	}, "\n")
	if got != want {
		t.Errorf("SummarizeRequirements() =\n%s\nwant\n%s", got, want)
	}
}

func TestSummarizeRequirements_Deterministic(t *testing.T) {
	req := sampleRequirements()
	req.StakeholderRequirements["Admins"] = []string{"Audit log"}
	req.StakeholderRequirements["Developers"] = []string{"Docs"}

	first, err := SummarizeRequirements(req)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, _ := SummarizeRequirements(req)
		if again != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, again, first)
		}
	}
}

func TestSummarizeRequirements_Placeholders(t *testing.T) {
	req := models.Requirements{RequirementsBody: models.RequirementsBody{
		Goals:                  []string{"ship"},
		FunctionalRequirements: []string{"login"},
	}}
	got, err := SummarizeRequirements(req)
	if err != nil {
		t.Fatal(err)
	}
	want := "1. The project aims to ship.\n2. The application will include key functional features such as login."
	if got != want {
		t.Errorf("SummarizeRequirements() = %q, want %q", got, want)
	}
}

func TestSummarizers_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name      string
		run       func() (string, error)
		wantStage string
		wantField string
	}{
		{
			name:      "requirements without goals",
			run:       func() (string, error) { return SummarizeRequirements(models.Requirements{}) },
			wantStage: StageRequirements,
			wantField: "goals",
		},
		{
			name: "requirements without functional requirements",
			run: func() (string, error) {
				return SummarizeRequirements(models.Requirements{RequirementsBody: models.RequirementsBody{Goals: []string{"x"}}})
			},
			wantStage: StageRequirements,
			wantField: "functional_requirements",
		},
		{
			name:      "goals without priority goals",
			run:       func() (string, error) { return SummarizeGoals(models.Goals{ProjectName: "X"}) },
			wantStage: StageGoals,
			wantField: "priority_goals",
		},
		{
			name: "goal without title",
			run: func() (string, error) {
				return SummarizeGoals(models.Goals{PriorityGoals: []models.PriorityGoal{{ID: "1"}}})
			},
			wantStage: StageGoals,
			wantField: "priority_goals[0].title",
		},
		{
			name:      "decomposition without subtasks",
			run:       func() (string, error) { return SummarizeDecomposition(models.Decomposition{}) },
			wantStage: StageDecomposition,
			wantField: "subtasks",
		},
		{
			name: "task without assignee",
			run: func() (string, error) {
				return SummarizeTasks([]models.Task{{Name: "API"}})
			},
			wantStage: StageTaskAssignment,
			wantField: "[0].assigned_to",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.run()
			var mf *MissingFieldError
			if !errors.As(err, &mf) {
				t.Fatalf("error = %v, want *MissingFieldError", err)
			}
			if mf.Stage != tt.wantStage || mf.Field != tt.wantField {
				t.Errorf("MissingFieldError = %+v, want stage %s field %s", mf, tt.wantStage, tt.wantField)
			}
		})
	}
}

func TestSummarizeGoals(t *testing.T) {
	got, err := SummarizeGoals(models.Goals{
		PriorityGoals: []models.PriorityGoal{
			{ID: "1", Title: "Build API", Description: "REST API", Priority: "High", Status: "To Do"},
			{Title: "Build UI"},
		},
		MessageToProjectManager: "start with the API",
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"For the project 'Unknown Project'",
		"1. Build API: REST API (Priority: High, Status: To Do)",
		"Unknown ID. Build UI: No description provided (Priority: Unknown priority, Status: Unknown status)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("SummarizeGoals() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "start with the API") {
		t.Error("SummarizeGoals() should not forward message_to_project_manager")
	}
}

func TestSummarizeDecomposition(t *testing.T) {
	got, err := SummarizeDecomposition(models.Decomposition{
		Project:               "Todo App",
		HighLevelRequirements: []string{"React frontend"},
		Subtasks: []models.Subtask{
			{ID: "1", Description: "Set up repo", Priority: "High", Instructions: "git init", Assignee: "Senior Software Developer"},
			{Description: "Write tests"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`Project: "Todo App"`,
		"- React frontend",
		"1. Set up repo (Priority: High, Assignee: Senior Software Developer)\nInstructions: git init",
		"Unknown ID. Write tests (Priority: Unknown priority, Assignee: Unassigned)\nInstructions: No instructions provided",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("SummarizeDecomposition() missing %q in:\n%s", want, got)
		}
	}
}

func TestSummarizeTasks(t *testing.T) {
	got, err := SummarizeTasks([]models.Task{
		{Name: "API", Desc: "Express endpoints", Priority: "High", AssignedTo: "Backend Developer", RequiredSkills: []string{"Node.js"}, Deadline: "3"},
		{Name: "Docs", AssignedTo: "Backend Developer"},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"- API (Assigned to: Backend Developer, Priority: High, Deadline: 3 days)\n  Express endpoints\n  Skills: Node.js",
		"- Docs (Assigned to: Backend Developer, Priority: Unknown priority, Deadline: unspecified)\n  No description provided",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("SummarizeTasks() missing %q in:\n%s", want, got)
		}
	}
}

func TestSummary_Dispatch(t *testing.T) {
	if _, err := Summary(sampleRequirements()); err != nil {
		t.Errorf("Summary(Requirements) error = %v", err)
	}
	if _, err := Summary(models.TaskPlan{Tasks: []models.Task{{Name: "a", AssignedTo: "b"}}}); err != nil {
		t.Errorf("Summary(TaskPlan) error = %v", err)
	}
	if _, err := Summary(42); err == nil {
		t.Error("Summary(int) error = nil, want error")
	}
}
