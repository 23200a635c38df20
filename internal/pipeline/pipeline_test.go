package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/AgentX/internal/agents"
	"github.com/josephgoksu/AgentX/internal/agents/core"
	"github.com/josephgoksu/AgentX/internal/extract"
	"github.com/josephgoksu/AgentX/internal/llm"
	"github.com/josephgoksu/AgentX/internal/llm/llmtest"
	"github.com/josephgoksu/AgentX/models"
	"github.com/josephgoksu/AgentX/prompts"
	"github.com/josephgoksu/AgentX/store"
)

const (
	requirementsReply = "Here is the requirements document:\n```json\n" + `{
  "project_name": "Todo App",
  "doc_name": "Software Requirements Specification",
  "doc_desc": "Requirements for a simple todo list",
  "goals": ["Let users manage daily tasks"],
  "functional_requirements": ["User sign up and login", "Create, edit and delete todos"],
  "non_functional_requirements": ["Responsive UI"],
  "technical_requirements": ["Node.js backend"],
  "stakeholder_requirements": {"End Users": ["Simple interface"]}
}` + "\n```\nLet me know if you need anything else."

	goalsReply = `{
  "project_name": "Todo App",
  "priority_goals": [{"id": 1, "title": "Authentication", "description": "Login flow", "priority": "High", "status": "To Do"}],
  "message_to_project_manager": "Start with auth."
}`

	decompositionReply = `{
  "project": "Todo App",
  "high_level_requirements": ["REST API"],
  "subtasks": [{"id": 1, "description": "Build auth API", "priority": "High", "instructions": "Use JWT", "assignee": "Senior Software Developer"}]
}`

	tasksReply = `[
  {"name": "Implement login API", "desc": "JWT auth with Node.js", "priority": "High", "assigned_to": "Backend Developer", "required_skills": ["Node.js"], "deadline": "2"},
  {"name": "Todo CRUD endpoints", "desc": "Express routes", "priority": "Medium", "assigned_to": "Backend Developer", "required_skills": ["Node.js"], "deadline": 3}
]`

	useCaseReply = `{"use_case_diagram": "graph TD\n  User((User))\n  UC1[Manage Todos]\n  User -->|uses| UC1"}`
	erReply      = `{"er_diagram": "erDiagram\n  USER ||--o{ TODO : owns\n  TODO {\n    string id PK\n    string title\n  }"}`
)

func todoApp() models.ProjectDefinition {
	return models.ProjectDefinition{
		ProjectName:     "Todo App",
		DevelopmentType: "web application",
		Complexity:      "LOW",
		Description:     "simple todo list",
		KeyFeatures:     []string{"User Authentication"},
		Employees:       []models.TeamMember{{Name: "A", Designation: "Backend Developer", Skillset: []string{"Node.js"}}},
		Timeline:        "5",
	}
}

func happyGateway() *llmtest.Gateway {
	return llmtest.New().
		Reply(prompts.KeyRequirements, requirementsReply).
		Reply(prompts.KeyGoals, goalsReply).
		Reply(prompts.KeyDecomposition, decompositionReply).
		Reply(prompts.KeyTaskAssignment, tasksReply).
		Reply(prompts.KeyUseCaseDiagram, useCaseReply).
		Reply(prompts.KeyERDiagram, erReply)
}

type transitions struct {
	mu  sync.Mutex
	all []Transition
}

func (t *transitions) observe(tr Transition) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.all = append(t.all, tr)
}

func (t *transitions) states() []State {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]State, 0, len(t.all))
	for _, tr := range t.all {
		out = append(out, tr.To)
	}
	return out
}

func newOrchestrator(gw llm.Gateway, opts ...Option) *Orchestrator {
	return New(core.NewRunner(gw, llm.Options{Temperature: 1}), Config{Timeout: 5 * time.Second, Diagrams: true}, opts...)
}

func TestRun_TodoApp(t *testing.T) {
	gw := happyGateway()
	var seen transitions
	o := newOrchestrator(gw, WithObserver(seen.observe))

	artifact, err := o.Run(context.Background(), todoApp())
	require.NoError(t, err)

	assert.NotEmpty(t, artifact.ID)
	assert.Equal(t, "Software Requirements Specification", artifact.Name)
	assert.Equal(t, "Requirements for a simple todo list", artifact.Description)
	assert.Equal(t, []string{"Let users manage daily tasks"}, artifact.DocBody.Goals)
	assert.NotEmpty(t, artifact.DocBody.FunctionalRequirements)

	require.NotEmpty(t, artifact.Tasks)
	for _, task := range artifact.Tasks {
		assert.NotEmpty(t, task.Name)
		assert.Equal(t, "Backend Developer", task.AssignedTo)
	}
	assert.Equal(t, "Implement login API", artifact.Tasks[0].Name, "task order is preserved")

	assert.Contains(t, artifact.UseCaseDiagram, "graph TD")
	assert.Contains(t, artifact.ERDiagram, "erDiagram")

	assert.Equal(t, []State{StateRequirements, StateGoals, StateDecomposition, StateTaskAssignment, StateDone}, seen.states())
	for _, key := range []prompts.Key{prompts.KeyRequirements, prompts.KeyGoals, prompts.KeyDecomposition, prompts.KeyTaskAssignment} {
		assert.Equal(t, 1, gw.Calls(key), "calls for %s", key)
	}
}

func TestRun_ArtifactJSONShape(t *testing.T) {
	artifact, err := newOrchestrator(happyGateway()).Run(context.Background(), todoApp())
	require.NoError(t, err)

	raw, err := json.Marshal(artifact)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"id", "name", "description", "doc_body", "tasks", "use_case_diagram", "er_diagram"} {
		assert.Contains(t, decoded, key)
	}

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["doc_body"], &body))
	assert.Contains(t, body, "goals")
	assert.Contains(t, body, "functional_requirements")
	assert.NotContains(t, body, "doc_name")
	assert.NotContains(t, body, "doc_desc")
}

func TestRun_RequirementsProseFails(t *testing.T) {
	gw := happyGateway().
		Reply(prompts.KeyRequirements, "I'm sorry, I can only describe the project in words.").
		Hang(prompts.KeyUseCaseDiagram).
		Hang(prompts.KeyERDiagram)
	var seen transitions
	o := newOrchestrator(gw, WithObserver(seen.observe))

	done := make(chan struct{})
	var err error
	go func() {
		defer close(done)
		_, err = o.Run(context.Background(), todoApp())
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return; diagram branch was not cancelled")
	}

	var sf *StageFailedError
	require.True(t, errors.As(err, &sf), "err = %v", err)
	assert.Equal(t, StateRequirements, sf.Stage)
	assert.True(t, errors.Is(err, extract.ErrNoJSON))

	assert.Equal(t, 0, gw.Calls(prompts.KeyGoals))
	assert.Equal(t, 0, gw.Calls(prompts.KeyDecomposition))
	assert.Equal(t, 0, gw.Calls(prompts.KeyTaskAssignment))
	assert.Equal(t, []State{StateRequirements, StateFailed}, seen.states())
}

func TestRun_EmptyGoalsNeverDecomposes(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "no json", reply: "Goals: ship it."},
		{name: "missing priority goals", reply: `{"project_name": "Todo App", "message_to_project_manager": "hi"}`},
		{name: "goal without title", reply: `{"priority_goals": [{"id": 1, "description": "x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := happyGateway().Reply(prompts.KeyGoals, tt.reply)
			_, err := newOrchestrator(gw).Run(context.Background(), todoApp())

			var sf *StageFailedError
			require.True(t, errors.As(err, &sf), "err = %v", err)
			assert.Equal(t, StateGoals, sf.Stage)
			assert.Equal(t, 1, gw.Calls(prompts.KeyGoals))
			assert.Equal(t, 0, gw.Calls(prompts.KeyDecomposition))
			assert.Equal(t, 0, gw.Calls(prompts.KeyTaskAssignment))
		})
	}
}

func TestRun_MalformedDiagramsDegrade(t *testing.T) {
	gw := happyGateway().
		Reply(prompts.KeyUseCaseDiagram, "graph TD; A-->B (sorry, not JSON").
		Reply(prompts.KeyERDiagram, `{"er_diagram": "erDiagram\n  this is not a diagram"}`)

	artifact, err := newOrchestrator(gw).Run(context.Background(), todoApp())
	require.NoError(t, err)
	assert.Equal(t, "", artifact.UseCaseDiagram)
	assert.Equal(t, "", artifact.ERDiagram)
	assert.Len(t, artifact.Tasks, 2)
	assert.NotEmpty(t, artifact.DocBody.Goals)
}

func TestRun_BackendErrorFailsStage(t *testing.T) {
	gw := happyGateway().Fail(prompts.KeyDecomposition, errors.New("503 from upstream"))

	_, err := newOrchestrator(gw).Run(context.Background(), todoApp())
	var sf *StageFailedError
	require.True(t, errors.As(err, &sf), "err = %v", err)
	assert.Equal(t, StateDecomposition, sf.Stage)
	var be *llm.BackendError
	assert.True(t, errors.As(err, &be))
	assert.Equal(t, 0, gw.Calls(prompts.KeyTaskAssignment))
}

func TestRun_TotalTimeout(t *testing.T) {
	gw := happyGateway().Hang(prompts.KeyGoals)
	o := New(core.NewRunner(gw, llm.Options{}), Config{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := o.Run(context.Background(), todoApp())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "err = %v", err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRun_DiagramsDisabled(t *testing.T) {
	gw := happyGateway()
	o := New(core.NewRunner(gw, llm.Options{}), Config{})

	artifact, err := o.Run(context.Background(), todoApp())
	require.NoError(t, err)
	assert.Equal(t, "", artifact.UseCaseDiagram)
	assert.Equal(t, 0, gw.Calls(prompts.KeyUseCaseDiagram))
}

func TestRun_ModelOverride(t *testing.T) {
	gw := happyGateway()
	def := todoApp()
	def.Model = "gpt-4o"

	_, err := newOrchestrator(gw).Run(context.Background(), def)
	require.NoError(t, err)
	for _, opts := range gw.Options() {
		assert.Equal(t, "gpt-4o", opts.ModelID)
		assert.Equal(t, float32(1), opts.Temperature)
	}
}

func TestRun_RecordsHistory(t *testing.T) {
	runs, err := store.NewSQLiteRunStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = runs.Close() }()

	ok := newOrchestrator(happyGateway(), WithStore(runs), WithBackend("gemini", "gemini-2.0-flash"))
	artifact, err := ok.Run(context.Background(), todoApp())
	require.NoError(t, err)

	failing := newOrchestrator(happyGateway().Reply(prompts.KeyRequirements, "nope"), WithStore(runs))
	_, err = failing.Run(context.Background(), todoApp())
	require.Error(t, err)

	list, err := runs.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	got, err := runs.Get(context.Background(), artifact.ID)
	require.NoError(t, err)
	assert.Equal(t, store.RunDone, got.Status)
	assert.Equal(t, "gemini", got.Provider)
	var recorded models.Artifact
	require.NoError(t, json.Unmarshal(got.Artifact, &recorded))
	assert.Equal(t, artifact.Tasks, recorded.Tasks)

	for _, r := range list {
		if r.ID != artifact.ID {
			assert.Equal(t, store.RunFailed, r.Status)
			assert.Equal(t, string(StateRequirements), r.FailedStage)
		}
	}
}

func TestRun_SummariesFeedNextStage(t *testing.T) {
	gw := &capturingGateway{Gateway: happyGateway()}
	_, err := newOrchestrator(gw).Run(context.Background(), todoApp())
	require.NoError(t, err)

	goalsPrompt := gw.prompt(prompts.KeyGoals)
	assert.Contains(t, goalsPrompt, "1. The Todo App aims to Let users manage daily tasks.")
	assert.Contains(t, goalsPrompt, "I want to build a web application for the project 'Todo App'.")
	assert.Contains(t, gw.prompt(prompts.KeyDecomposition), "1. Authentication: Login flow (Priority: High, Status: To Do)")
	assignPrompt := gw.prompt(prompts.KeyTaskAssignment)
	assert.Contains(t, assignPrompt, "Assign tasks to 1 employees")
	assert.Contains(t, assignPrompt, "A (Backend Developer, Skills: Node.js)")
	assert.Contains(t, assignPrompt, "1. Build auth API (Priority: High, Assignee: Senior Software Developer)")
	assert.NotContains(t, gw.prompt(prompts.KeyDecomposition), "Start with auth.")
}

type capturingGateway struct {
	*llmtest.Gateway
	mu      sync.Mutex
	prompts map[prompts.Key]string
}

func (c *capturingGateway) Complete(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	if key, ok := llmtest.Identify(prompt); ok {
		c.mu.Lock()
		if c.prompts == nil {
			c.prompts = make(map[prompts.Key]string)
		}
		c.prompts[key] = prompt
		c.mu.Unlock()
	}
	return c.Gateway.Complete(ctx, prompt, opts)
}

func (c *capturingGateway) prompt(key prompts.Key) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prompts[key]
}

func TestServices(t *testing.T) {
	gw := happyGateway().
		Reply(prompts.KeyRedefine, `{"new_defination": "A precise todo app"}`).
		Reply(prompts.KeyKeyFeatures, "nothing useful").
		Reply(prompts.KeyDocumentation, `{"doc_name": "SRS", "doc_desc": "desc", "doc_body": [{"section": "1. Introduction", "content": []}]}`).
		Reply(prompts.KeyTaskPlan, `{"tasks": [{"name": "Set up DB", "assigned_to": "Backend Developer"}]}`)
	o := newOrchestrator(gw)
	ctx := context.Background()

	redef, err := o.Redefine(ctx, "", "Todo App", "todo list")
	require.NoError(t, err)
	assert.Equal(t, "A precise todo app", redef.NewDefinition)

	features, err := o.IdentifyKeyFeatures(ctx, "", "todo list")
	require.NoError(t, err)
	assert.Equal(t, []string{}, features.KeyFeatures, "unparseable reply yields the typed default")

	docs, err := o.GenerateDocs(ctx, "", "todo list", []string{"Login"})
	require.NoError(t, err)
	assert.Equal(t, "SRS", docs.DocName)
	assert.JSONEq(t, `[{"section": "1. Introduction", "content": []}]`, string(docs.DocBody))
	assert.Contains(t, docs.UseCaseDiagram, "graph TD")
	assert.Contains(t, docs.ERDiagram, "erDiagram")

	plan, err := o.CreateTasks(ctx, TaskRequest{
		Definition:  "todo list",
		KeyFeatures: []string{"Login"},
		Employees:   []models.TeamMember{{Name: "A", Designation: "Backend Developer"}},
		Timeline:    "5",
	})
	require.NoError(t, err)
	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, "Backend Developer", plan.Tasks[0].AssignedTo)
}

func TestServices_DocumentationDefault(t *testing.T) {
	gw := happyGateway().Reply(prompts.KeyDocumentation, "no document today")
	docs, err := newOrchestrator(gw).GenerateDocs(context.Background(), "", "todo list", nil)
	require.NoError(t, err)
	assert.Equal(t, "", docs.DocName)
	assert.JSONEq(t, `{}`, string(docs.DocBody))
	assert.NotEmpty(t, docs.UseCaseDiagram)
}

func TestServices_BackendErrorPropagates(t *testing.T) {
	gw := happyGateway().Fail(prompts.KeyRedefine, errors.New("unauthorized"))
	_, err := newOrchestrator(gw).Redefine(context.Background(), "", "X", "y")
	var be *llm.BackendError
	assert.True(t, errors.As(err, &be), "err = %v", err)
}

func TestStageFailedError(t *testing.T) {
	reason := &agents.MissingFieldError{Stage: "goals", Field: "priority_goals"}
	err := error(&StageFailedError{Stage: StateGoals, Reason: reason})
	assert.Equal(t, `pipeline failed at stage goals: goals: missing required field "priority_goals"`, err.Error())
	var mf *agents.MissingFieldError
	assert.True(t, errors.As(err, &mf))
}

func TestExecute_Summaries(t *testing.T) {
	out, err := newOrchestrator(happyGateway()).Execute(context.Background(), todoApp())
	require.NoError(t, err)
	assert.Equal(t, "Authentication", out.Goals.PriorityGoals[0].Title)
	assert.Len(t, out.Tasks, 2)

	summaries, err := out.Summaries()
	require.NoError(t, err)
	assert.Len(t, summaries, 4)
	assert.Contains(t, summaries["requirements"], "Let users manage daily tasks")
	assert.Contains(t, summaries["goals"], "Authentication")
	assert.Contains(t, summaries["documentation"], "Build auth API")
	assert.Contains(t, summaries["tasks"], "Implement login API")
	assert.NotContains(t, summaries["goals"], "Start with auth.")
}
