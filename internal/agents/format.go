package agents

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/AgentX/models"
)

// Placeholders for optional fields the model left out.
const (
	placeholderProject      = "The project"
	placeholderProjectName  = "Unknown Project"
	placeholderAssignee     = "Unassigned"
	placeholderID           = "Unknown ID"
	placeholderDescription  = "No description provided"
	placeholderPriority     = "Unknown priority"
	placeholderStatus       = "Unknown status"
	placeholderInstructions = "No instructions provided"
	placeholderDeadline     = "unspecified"
)

// MissingFieldError reports a required field absent from a stage value.
// Summaries never invent required content.
type MissingFieldError struct {
	Stage string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Stage, e.Field)
}

// SummarizeRequirements renders the analyst's document as the numbered
// paragraph the product owner reads.
func SummarizeRequirements(r models.Requirements) (string, error) {
	if len(r.Goals) == 0 {
		return "", &MissingFieldError{Stage: StageRequirements, Field: "goals"}
	}
	if len(r.FunctionalRequirements) == 0 {
		return "", &MissingFieldError{Stage: StageRequirements, Field: "functional_requirements"}
	}

	subject := placeholderProject
	if name := strings.TrimSpace(r.ProjectName); name != "" {
		subject = "The " + name
	}

	lines := []string{
		fmt.Sprintf("%s aims to %s.", subject, strings.Join(r.Goals, " and ")),
		fmt.Sprintf("The application will include key functional features such as %s.", strings.Join(r.FunctionalRequirements, ", ")),
	}
	if len(r.NonFunctionalRequirements) > 0 {
		lines = append(lines, fmt.Sprintf("Additionally, it must meet non-functional requirements like %s to ensure usability and reliability.", strings.Join(r.NonFunctionalRequirements, ", ")))
	}
	if len(r.TechnicalRequirements) > 0 {
		lines = append(lines, fmt.Sprintf("On the technical side, the project will be built using %s.", strings.Join(r.TechnicalRequirements, ", ")))
	}
	if roles := r.StakeholderRequirements.Roles(); len(roles) > 0 {
		sentences := make([]string, 0, len(roles))
		for _, role := range roles {
			sentences = append(sentences, fmt.Sprintf("%s require: %s.", role, strings.Join(r.StakeholderRequirements[role], ", ")))
		}
		lines = append(lines, "From a stakeholder perspective, "+strings.Join(sentences, " "))
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, line)
	}
	return b.String(), nil
}

// SummarizeGoals renders the product owner's prioritized goals.
func SummarizeGoals(g models.Goals) (string, error) {
	if len(g.PriorityGoals) == 0 {
		return "", &MissingFieldError{Stage: StageGoals, Field: "priority_goals"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "For the project '%s', the following priority goals have been set for the current sprint:\n", orPlaceholder(g.ProjectName, placeholderProjectName))
	for i, goal := range g.PriorityGoals {
		if strings.TrimSpace(goal.Title) == "" {
			return "", &MissingFieldError{Stage: StageGoals, Field: fmt.Sprintf("priority_goals[%d].title", i)}
		}
		fmt.Fprintf(&b, "%s. %s: %s (Priority: %s, Status: %s)\n",
			orPlaceholder(goal.ID.String(), placeholderID),
			goal.Title,
			orPlaceholder(goal.Description, placeholderDescription),
			orPlaceholder(goal.Priority, placeholderPriority),
			orPlaceholder(goal.Status, placeholderStatus),
		)
	}
	b.WriteString("Begin with the goals that need the most immediate attention and keep communication between teams clear.")
	return b.String(), nil
}

// SummarizeDecomposition renders the project manager's subtasks.
func SummarizeDecomposition(d models.Decomposition) (string, error) {
	if len(d.Subtasks) == 0 {
		return "", &MissingFieldError{Stage: StageDecomposition, Field: "subtasks"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Project: %q\n\n", orPlaceholder(d.Project, placeholderProjectName))
	if len(d.HighLevelRequirements) > 0 {
		b.WriteString("High-Level Requirements:\n")
		for _, req := range d.HighLevelRequirements {
			fmt.Fprintf(&b, "- %s\n", req)
		}
		b.WriteByte('\n')
	}
	b.WriteString("Subtasks:\n")
	for i, st := range d.Subtasks {
		if strings.TrimSpace(st.Description) == "" {
			return "", &MissingFieldError{Stage: StageDecomposition, Field: fmt.Sprintf("subtasks[%d].description", i)}
		}
		fmt.Fprintf(&b, "%s. %s (Priority: %s, Assignee: %s)\n",
			orPlaceholder(st.ID.String(), placeholderID),
			st.Description,
			orPlaceholder(st.Priority, placeholderPriority),
			orPlaceholder(st.Assignee, placeholderAssignee),
		)
		fmt.Fprintf(&b, "Instructions: %s\n", orPlaceholder(st.Instructions, placeholderInstructions))
	}
	b.WriteString("\nComplete the subtasks in priority order and test continuously so the components integrate smoothly.")
	return b.String(), nil
}

// SummarizeTasks renders the senior developer's assignments.
func SummarizeTasks(tasks []models.Task) (string, error) {
	if len(tasks) == 0 {
		return "", &MissingFieldError{Stage: StageTaskAssignment, Field: "tasks"}
	}

	var b strings.Builder
	b.WriteString("Developer Assignment Summary:\n")
	for i, task := range tasks {
		if strings.TrimSpace(task.Name) == "" {
			return "", &MissingFieldError{Stage: StageTaskAssignment, Field: fmt.Sprintf("[%d].name", i)}
		}
		if strings.TrimSpace(task.AssignedTo) == "" {
			return "", &MissingFieldError{Stage: StageTaskAssignment, Field: fmt.Sprintf("[%d].assigned_to", i)}
		}
		deadline := placeholderDeadline
		if d := strings.TrimSpace(task.Deadline.String()); d != "" {
			deadline = d + " days"
		}
		fmt.Fprintf(&b, "- %s (Assigned to: %s, Priority: %s, Deadline: %s)\n",
			task.Name, task.AssignedTo, orPlaceholder(task.Priority, placeholderPriority), deadline)
		fmt.Fprintf(&b, "  %s\n", orPlaceholder(task.Desc, placeholderDescription))
		if len(task.RequiredSkills) > 0 {
			fmt.Fprintf(&b, "  Skills: %s\n", strings.Join(task.RequiredSkills, ", "))
		}
	}
	b.WriteString("Complete every task by its deadline and raise blockers with the team lead early.")
	return b.String(), nil
}

// Summary dispatches on the stage value's type.
func Summary(value any) (string, error) {
	switch v := value.(type) {
	case models.Requirements:
		return SummarizeRequirements(v)
	case models.Goals:
		return SummarizeGoals(v)
	case models.Decomposition:
		return SummarizeDecomposition(v)
	case models.TaskAssignment:
		return SummarizeTasks(v)
	case []models.Task:
		return SummarizeTasks(v)
	case models.TaskPlan:
		return SummarizeTasks(v.Tasks)
	default:
		return "", fmt.Errorf("no summary for %T", value)
	}
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
