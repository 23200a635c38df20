package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Requirements is the business analyst's requirements document.
type Requirements struct {
	DocName string `json:"doc_name" validate:"required,nonempty"`
	DocDesc string `json:"doc_desc" validate:"required,nonempty"`
	RequirementsBody
}

// RequirementsBody is Requirements without the document metadata.
type RequirementsBody struct {
	ProjectName               string       `json:"project_name,omitempty"`
	Goals                     []string     `json:"goals" validate:"required,min=1,dive,nonempty"`
	FunctionalRequirements    []string     `json:"functional_requirements" validate:"required,min=1"`
	NonFunctionalRequirements []string     `json:"non_functional_requirements"`
	TechnicalRequirements     []string     `json:"technical_requirements"`
	StakeholderRequirements   Stakeholders `json:"stakeholder_requirements"`
}

// Stakeholders maps a stakeholder role to its requirements.
type Stakeholders map[string][]string

// UnmarshalJSON accepts either an object keyed by role or an array of
// single-role objects. Values that fit neither shape are dropped.
func (s *Stakeholders) UnmarshalJSON(data []byte) error {
	out := Stakeholders{}
	data = bytes.TrimSpace(data)

	var byRole map[string]json.RawMessage
	if err := json.Unmarshal(data, &byRole); err == nil {
		for role, raw := range byRole {
			out.add(role, raw)
		}
		*s = out
		return nil
	}

	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err == nil {
		for _, entry := range entries {
			for role, raw := range entry {
				out.add(role, raw)
			}
		}
	}
	*s = out
	return nil
}

func (s Stakeholders) add(role string, raw json.RawMessage) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		s[role] = append(s[role], list...)
		return
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil && one != "" {
		s[role] = append(s[role], one)
	}
}

// Roles returns the stakeholder roles in sorted order.
func (s Stakeholders) Roles() []string {
	roles := make([]string, 0, len(s))
	for role := range s {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Goals is the product owner's prioritized goal list.
type Goals struct {
	ProjectName   string         `json:"project_name"`
	PriorityGoals []PriorityGoal `json:"priority_goals" validate:"required,min=1,dive"`
	// MessageToProjectManager is kept for clients; no later stage reads it.
	MessageToProjectManager string `json:"message_to_project_manager,omitempty"`
}

// PriorityGoal is one prioritized goal.
type PriorityGoal struct {
	ID          FlexString `json:"id"`
	Title       string     `json:"title" validate:"required,nonempty"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
}

// Decomposition is the project manager's subtask breakdown.
type Decomposition struct {
	Project               string    `json:"project"`
	HighLevelRequirements []string  `json:"high_level_requirements"`
	Subtasks              []Subtask `json:"subtasks" validate:"required,min=1,dive"`
}

// Subtask is one decomposed unit of work.
type Subtask struct {
	ID           FlexString `json:"id"`
	Description  string     `json:"description" validate:"required,nonempty"`
	Priority     string     `json:"priority"`
	Instructions string     `json:"instructions"`
	Assignee     string     `json:"assignee"`
}

// Task is a unit of work assigned to a team member by designation.
type Task struct {
	Name           string     `json:"name" validate:"required,nonempty"`
	Desc           string     `json:"desc"`
	Priority       string     `json:"priority"`
	AssignedTo     string     `json:"assigned_to" validate:"required,nonempty"`
	RequiredSkills []string   `json:"required_skills"`
	Deadline       FlexString `json:"deadline"`
}

// TaskAssignment is the senior developer's task list.
type TaskAssignment []Task

// Redefinition is a rewritten project definition. The JSON key keeps the
// spelling existing clients send and read.
type Redefinition struct {
	NewDefinition string `json:"new_defination" validate:"required,nonempty"`
}

// KeyFeatures lists a project's key features.
type KeyFeatures struct {
	KeyFeatures []string `json:"key_features" validate:"required,min=1,dive,nonempty"`
}

// Documentation is a generated specification document.
type Documentation struct {
	DocName string          `json:"doc_name" validate:"required,nonempty"`
	DocDesc string          `json:"doc_desc" validate:"required,nonempty"`
	DocBody json.RawMessage `json:"doc_body" validate:"required"`
}

// TaskPlan is a task list produced straight from a project definition.
type TaskPlan struct {
	Tasks []Task `json:"tasks" validate:"required,min=1,dive"`
}

// UseCaseDiagram holds Mermaid flowchart source.
type UseCaseDiagram struct {
	UseCaseDiagram string `json:"use_case_diagram" validate:"required,nonempty"`
}

// ERDiagram holds Mermaid erDiagram source.
type ERDiagram struct {
	ERDiagram string `json:"er_diagram" validate:"required,nonempty"`
}
