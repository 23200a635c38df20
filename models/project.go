package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ResponseType selects how an endpoint renders its result.
type ResponseType string

const (
	ResponseJSON ResponseType = "json"
	ResponseText ResponseType = "text"
)

// FlexString is a string that also accepts a JSON number or boolean.
// Clients and models alike send ids, timelines and deadlines either way.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("expected string or number, got %s", data)
}

// String returns the underlying string.
func (f FlexString) String() string { return string(f) }

// TeamMember is one employee available for task assignment.
type TeamMember struct {
	Name        string   `json:"name" validate:"required,nonempty"`
	Designation string   `json:"designation" validate:"required,nonempty"`
	Skillset    []string `json:"skillset"`
}

// ProjectDefinition is the client's description of the project to plan.
type ProjectDefinition struct {
	ProjectName     string       `json:"project_name" validate:"required,nonempty"`
	Description     string       `json:"description" validate:"required,nonempty"`
	DevelopmentType string       `json:"development_type"`
	Complexity      string       `json:"complexity"`
	KeyFeatures     []string     `json:"key_features"`
	Employees       []TeamMember `json:"employees" validate:"dive"`
	Timeline        FlexString   `json:"timeline"`
	ResponseType    ResponseType `json:"response_type,omitempty" validate:"omitempty,oneof=json text"`
	Model           string       `json:"model,omitempty"`
}

// DefinitionText is the prose project definition fed to the first stage
// and to the diagram prompts.
func (p ProjectDefinition) DefinitionText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "I want to build a %s for the project '%s'.", orDefault(p.DevelopmentType, "software application"), p.ProjectName)
	if len(p.KeyFeatures) > 0 {
		fmt.Fprintf(&b, " It involves these key features: %s.", strings.Join(p.KeyFeatures, ", "))
	}
	if p.Complexity != "" {
		fmt.Fprintf(&b, " In brief, it is about %s complexity", p.Complexity)
		fmt.Fprintf(&b, " and involves: %s.", strings.TrimRight(p.Description, ". "))
	} else {
		fmt.Fprintf(&b, " In brief, it involves: %s.", strings.TrimRight(p.Description, ". "))
	}
	return b.String()
}

// RosterText describes the team and timeline for the task assignment prompt.
func (p ProjectDefinition) RosterText() string {
	members := make([]string, 0, len(p.Employees))
	for _, e := range p.Employees {
		members = append(members, fmt.Sprintf("%s (%s, Skills: %s)", e.Name, e.Designation, strings.Join(e.Skillset, ", ")))
	}
	roster := "My team includes the following members: " + strings.Join(members, ", ") + "."
	if p.Timeline != "" {
		roster += fmt.Sprintf(" The timeline to complete the project is %s days.", p.Timeline)
	}
	return roster
}

// NumDevs is the number of employees available.
func (p ProjectDefinition) NumDevs() int {
	return len(p.Employees)
}

// WantsText reports whether the caller asked for prose summaries.
func (p ProjectDefinition) WantsText() bool {
	return p.ResponseType == ResponseText
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
