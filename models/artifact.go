package models

import "encoding/json"

// Artifact is the final output of a pipeline run.
type Artifact struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	DocBody        RequirementsBody `json:"doc_body"`
	Tasks          []Task           `json:"tasks"`
	UseCaseDiagram string           `json:"use_case_diagram"`
	ERDiagram      string           `json:"er_diagram"`
}

// DocsBundle is a generated document together with its diagrams.
type DocsBundle struct {
	DocName        string          `json:"doc_name"`
	DocDesc        string          `json:"doc_desc"`
	DocBody        json.RawMessage `json:"doc_body"`
	UseCaseDiagram string          `json:"use_case_diagram"`
	ERDiagram      string          `json:"er_diagram"`
}
