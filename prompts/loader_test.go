package prompts

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func fullVars(key Key) Vars {
	vars := Vars{}
	names, _ := Required(key)
	for _, name := range names {
		vars[name] = "<" + name + ">"
	}
	return vars
}

func TestRender_AllKeys(t *testing.T) {
	tests := []struct {
		key      Key
		contains []string
	}{
		{key: KeyRequirements, contains: []string{"doc_name", "functional_requirements", "stakeholder_requirements"}},
		{key: KeyGoals, contains: []string{"priority_goals", "message_to_project_manager"}},
		{key: KeyDecomposition, contains: []string{"high_level_requirements", "subtasks"}},
		{key: KeyTaskAssignment, contains: []string{"assigned_to", "required_skills"}},
		{key: KeyRedefine, contains: []string{"new_defination"}},
		{key: KeyKeyFeatures, contains: []string{"key_features"}},
		{key: KeyDocumentation, contains: []string{"doc_body"}},
		{key: KeyTaskPlan, contains: []string{`"tasks"`}},
		{key: KeyUseCaseDiagram, contains: []string{"use_case_diagram", "graph TD"}},
		{key: KeyERDiagram, contains: []string{"er_diagram", "erDiagram"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			vars := fullVars(tt.key)
			got, err := Render(tt.key, vars)
			if err != nil {
				t.Fatalf("Render(%s) error = %v", tt.key, err)
			}
			for name, value := range vars {
				if !strings.Contains(got, value) {
					t.Errorf("Render(%s) did not substitute %s", tt.key, name)
				}
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Render(%s) missing schema field %q", tt.key, want)
				}
			}
			if strings.Contains(got, "{{") {
				t.Errorf("Render(%s) left template actions in output", tt.key)
			}
		})
	}
}

func TestKeys_CoversRegistry(t *testing.T) {
	if got := len(Keys()); got != 10 {
		t.Fatalf("Keys() returned %d keys, want 10", got)
	}
}

func TestRender_MissingVariables(t *testing.T) {
	_, err := Render(KeyTaskAssignment, Vars{"roster": "A (Backend Developer)"})
	if err == nil {
		t.Fatal("Render() error = nil, want MissingVariableError")
	}
	var missing *MissingVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("Render() error type = %T, want *MissingVariableError", err)
	}
	if missing.Key != KeyTaskAssignment {
		t.Errorf("Key = %s, want %s", missing.Key, KeyTaskAssignment)
	}
	want := []string{"num_devs", "documentation"}
	if strings.Join(missing.Names, ",") != strings.Join(want, ",") {
		t.Errorf("Names = %v, want %v", missing.Names, want)
	}
}

func TestRender_UnknownKey(t *testing.T) {
	if _, err := Render(Key("nope"), Vars{}); err == nil {
		t.Fatal("Render() error = nil, want error for unknown key")
	}
}

func TestRenderer_Override(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/prompts/key_features.tmpl", []byte("features of {{.definition}} as {\"key_features\": []}"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(fs, "/prompts")

	got, err := r.Render(KeyKeyFeatures, Vars{"definition": "a todo app"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != `features of a todo app as {"key_features": []}` {
		t.Errorf("Render() = %q, want override content", got)
	}

	// Keys without an override file fall back to the built-in template.
	got, err = r.Render(KeyRequirements, Vars{"definition": "a todo app"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(got, "Business Analyst") {
		t.Error("Render() without override should use the built-in template")
	}
}

func TestRenderer_OverrideReadOnEveryRender(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/prompts/redefine.tmpl"
	r := NewRenderer(fs, "/prompts")
	vars := Vars{"project_name": "X", "definition": "Y"}

	_ = afero.WriteFile(fs, path, []byte("v1 {{.project_name}}"), 0o644)
	first, err := r.Render(KeyRedefine, vars)
	if err != nil {
		t.Fatal(err)
	}
	_ = afero.WriteFile(fs, path, []byte("v2 {{.definition}}"), 0o644)
	second, err := r.Render(KeyRedefine, vars)
	if err != nil {
		t.Fatal(err)
	}
	if first != "v1 X" || second != "v2 Y" {
		t.Errorf("renders = %q, %q; want override edits to apply immediately", first, second)
	}
}

func TestRenderer_BrokenOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/p/goals.tmpl", []byte("{{.definition"), 0o644)
	r := NewRenderer(fs, "/p")

	if _, err := r.Render(KeyGoals, Vars{"definition": "d", "requirements": "r"}); err == nil {
		t.Fatal("Render() error = nil, want parse error")
	}
}
