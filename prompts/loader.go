package prompts

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/spf13/afero"
)

// Key identifies a stage prompt template.
type Key string

const (
	KeyRequirements   Key = "requirements"
	KeyGoals          Key = "goals"
	KeyDecomposition  Key = "decomposition"
	KeyTaskAssignment Key = "task_assignment"
	KeyRedefine       Key = "redefine"
	KeyKeyFeatures    Key = "key_features"
	KeyDocumentation  Key = "documentation"
	KeyTaskPlan       Key = "task_plan"
	KeyUseCaseDiagram Key = "use_case_diagram"
	KeyERDiagram      Key = "er_diagram"
)

// Vars are the named values substituted into a template.
type Vars map[string]string

// promptConfig defines the built-in content, override filename and
// required variables for a prompt.
type promptConfig struct {
	defaultContent string
	filename       string
	required       []string
}

var promptRegistry = map[Key]promptConfig{
	KeyRequirements: {
		defaultContent: RequirementsPrompt,
		filename:       "requirements.tmpl",
		required:       []string{"definition"},
	},
	KeyGoals: {
		defaultContent: GoalsPrompt,
		filename:       "goals.tmpl",
		required:       []string{"definition", "requirements"},
	},
	KeyDecomposition: {
		defaultContent: DecompositionPrompt,
		filename:       "decomposition.tmpl",
		required:       []string{"goals"},
	},
	KeyTaskAssignment: {
		defaultContent: TaskAssignmentPrompt,
		filename:       "task_assignment.tmpl",
		required:       []string{"num_devs", "roster", "documentation"},
	},
	KeyRedefine: {
		defaultContent: RedefinePrompt,
		filename:       "redefine.tmpl",
		required:       []string{"project_name", "definition"},
	},
	KeyKeyFeatures: {
		defaultContent: KeyFeaturesPrompt,
		filename:       "key_features.tmpl",
		required:       []string{"definition"},
	},
	KeyDocumentation: {
		defaultContent: DocumentationPrompt,
		filename:       "documentation.tmpl",
		required:       []string{"definition", "key_features"},
	},
	KeyTaskPlan: {
		defaultContent: TaskPlanPrompt,
		filename:       "task_plan.tmpl",
		required:       []string{"num_devs", "roster", "definition"},
	},
	KeyUseCaseDiagram: {
		defaultContent: UseCaseDiagramPrompt,
		filename:       "use_case_diagram.tmpl",
		required:       []string{"definition"},
	},
	KeyERDiagram: {
		defaultContent: ERDiagramPrompt,
		filename:       "er_diagram.tmpl",
		required:       []string{"definition", "key_features"},
	},
}

// MissingVariableError is returned when a template's required variables
// were not supplied.
type MissingVariableError struct {
	Key   Key
	Names []string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("prompt %s: missing template variables: %s", e.Key, strings.Join(e.Names, ", "))
}

// Keys returns all registered prompt keys in sorted order.
func Keys() []Key {
	keys := make([]Key, 0, len(promptRegistry))
	for k := range promptRegistry {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Required returns the variables a template needs.
func Required(key Key) ([]string, error) {
	cfg, ok := promptRegistry[key]
	if !ok {
		return nil, fmt.Errorf("unrecognized prompt key: %s", key)
	}
	return append([]string(nil), cfg.required...), nil
}

// Renderer renders stage prompts, preferring override files from dir.
// A zero Renderer renders the built-in templates only.
type Renderer struct {
	fs  afero.Fs
	dir string
}

// NewRenderer returns a Renderer that looks for overrides in dir on fs.
// An empty dir disables overrides.
func NewRenderer(fs afero.Fs, dir string) *Renderer {
	return &Renderer{fs: fs, dir: strings.TrimSpace(dir)}
}

// Source returns the template text for key: the override file when one
// exists, otherwise the built-in content. Overrides are read on every call.
func (r *Renderer) Source(key Key) (string, error) {
	cfg, ok := promptRegistry[key]
	if !ok {
		return "", fmt.Errorf("unrecognized prompt key: %s", key)
	}
	if r == nil || r.fs == nil || r.dir == "" {
		return cfg.defaultContent, nil
	}

	path := filepath.Join(r.dir, cfg.filename)
	exists, err := afero.Exists(r.fs, path)
	if err != nil {
		return "", fmt.Errorf("check prompt override %s: %w", path, err)
	}
	if !exists {
		return cfg.defaultContent, nil
	}
	content, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return "", fmt.Errorf("read prompt override %s: %w", path, err)
	}
	return string(content), nil
}

// Render substitutes vars into the template for key. Every required
// variable must be present; all missing names are reported together.
func (r *Renderer) Render(key Key, vars Vars) (string, error) {
	src, err := r.Source(key)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, name := range promptRegistry[key].required {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", &MissingVariableError{Key: key, Names: missing}
	}

	tmpl, err := template.New(string(key)).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse prompt %s: %w", key, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string(vars)); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", key, err)
	}
	return buf.String(), nil
}

// Render renders a built-in template.
func Render(key Key, vars Vars) (string, error) {
	var r *Renderer
	return r.Render(key, vars)
}
