/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/josephgoksu/AgentX/internal/pipeline"
	"github.com/josephgoksu/AgentX/internal/ui"
	"github.com/josephgoksu/AgentX/models"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

var (
	runFile   string
	runFormat string
	runModel  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline for a project definition",
	Long: `Run every stage for a project definition read from a JSON file
(or stdin with -f -) and print the resulting artifact.

Examples:
  agentx run -f todo.json                  # Styled output on a terminal, JSON otherwise
  agentx run -f todo.json --format yaml    # YAML artifact
  cat todo.json | agentx run -f - --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveFormat(runFormat, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		def, err := readDefinition(afero.NewOsFs(), runFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if runModel != "" {
			def.Model = runModel
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := newApp(ctx, GetConfig(), afero.NewOsFs(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		out, err := a.orch.Execute(ctx, def)
		if err != nil {
			return err
		}
		return writeOutcome(cmd.OutOrStdout(), out, format)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "project definition JSON file (- for stdin)")
	runCmd.Flags().StringVar(&runFormat, "format", "", "output format: json, yaml or text (default text on a terminal, json otherwise)")
	runCmd.Flags().StringVar(&runModel, "model", "", "model to use for this run")
	_ = runCmd.MarkFlagRequired("file")
}

// resolveFormat validates format, choosing a default from whether out is
// a terminal.
func resolveFormat(format string, out io.Writer) (string, error) {
	switch strings.ToLower(format) {
	case formatJSON, formatYAML, formatText:
		return strings.ToLower(format), nil
	case "":
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return formatText, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (use json, yaml or text)", format)
	}
}

// readDefinition loads and validates a project definition. path "-" reads stdin.
func readDefinition(fs afero.Fs, path string, stdin io.Reader) (models.ProjectDefinition, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = afero.ReadFile(fs, path)
	}
	if err != nil {
		return models.ProjectDefinition{}, fmt.Errorf("read definition: %w", err)
	}

	var def models.ProjectDefinition
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&def); err != nil {
		return models.ProjectDefinition{}, fmt.Errorf("parse definition %s: %w", path, err)
	}
	if result := models.Validate(&def); !result.Valid {
		return models.ProjectDefinition{}, fmt.Errorf("invalid definition: %s", result.ErrorSummary())
	}
	return def, nil
}

func writeOutcome(w io.Writer, out *pipeline.Outcome, format string) error {
	switch format {
	case formatText:
		_, err := fmt.Fprint(w, ui.RenderArtifact(out.Artifact))
		return err
	case formatYAML:
		// Round-trip through JSON so YAML keys match the API's field names.
		raw, err := json.Marshal(out.Artifact)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out.Artifact)
	}
}
