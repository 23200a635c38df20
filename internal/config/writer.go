package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/josephgoksu/AgentX/types"
)

// ErrConfigExists is returned when WriteConfigFile would overwrite a file.
var ErrConfigExists = errors.New("config file already exists")

const configHeader = "# AgentX Configuration\n# Keys can also be set as AGENTX_<SECTION>_<KEY> environment variables.\n"

// WriteConfigFile writes cfg as YAML to path on fs. API keys are written
// only when set, with owner-only permissions. An existing file is kept
// unless force is set.
func WriteConfigFile(fs afero.Fs, path string, cfg types.AppConfig, force bool) error {
	if path == "" {
		return fmt.Errorf("config path cannot be empty")
	}
	if !force {
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	var perm os.FileMode = 0o644
	if cfg.LLM.APIKey != "" || len(cfg.LLM.APIKeys) > 0 {
		perm = 0o600
	}
	return afero.WriteFile(fs, path, buf.Bytes(), perm)
}
