/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/josephgoksu/AgentX/internal/config"
	"github.com/josephgoksu/AgentX/types"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage AgentX configuration",
}

// configShowCmd shows current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), *GetConfig())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write .agentx.yaml with every setting at its default value.

Examples:
  agentx config init                         # ./.agentx.yaml
  agentx config init --path ~/.agentx.yaml   # Global config
  agentx config init --force                 # Overwrite an existing file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ExpandPath(configInitPath)
		err := config.WriteConfigFile(afero.NewOsFs(), path, config.Defaults(), configInitForce)
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)

	configInitCmd.Flags().StringVar(&configInitPath, "path", configName+".yaml", "where to write the config file")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
}

// showConfig prints cfg as YAML with API keys masked.
func showConfig(w io.Writer, cfg types.AppConfig) error {
	cfg.LLM.APIKey = maskKey(cfg.LLM.APIKey)
	if len(cfg.LLM.APIKeys) > 0 {
		masked := make(map[string]string, len(cfg.LLM.APIKeys))
		for provider, key := range cfg.LLM.APIKeys {
			masked[provider] = maskKey(key)
		}
		cfg.LLM.APIKeys = masked
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// maskKey keeps the last four characters of a key.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}
