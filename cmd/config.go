/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/josephgoksu/AgentX/internal/config"
	"github.com/josephgoksu/AgentX/types"
)

const (
	configName = ".agentx"
	envPrefix  = "AGENTX"
)

// envFiles are loaded in order; variables already set are never replaced.
var envFiles = []string{".env", ".env.dev"}

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(cfg *types.AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.TrimPrefix(fe.Namespace(), "AppConfig."), fe.Tag()))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	for _, f := range envFiles {
		// A missing env file is fine.
		_ = godotenv.Load(f)
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	GlobalAppConfig = cfg
}

// loadConfig layers defaults, the config file and AGENTX_* environment
// variables on v, then unmarshals and validates the result.
func loadConfig(v *viper.Viper) (types.AppConfig, error) {
	v.SetEnvPrefix(envPrefix)                          // e.g., AGENTX_LLM_PROVIDER
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // llm.provider -> LLM_PROVIDER
	v.AutomaticEnv()
	config.SetDefaults(v)

	cfgFileFlag := v.GetString("config")
	if cfgFileFlag != "" {
		v.SetConfigFile(cfgFileFlag)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err == nil {
		if v.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
		}
	} else {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			if v.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		case cfgFileFlag != "" && os.IsNotExist(err):
			return types.AppConfig{}, fmt.Errorf("config file not found: %s", cfgFileFlag)
		default:
			return types.AppConfig{}, fmt.Errorf("read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	if err := validateAppConfig(&cfg); err != nil {
		return types.AppConfig{}, err
	}
	return cfg, nil
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
