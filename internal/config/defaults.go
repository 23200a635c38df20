// Package config provides centralized configuration defaults for AgentX.
// All default values should be defined here to ensure a single source of truth.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/josephgoksu/AgentX/internal/llm"
	"github.com/josephgoksu/AgentX/types"
)

// Server defaults
const (
	// DefaultAddr is the address the HTTP API listens on
	DefaultAddr = ":5000"

	// DefaultRequestTimeout bounds a single HTTP request
	DefaultRequestTimeout = 15 * time.Minute

	// DefaultCrashDir is where handler panics are reported
	DefaultCrashDir = ".agentx"
)

// Pipeline defaults
const (
	// DefaultPipelineTimeout bounds a full planning run
	DefaultPipelineTimeout = 10 * time.Minute

	// DefaultMinFields is the number of top-level fields a full run needs
	DefaultMinFields = 6
)

// Defaults returns the configuration used when nothing else is set.
func Defaults() types.AppConfig {
	return types.AppConfig{
		Server: types.ServerConfig{
			Addr:           DefaultAddr,
			AllowedOrigins: []string{"*"},
			RequestTimeout: DefaultRequestTimeout,
			CrashDir:       DefaultCrashDir,
		},
		LLM: types.LLMConfig{
			Provider:    string(llm.DefaultProvider),
			Temperature: float64(llm.DefaultTemperature),
			Timeout:     llm.DefaultTimeout,
			MaxTokens:   llm.DefaultMaxTokens,
		},
		Pipeline: types.PipelineConfig{
			Timeout:   DefaultPipelineTimeout,
			MinFields: DefaultMinFields,
			Diagrams:  true,
		},
		Log: types.LogConfig{Level: "info", Format: "text"},
	}
}

// SetDefaults registers the defaults on v so that env vars and config files
// override them key by key.
func SetDefaults(v *viper.Viper) {
	d := Defaults()

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowedOrigins", d.Server.AllowedOrigins)
	v.SetDefault("server.requestTimeout", d.Server.RequestTimeout)
	v.SetDefault("server.crashDir", d.Server.CrashDir)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.apiKey", "")
	v.SetDefault("llm.baseURL", "")
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.maxTokens", d.LLM.MaxTokens)

	v.SetDefault("pipeline.timeout", d.Pipeline.Timeout)
	v.SetDefault("pipeline.minFields", d.Pipeline.MinFields)
	v.SetDefault("pipeline.diagrams", d.Pipeline.Diagrams)

	v.SetDefault("prompts.dir", "")
	v.SetDefault("debug.mirrorDir", "")
	v.SetDefault("store.path", "")

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}
