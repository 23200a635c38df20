/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "time"

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose  bool           `mapstructure:"verbose" yaml:"-"`
	Config   string         `mapstructure:"config" yaml:"-"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	LLM      LLMConfig      `mapstructure:"llm" yaml:"llm"`
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`
	Prompts  PromptsConfig  `mapstructure:"prompts" yaml:"prompts"`
	Debug    DebugConfig    `mapstructure:"debug" yaml:"debug"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr           string        `mapstructure:"addr" yaml:"addr" validate:"required"`
	AllowedOrigins []string      `mapstructure:"allowedOrigins" yaml:"allowedOrigins"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout" yaml:"requestTimeout" validate:"min=0"`
	// CrashDir is where handler panics are reported; empty disables reports
	CrashDir string `mapstructure:"crashDir" yaml:"crashDir"`
}

// LLMConfig holds configuration for the model backend
type LLMConfig struct {
	Provider string `mapstructure:"provider" yaml:"provider" validate:"required,oneof=openai ollama anthropic gemini groq"`
	Model    string `mapstructure:"model" yaml:"model,omitempty"`
	APIKey   string `mapstructure:"apiKey" yaml:"apiKey,omitempty"`
	// APIKeys holds per-provider keys and wins over APIKey
	APIKeys     map[string]string `mapstructure:"apiKeys" yaml:"apiKeys,omitempty"`
	BaseURL     string            `mapstructure:"baseURL" yaml:"baseURL,omitempty" validate:"omitempty,url"`
	Temperature float64           `mapstructure:"temperature" yaml:"temperature" validate:"min=0,max=2"`
	Timeout     time.Duration     `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
	MaxTokens   int               `mapstructure:"maxTokens" yaml:"maxTokens" validate:"min=0"`
}

// PipelineConfig holds settings for a full planning run
type PipelineConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
	// MinFields is the number of top-level request fields /pipeline requires
	MinFields int  `mapstructure:"minFields" yaml:"minFields" validate:"min=1"`
	Diagrams  bool `mapstructure:"diagrams" yaml:"diagrams"`
}

// PromptsConfig points at a directory of template overrides
type PromptsConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir,omitempty"`
}

// DebugConfig holds developer settings
type DebugConfig struct {
	// MirrorDir receives each stage's raw reply; empty disables the mirror
	MirrorDir string `mapstructure:"mirrorDir" yaml:"mirrorDir,omitempty"`
}

// StoreConfig holds run history settings
type StoreConfig struct {
	// Path of the SQLite database; empty disables history
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}
