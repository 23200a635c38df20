package types

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func validConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{Addr: ":5000", RequestTimeout: 15 * time.Minute},
		LLM: LLMConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			Temperature: 1.0,
			Timeout:     2 * time.Minute,
		},
		Pipeline: PipelineConfig{Timeout: 10 * time.Minute, MinFields: 6, Diagrams: true},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

func TestAppConfig_Valid(t *testing.T) {
	cfg := validConfig()
	if err := validator.New().Struct(cfg); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestAppConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"missing addr", func(c *AppConfig) { c.Server.Addr = "" }},
		{"unknown provider", func(c *AppConfig) { c.LLM.Provider = "bedrock" }},
		{"missing provider", func(c *AppConfig) { c.LLM.Provider = "" }},
		{"temperature too high", func(c *AppConfig) { c.LLM.Temperature = 2.5 }},
		{"negative max tokens", func(c *AppConfig) { c.LLM.MaxTokens = -1 }},
		{"bad base url", func(c *AppConfig) { c.LLM.BaseURL = "not a url" }},
		{"zero min fields", func(c *AppConfig) { c.Pipeline.MinFields = 0 }},
		{"unknown log format", func(c *AppConfig) { c.Log.Format = "xml" }},
		{"unknown log level", func(c *AppConfig) { c.Log.Level = "trace" }},
	}

	v := validator.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := v.Struct(cfg); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestLLMConfig_OptionalFields(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Model = ""
	cfg.LLM.BaseURL = ""
	cfg.Log = LogConfig{}
	if err := validator.New().Struct(cfg); err != nil {
		t.Errorf("optional fields should be allowed empty: %v", err)
	}
}
