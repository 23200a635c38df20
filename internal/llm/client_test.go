package llm

import (
	"context"
	"strings"
	"testing"
)

func TestValidateProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     Provider
		wantErr  bool
	}{
		{name: "valid openai", provider: "openai", want: ProviderOpenAI},
		{name: "valid groq", provider: "groq", want: ProviderGroq},
		{name: "valid ollama", provider: "ollama", want: ProviderOllama},
		{name: "valid anthropic", provider: "anthropic", want: ProviderAnthropic},
		{name: "valid gemini", provider: "gemini", want: ProviderGemini},
		{name: "invalid provider", provider: "invalid", wantErr: true},
		{name: "empty provider", provider: "", wantErr: true},
		{name: "case sensitive - GEMINI fails", provider: "GEMINI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateProvider(tt.provider)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProvider(%q) error = %v, wantErr %v", tt.provider, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ValidateProvider(%q) = %v, want %v", tt.provider, got, tt.want)
			}
		})
	}
}

func TestDefaultModelForProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{provider: "gemini", want: "gemini-2.0-flash"},
		{provider: "openai", want: "gpt-4o-mini"},
		{provider: "anthropic", want: "claude-3-5-sonnet-latest"},
		{provider: "groq", want: "deepseek-r1-distill-llama-70b"},
		{provider: "ollama", want: "llama3.2"},
		{provider: "unknown", want: ""},
		{provider: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			if got := DefaultModelForProvider(tt.provider); got != tt.want {
				t.Errorf("DefaultModelForProvider(%q) = %q, want %q", tt.provider, got, tt.want)
			}
		})
	}
}

func TestInferProvider(t *testing.T) {
	tests := []struct {
		model  string
		want   Provider
		wantOK bool
	}{
		{model: "gpt-4o-mini-2024-07-18", want: ProviderOpenAI, wantOK: true},
		{model: "llama-3.3-70b-versatile", want: ProviderGroq, wantOK: true},
		{model: "claude-3-opus", want: ProviderAnthropic, wantOK: true},
		{model: "gemini-1.5-pro", want: ProviderGemini, wantOK: true},
		{model: "mystery", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := InferProvider(tt.model)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("InferProvider(%q) = %q, %v; want %q, %v", tt.model, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNewChatModel_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "openai requires API key",
			cfg:     Config{Provider: ProviderOpenAI, Model: "gpt-4o-mini"},
			wantErr: "OpenAI API key is required",
		},
		{
			name:    "groq requires API key",
			cfg:     Config{Provider: ProviderGroq, Model: "llama-3.3-70b-versatile"},
			wantErr: "groq API key is required",
		},
		{
			name:    "anthropic requires API key",
			cfg:     Config{Provider: ProviderAnthropic, Model: "claude-3-5-sonnet-latest"},
			wantErr: "anthropic API key is required",
		},
		{
			name:    "gemini requires API key",
			cfg:     Config{Provider: ProviderGemini, Model: "gemini-2.0-flash"},
			wantErr: "gemini API key is required",
		},
		{
			name:    "unsupported provider",
			cfg:     Config{Provider: "bedrock"},
			wantErr: "unsupported LLM provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChatModel(ctx, tt.cfg)
			if err == nil {
				t.Fatalf("NewChatModel() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewChatModel() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
