package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/josephgoksu/AgentX/internal/llm"
	"github.com/josephgoksu/AgentX/types"
)

// LoadLLMConfig turns the llm section of the app config into a gateway config.
// Precedence: explicit config > environment variables > defaults.
// A missing API key is not an error here; the gateway reports it on first use.
func LoadLLMConfig(cfg types.LLMConfig) (llm.Config, error) {
	// 1. Provider
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = string(llm.DefaultProvider)
	}
	llmProvider, err := llm.ValidateProvider(provider)
	if err != nil {
		return llm.Config{}, fmt.Errorf("invalid provider: %w", err)
	}

	// 2. Model
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = llm.DefaultModelForProvider(string(llmProvider))
	}

	// 3. Base URL
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		switch llmProvider {
		case llm.ProviderOllama:
			baseURL = llm.DefaultOllamaURL
		case llm.ProviderGroq:
			baseURL = llm.DefaultGroqURL
		}
	}

	// 4. Sampling and limits
	temperature := float32(cfg.Temperature)
	if cfg.Temperature == 0 {
		temperature = llm.DefaultTemperature
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = llm.DefaultTimeout
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}

	return llm.Config{
		Provider:    llmProvider,
		Model:       model,
		APIKey:      ResolveAPIKey(cfg, llmProvider),
		BaseURL:     baseURL,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Timeout:     timeout,
	}, nil
}

// ResolveAPIKey returns the best API key for the given provider using
// per-provider config keys, the shared config key, then provider env vars.
func ResolveAPIKey(cfg types.LLMConfig, provider llm.Provider) string {
	// 1) Per-provider config key (llm.apiKeys.<provider>)
	for name, key := range cfg.APIKeys {
		if strings.EqualFold(name, string(provider)) {
			if key = strings.TrimSpace(key); key != "" {
				return key
			}
		}
	}

	// 2) Shared key (llm.apiKey)
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		return key
	}

	// 3) Provider-specific env vars
	return providerEnvKey(provider)
}

func providerEnvKey(provider llm.Provider) string {
	first := func(names ...string) string {
		for _, n := range names {
			if v := strings.TrimSpace(os.Getenv(n)); v != "" {
				return v
			}
		}
		return ""
	}

	switch provider {
	case llm.ProviderOpenAI:
		return first("OPENAI_API_KEY")
	case llm.ProviderAnthropic:
		return first("ANTHROPIC_API_KEY")
	case llm.ProviderGemini:
		return first("GEMINI_API_KEY", "GOOGLE_API_KEY")
	case llm.ProviderGroq:
		// GROQ_API is the name older deployments used.
		return first("GROQ_API_KEY", "GROQ_API")
	default:
		return ""
	}
}
