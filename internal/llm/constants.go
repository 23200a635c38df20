package llm

import "time"

// Provider constants
const (
	// DefaultProvider is the default LLM provider
	DefaultProvider = ProviderGemini

	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI Provider = "openai"

	// ProviderOllama represents a local Ollama server
	ProviderOllama Provider = "ollama"

	// ProviderAnthropic represents the Anthropic provider
	ProviderAnthropic Provider = "anthropic"

	// ProviderGemini represents the Google Gemini provider
	ProviderGemini Provider = "gemini"

	// ProviderGroq represents Groq's OpenAI-compatible endpoint
	ProviderGroq Provider = "groq"
)

// DefaultOllamaURL is the default URL for Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// DefaultGroqURL is Groq's OpenAI-compatible API base.
const DefaultGroqURL = "https://api.groq.com/openai/v1"

const (
	// DefaultTemperature matches the sampling temperature every stage uses.
	DefaultTemperature float32 = 1.0

	// DefaultMaxTokens bounds a single completion for providers that require it.
	DefaultMaxTokens = 8192

	// DefaultTimeout bounds a single gateway call.
	DefaultTimeout = 120 * time.Second
)

// DefaultModelForProvider returns the default model ID for a given provider.
// This is a convenience wrapper around GetDefaultModelID in models.go.
func DefaultModelForProvider(provider string) string {
	return GetDefaultModelID(provider)
}
