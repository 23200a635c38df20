package llm

import "strings"

// Model describes a chat model the gateway knows how to reach.
type Model struct {
	ID         string   // Canonical model ID (e.g., "gemini-2.0-flash")
	ProviderID Provider // Provider serving the model
	Aliases    []string // Alternative IDs including dated versions
	IsDefault  bool     // Whether this is the default model for its provider
}

// ModelRegistry lists the models with known provider mappings.
// Unlisted model IDs can still be used; they are passed through as-is.
var ModelRegistry = []Model{
	{ID: "gemini-2.0-flash", ProviderID: ProviderGemini, IsDefault: true},
	{ID: "gemini-2.5-flash", ProviderID: ProviderGemini},
	{ID: "gemini-2.5-pro", ProviderID: ProviderGemini},

	{ID: "gpt-4o-mini", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4o-mini-2024-07-18"}, IsDefault: true},
	{ID: "gpt-4o", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4o-2024-08-06"}},
	{ID: "gpt-4.1-mini", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4.1-mini-2025-04-14"}},

	{ID: "claude-3-5-sonnet-latest", ProviderID: ProviderAnthropic, IsDefault: true},
	{ID: "claude-3-5-haiku-latest", ProviderID: ProviderAnthropic},

	{ID: "deepseek-r1-distill-llama-70b", ProviderID: ProviderGroq, IsDefault: true},
	{ID: "llama-3.3-70b-versatile", ProviderID: ProviderGroq},

	{ID: "llama3.2", ProviderID: ProviderOllama, IsDefault: true},
	{ID: "mistral", ProviderID: ProviderOllama},
}

var modelIndex map[string]*Model

func init() {
	modelIndex = make(map[string]*Model)
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		modelIndex[m.ID] = m
		for _, alias := range m.Aliases {
			modelIndex[alias] = m
		}
	}
}

// GetModel returns the model definition for a given model ID or alias.
// Returns nil if the model is not found.
func GetModel(modelID string) *Model {
	return modelIndex[modelID]
}

// GetDefaultModelID returns the default model ID for a provider, or "" when
// the provider is unknown.
func GetDefaultModelID(providerID string) string {
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		if string(m.ProviderID) == providerID && m.IsDefault {
			return m.ID
		}
	}
	return ""
}

// InferProvider attempts to determine the provider from a model name.
func InferProvider(modelID string) (Provider, bool) {
	if m := GetModel(modelID); m != nil {
		return m.ProviderID, true
	}

	switch {
	case strings.HasPrefix(modelID, "gpt-"), strings.HasPrefix(modelID, "o1-"), strings.HasPrefix(modelID, "o3-"):
		return ProviderOpenAI, true
	case strings.HasPrefix(modelID, "claude-"):
		return ProviderAnthropic, true
	case strings.HasPrefix(modelID, "gemini-"):
		return ProviderGemini, true
	}
	return "", false
}
