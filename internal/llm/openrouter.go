package llm

import "fmt"

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultGroqBaseURL       = "https://api.groq.com/openai/v1"
)

// OpenRouterProvider wraps OpenAIProvider with OpenRouter-specific defaults.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is reused.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// Model IDs are passed through unchanged.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner := newOpenAICompatible(ProviderOpenRouter, cfg.APIKey, baseURL, cfg.Model)
	// Routed models vary in json_schema support; JSON mode works everywhere.
	inner.jsonObject = true

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// GroqProvider targets Groq's OpenAI-compatible endpoint.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	inner := newOpenAICompatible(ProviderGroq, cfg.APIKey, baseURL, cfg.Model)
	inner.jsonObject = true

	return &GroqProvider{OpenAIProvider: inner}, nil
}
