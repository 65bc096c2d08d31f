package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider and Config.Fallback.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderGroq       = "groq"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the primary LLM provider. Empty disables LLM-backed
	// features; callers then use their deterministic fallbacks.
	Provider string `mapstructure:"provider"`

	// Fallback lists providers tried in order when the primary fails.
	Fallback []string `mapstructure:"fallback"`

	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Groq       GroqConfig       `mapstructure:"groq"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"` // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`    // Default: "gpt-4o-mini"
	BaseURL    string `mapstructure:"base-url"` // Optional. Any OpenAI-compatible API.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"` // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`    // Default: "meta-llama/llama-3.3-70b-instruct"
	BaseURL    string `mapstructure:"base-url"` // Default: "https://openrouter.ai/api/v1"
}

// GroqConfig holds Groq-specific configuration.
type GroqConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`    // Default: "llama-3.3-70b-versatile"
	BaseURL    string `mapstructure:"base-url"` // Default: "https://api.groq.com/openai/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max-attempts"`
	InitialWait time.Duration `mapstructure:"initial-wait"`
	MaxWait     time.Duration `mapstructure:"max-wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns a Config with Groq as primary and OpenRouter as
// fallback. Keys still have to be supplied.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGroq,
		Fallback: []string{ProviderOpenRouter},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "meta-llama/llama-3.3-70b-instruct",
		},
		Groq: GroqConfig{
			Model: "llama-3.3-70b-versatile",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// DiscoverConfig probes the conventional API key variables and builds a
// failover chain from every provider whose key is present, in the order
// Groq, OpenRouter, Gemini, OpenAI, Anthropic. Returns false if none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	cfg.Provider = ""
	cfg.Fallback = nil

	found := func(name string) {
		if cfg.Provider == "" {
			cfg.Provider = name
			return
		}
		cfg.Fallback = append(cfg.Fallback, name)
	}

	if k := os.Getenv("GROQ_API_KEY"); k != "" {
		cfg.Groq.APIKey = k
		found(ProviderGroq)
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
		found(ProviderOpenRouter)
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
		found(ProviderGemini)
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
		found(ProviderOpenAI)
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
		found(ProviderAnthropic)
	}

	return cfg, cfg.Provider != ""
}

// Chain returns the primary provider followed by the fallbacks, without
// duplicates.
func (c Config) Chain() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range append([]string{c.Provider}, c.Fallback...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Validate checks that every provider in the chain has its API key set.
func (c Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("no LLM provider configured")
	}
	for _, name := range c.Chain() {
		if err := c.validateProvider(name); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) validateProvider(name string) error {
	var key string
	switch name {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderGroq:
		key = c.Groq.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", name)
	}
	if key == "" {
		return fmt.Errorf("llm.%s.api-key is required for the %s provider", name, name)
	}
	return nil
}
