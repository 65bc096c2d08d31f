package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/talentscout/screener/internal/llm"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Interview.FallbackThreshold != 3 {
		t.Fatalf("expected fallback threshold 3, got %d", cfg.Interview.FallbackThreshold)
	}
	if cfg.LLM.Provider != llm.ProviderGroq {
		t.Fatalf("expected groq provider, got %q", cfg.LLM.Provider)
	}
	if cfg.Sentiment.ShiftThreshold != 0.7 {
		t.Fatalf("expected shift threshold 0.7, got %v", cfg.Sentiment.ShiftThreshold)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "talentscout.yaml", `
llm:
  provider: openrouter
  fallback: [gemini]
  openrouter:
    api-key: sk-or-test
  timeout: 45s
interview:
  fallback-threshold: 2
  exit-keywords: [bye, ciao]
questions:
  retry-budget: 2
sentiment:
  backend: llm
storage:
  backend: memory
`)

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != llm.ProviderOpenRouter || cfg.LLM.OpenRouter.APIKey != "sk-or-test" {
		t.Fatalf("unexpected llm config: %+v", cfg.LLM)
	}
	if len(cfg.LLM.Fallback) != 1 || cfg.LLM.Fallback[0] != llm.ProviderGemini {
		t.Fatalf("unexpected fallback chain: %v", cfg.LLM.Fallback)
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Fatalf("expected 45s timeout, got %v", cfg.LLM.Timeout)
	}
	if cfg.Interview.FallbackThreshold != 2 {
		t.Fatalf("expected fallback threshold 2, got %d", cfg.Interview.FallbackThreshold)
	}
	if len(cfg.Interview.ExitKeywords) != 2 || cfg.Interview.ExitKeywords[1] != "ciao" {
		t.Fatalf("unexpected exit keywords: %v", cfg.Interview.ExitKeywords)
	}
	if cfg.Questions.RetryBudget != 2 || cfg.Questions.Max != 5 {
		t.Fatalf("unexpected questions config: %+v", cfg.Questions)
	}
	if cfg.Sentiment.Backend != SentimentLLM || cfg.Storage.Backend != StorageMemory {
		t.Fatalf("unexpected backends: %s / %s", cfg.Sentiment.Backend, cfg.Storage.Backend)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TALENTSCOUT_INTERVIEW_FALLBACK_THRESHOLD", "5")
	t.Setenv("TALENTSCOUT_LLM_GROQ_API_KEY", "gsk-env")
	t.Setenv("TALENTSCOUT_STORAGE_BACKEND", "memory")

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Interview.FallbackThreshold != 5 {
		t.Fatalf("expected 5 from env, got %d", cfg.Interview.FallbackThreshold)
	}
	if cfg.LLM.Groq.APIKey != "gsk-env" {
		t.Fatalf("expected groq key from env, got %q", cfg.LLM.Groq.APIKey)
	}
	if cfg.Storage.Backend != StorageMemory {
		t.Fatalf("expected memory backend, got %q", cfg.Storage.Backend)
	}
}

func TestLoad_SecretFile(t *testing.T) {
	keyFile := writeFile(t, "groq.key", "gsk-file\n")
	path := writeFile(t, "talentscout.yaml", "llm:\n  groq:\n    api-key: inline\n    api-key-file: "+keyFile+"\n")

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Groq.APIKey != "gsk-file" {
		t.Fatalf("expected key from file, got %q", cfg.LLM.Groq.APIKey)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fallback threshold", func(c *Config) { c.Interview.FallbackThreshold = 0 }},
		{"language threshold above one", func(c *Config) { c.Interview.LanguageThreshold = 1.5 }},
		{"max below min", func(c *Config) { c.Questions.Max = 2 }},
		{"negative retry budget", func(c *Config) { c.Questions.RetryBudget = -1 }},
		{"unknown sentiment backend", func(c *Config) { c.Sentiment.Backend = "vibes" }},
		{"labels without neutral", func(c *Config) { c.Sentiment.Labels = []string{"positive", "negative"} }},
		{"unknown storage backend", func(c *Config) { c.Storage.Backend = "postgres" }},
		{"redis without addr", func(c *Config) {
			c.Storage.Backend = StorageRedis
			c.Storage.Redis.Addr = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
