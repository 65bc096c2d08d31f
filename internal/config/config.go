// Package config loads talentscout settings from defaults, an optional YAML
// file, TALENTSCOUT_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/talentscout/screener/internal/llm"
	"github.com/talentscout/screener/internal/secrets"
)

const (
	// AppName is the config file base name and env prefix source.
	AppName   = "talentscout"
	envPrefix = "TALENTSCOUT"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Sentiment backends.
const (
	SentimentLexicon     = "lexicon"
	SentimentLLM         = "llm"
	SentimentHuggingFace = "huggingface"
)

// Config is the full application configuration.
type Config struct {
	LLM       llm.Config      `mapstructure:"llm"`
	Interview InterviewConfig `mapstructure:"interview"`
	Questions QuestionsConfig `mapstructure:"questions"`
	Sentiment SentimentConfig `mapstructure:"sentiment"`
	Phrasing  PhrasingConfig  `mapstructure:"phrasing"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

// InterviewConfig tunes the conversation flow.
type InterviewConfig struct {
	FallbackThreshold int      `mapstructure:"fallback-threshold"`
	ExitKeywords      []string `mapstructure:"exit-keywords"`
	// LanguageThreshold is the detector confidence needed to switch the
	// session language.
	LanguageThreshold float64  `mapstructure:"language-threshold"`
	Languages         []string `mapstructure:"languages"`
	DefaultLanguage   string   `mapstructure:"default-language"`
}

// QuestionsConfig bounds question generation.
type QuestionsConfig struct {
	Min         int `mapstructure:"min"`
	Max         int `mapstructure:"max"`
	RetryBudget int `mapstructure:"retry-budget"`
	MaxTokens   int `mapstructure:"max-tokens"`
}

// SentimentConfig selects and tunes the sentiment backend.
type SentimentConfig struct {
	Backend        string            `mapstructure:"backend"`
	Labels         []string          `mapstructure:"labels"`
	ShiftThreshold float64           `mapstructure:"shift-threshold"`
	HuggingFace    HuggingFaceConfig `mapstructure:"huggingface"`
}

// HuggingFaceConfig points at a hosted text-classification model.
type HuggingFaceConfig struct {
	Endpoint   string        `mapstructure:"endpoint"`
	APIKey     string        `mapstructure:"api-key"`
	APIKeyFile string        `mapstructure:"api-key-file"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// PhrasingConfig controls how intents become candidate-facing text.
type PhrasingConfig struct {
	// LLM rewrites templated prompts through the configured provider.
	LLM bool `mapstructure:"llm"`
}

// StorageConfig selects where sessions and records live.
type StorageConfig struct {
	Backend   string      `mapstructure:"backend"`
	DB        string      `mapstructure:"db"`
	Redis     RedisConfig `mapstructure:"redis"`
	ExportDir string      `mapstructure:"export-dir"`
}

// RedisConfig configures the redis session backend.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	PasswordFile string        `mapstructure:"password-file"`
	DB           int           `mapstructure:"db"`
	TTL          time.Duration `mapstructure:"ttl"`
	Prefix       string        `mapstructure:"prefix"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr       string `mapstructure:"addr"`
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

// LogConfig configures zap.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// DefaultExitKeywords end an interview from any stage.
var DefaultExitKeywords = []string{"bye", "goodbye", "quit", "exit", "stop", "end interview"}

// DefaultLabels is the closed sentiment label set.
var DefaultLabels = []string{"neutral", "positive", "negative", "anxious", "confident"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Interview: InterviewConfig{
			FallbackThreshold: 3,
			ExitKeywords:      append([]string(nil), DefaultExitKeywords...),
			LanguageThreshold: 0.6,
			DefaultLanguage:   "en",
		},
		Questions: QuestionsConfig{
			Min:         3,
			Max:         5,
			RetryBudget: 1,
			MaxTokens:   1024,
		},
		Sentiment: SentimentConfig{
			Backend:        SentimentLexicon,
			Labels:         append([]string(nil), DefaultLabels...),
			ShiftThreshold: 0.7,
			HuggingFace: HuggingFaceConfig{
				Endpoint: "https://api-inference.huggingface.co/models/j-hartmann/emotion-english-distilroberta-base",
				Timeout:  10 * time.Second,
			},
		},
		Storage: StorageConfig{
			Backend:   StorageSQLite,
			ExportDir: ".",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				TTL:    24 * time.Hour,
				Prefix: "talentscout:session:",
			},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// New returns a viper instance preloaded with defaults and env bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())
	return v
}

// setDefaults registers every key so AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.fallback", d.LLM.Fallback)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.retry.max-attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial-wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max-wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)
	for name, model := range map[string]string{
		llm.ProviderAnthropic:  d.LLM.Anthropic.Model,
		llm.ProviderOpenAI:     d.LLM.OpenAI.Model,
		llm.ProviderGemini:     d.LLM.Gemini.Model,
		llm.ProviderOpenRouter: d.LLM.OpenRouter.Model,
		llm.ProviderGroq:       d.LLM.Groq.Model,
	} {
		v.SetDefault("llm."+name+".model", model)
		v.SetDefault("llm."+name+".api-key", "")
		v.SetDefault("llm."+name+".api-key-file", "")
	}
	v.SetDefault("llm.openai.base-url", "")
	v.SetDefault("llm.openrouter.base-url", "")
	v.SetDefault("llm.groq.base-url", "")

	v.SetDefault("interview.fallback-threshold", d.Interview.FallbackThreshold)
	v.SetDefault("interview.exit-keywords", d.Interview.ExitKeywords)
	v.SetDefault("interview.language-threshold", d.Interview.LanguageThreshold)
	v.SetDefault("interview.languages", d.Interview.Languages)
	v.SetDefault("interview.default-language", d.Interview.DefaultLanguage)

	v.SetDefault("questions.min", d.Questions.Min)
	v.SetDefault("questions.max", d.Questions.Max)
	v.SetDefault("questions.retry-budget", d.Questions.RetryBudget)
	v.SetDefault("questions.max-tokens", d.Questions.MaxTokens)

	v.SetDefault("sentiment.backend", d.Sentiment.Backend)
	v.SetDefault("sentiment.labels", d.Sentiment.Labels)
	v.SetDefault("sentiment.shift-threshold", d.Sentiment.ShiftThreshold)
	v.SetDefault("sentiment.huggingface.endpoint", d.Sentiment.HuggingFace.Endpoint)
	v.SetDefault("sentiment.huggingface.api-key", "")
	v.SetDefault("sentiment.huggingface.api-key-file", "")
	v.SetDefault("sentiment.huggingface.timeout", d.Sentiment.HuggingFace.Timeout)

	v.SetDefault("phrasing.llm", d.Phrasing.LLM)

	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.db", d.Storage.DB)
	v.SetDefault("storage.export-dir", d.Storage.ExportDir)
	v.SetDefault("storage.redis.addr", d.Storage.Redis.Addr)
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.password-file", "")
	v.SetDefault("storage.redis.db", d.Storage.Redis.DB)
	v.SetDefault("storage.redis.ttl", d.Storage.Redis.TTL)
	v.SetDefault("storage.redis.prefix", d.Storage.Redis.Prefix)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.api-key", "")
	v.SetDefault("server.api-key-file", "")

	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
}

// Load reads the config file (when given or found in the working directory),
// unmarshals it over the defaults, resolves secrets and validates.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.ResolveSecrets(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveSecrets replaces inline keys with the contents of their *-file
// counterparts. Absent keys stay empty.
func (c *Config) ResolveSecrets() error {
	targets := []struct {
		name  string
		value *string
		file  string
	}{
		{"llm.anthropic.api-key", &c.LLM.Anthropic.APIKey, c.LLM.Anthropic.APIKeyFile},
		{"llm.openai.api-key", &c.LLM.OpenAI.APIKey, c.LLM.OpenAI.APIKeyFile},
		{"llm.gemini.api-key", &c.LLM.Gemini.APIKey, c.LLM.Gemini.APIKeyFile},
		{"llm.openrouter.api-key", &c.LLM.OpenRouter.APIKey, c.LLM.OpenRouter.APIKeyFile},
		{"llm.groq.api-key", &c.LLM.Groq.APIKey, c.LLM.Groq.APIKeyFile},
		{"sentiment.huggingface.api-key", &c.Sentiment.HuggingFace.APIKey, c.Sentiment.HuggingFace.APIKeyFile},
		{"storage.redis.password", &c.Storage.Redis.Password, c.Storage.Redis.PasswordFile},
		{"server.api-key", &c.Server.APIKey, c.Server.APIKeyFile},
	}
	for _, t := range targets {
		secret, err := secrets.LoadOptional(secrets.Source{Name: t.name, Value: *t.value, File: t.file})
		if err != nil {
			return err
		}
		*t.value = secret
	}
	return nil
}

// Validate checks ranges and enumerations. LLM keys are checked only when
// a component needs the provider, so an offline setup stays valid.
func (c Config) Validate() error {
	var errs []error

	if c.Interview.FallbackThreshold < 1 {
		errs = append(errs, fmt.Errorf("interview.fallback-threshold must be at least 1"))
	}
	if c.Interview.LanguageThreshold < 0 || c.Interview.LanguageThreshold > 1 {
		errs = append(errs, fmt.Errorf("interview.language-threshold must be within [0,1]"))
	}
	if c.Questions.Min < 1 || c.Questions.Max < c.Questions.Min {
		errs = append(errs, fmt.Errorf("questions: need 1 <= min <= max, got min=%d max=%d", c.Questions.Min, c.Questions.Max))
	}
	if c.Questions.RetryBudget < 0 {
		errs = append(errs, fmt.Errorf("questions.retry-budget must not be negative"))
	}

	switch c.Sentiment.Backend {
	case SentimentLexicon, SentimentLLM, SentimentHuggingFace:
	default:
		errs = append(errs, fmt.Errorf("unknown sentiment.backend %q", c.Sentiment.Backend))
	}
	if !contains(c.Sentiment.Labels, "neutral") {
		errs = append(errs, fmt.Errorf("sentiment.labels must include neutral"))
	}
	if c.Sentiment.ShiftThreshold < 0 || c.Sentiment.ShiftThreshold > 1 {
		errs = append(errs, fmt.Errorf("sentiment.shift-threshold must be within [0,1]"))
	}

	switch c.Storage.Backend {
	case StorageSQLite, StorageMemory:
	case StorageRedis:
		if c.Storage.Redis.Addr == "" {
			errs = append(errs, fmt.Errorf("storage.redis.addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.backend %q", c.Storage.Backend))
	}

	return errors.Join(errs...)
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), want) {
			return true
		}
	}
	return false
}
