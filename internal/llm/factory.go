package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/store"
)

// NewProvider creates a Provider from configuration. Every provider in the
// chain is wrapped with event logging; chains longer than one are joined
// by a FallbackProvider, and the result is wrapped with retry.
//
//	caller → retry → fallback → logging → base
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var chain []NamedProvider
	for _, name := range cfg.Chain() {
		base, err := newBaseProvider(ctx, name, cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing %s provider: %w", name, err)
		}
		if name == ProviderMock {
			chain = append(chain, NamedProvider{Name: name, Provider: base})
			continue
		}
		chain = append(chain, NamedProvider{Name: name, Provider: WithLogging(base, name, events, log)})
	}

	var p Provider = chain[0].Provider
	if len(chain) > 1 {
		fb, err := NewFallbackProvider(log, chain...)
		if err != nil {
			return nil, err
		}
		p = fb
	}

	p = WithRetry(p, cfg.Retry, log)
	if cfg.Timeout > 0 {
		p = &timeoutProvider{inner: p, timeout: cfg.Timeout}
	}
	return p, nil
}

// timeoutProvider bounds each Generate call, retries included.
type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string {
	return t.inner.ModelID()
}

func newBaseProvider(ctx context.Context, name string, cfg Config) (Provider, error) {
	switch name {
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		return NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGroq:
		return NewGroqProvider(cfg.Groq)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", name)
	}
}
