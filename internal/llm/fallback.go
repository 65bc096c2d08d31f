package llm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/logger"
)

// FallbackProvider tries each provider in order and returns the first
// success. Cancellation stops the chain immediately.
type FallbackProvider struct {
	providers []Provider
	names     []string
	log       *zap.Logger
}

// NamedProvider pairs a provider with the name used in logs and errors.
type NamedProvider struct {
	Name     string
	Provider Provider
}

// NewFallbackProvider builds a failover chain. The first provider is the
// primary; ModelID reports the primary's model.
func NewFallbackProvider(log *zap.Logger, chain ...NamedProvider) (*FallbackProvider, error) {
	if len(chain) == 0 {
		return nil, fmt.Errorf("fallback chain needs at least one provider")
	}
	f := &FallbackProvider{log: logger.OrNop(log)}
	for _, np := range chain {
		f.providers = append(f.providers, np.Provider)
		f.names = append(f.names, np.Name)
	}
	return f, nil
}

func (f *FallbackProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var errs []error
	for i, p := range f.providers {
		resp, err := p.Generate(ctx, req)
		if err == nil {
			if i > 0 {
				f.log.Info("served by fallback provider",
					logger.CommonFields(f.names[i], p.ModelID())...)
			}
			return resp, nil
		}
		if IsCanceled(err) {
			return nil, err
		}

		var maxTok *ErrMaxTokensExceeded
		if errors.As(err, &maxTok) {
			// A longer budget is needed, not another provider.
			return nil, err
		}

		f.log.Warn("LLM provider failed",
			append(logger.CommonFields(f.names[i], p.ModelID()), zap.Error(err))...)
		errs = append(errs, fmt.Errorf("%s: %w", f.names[i], err))
	}

	// The joined causes stay reachable through errors.As.
	return nil, &ErrProviderUnavailable{Provider: "all providers", Err: errors.Join(errs...)}
}

func (f *FallbackProvider) ModelID() string {
	return f.providers[0].ModelID()
}

// Names returns the provider names in failover order.
func (f *FallbackProvider) Names() []string {
	return append([]string(nil), f.names...)
}
