package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event
// and emits a debug log line per call.
type LoggingProvider struct {
	inner  Provider
	name   string
	events store.EventRepo
	log    *zap.Logger
}

// WithLogging wraps a Provider with event logging. A nil repo only logs.
func WithLogging(p Provider, name string, repo store.EventRepo, log *zap.Logger) Provider {
	return &LoggingProvider{
		inner:  p,
		name:   name,
		events: repo,
		log:    logger.WithCommonFields(log, name, p.ModelID()),
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	ev := store.LLMEvent{
		SessionID:   SessionFrom(ctx),
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.ResponseBody = string(resp.Content)
	}

	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	l.log.Debug("LLM call",
		zap.String("purpose", purpose),
		zap.Duration("latency", latency),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
		zap.Bool("success", ev.Success),
	)

	// Event persistence failures never fail the request.
	if l.events != nil {
		if logErr := l.events.AppendLLMRequest(ctx, ev); logErr != nil {
			l.log.Warn("failed to record LLM request event", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
