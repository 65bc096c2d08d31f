package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/llm"
	"github.com/talentscout/screener/internal/logger"
)

// Source produces the technical question set for a declared stack.
type Source interface {
	Questions(ctx context.Context, stack []string, years int) ([]string, error)
}

// Question is a single generated question tagged with the technology it
// assesses.
type Question struct {
	Technology string `json:"technology"`
	Text       string `json:"question"`
}

// Generator asks the LLM for screening questions and validates the set.
// A nil provider disables generation; Questions then serves the fallback
// set directly.
type Generator struct {
	provider llm.Provider
	config   Config
	log      *zap.Logger
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *Generator {
	return &Generator{provider: provider, config: cfg.withDefaults(), log: logger.OrNop(log)}
}

type questionsOutput struct {
	Questions []Question `json:"questions"`
}

// Questions returns a validated question set for the stack. An empty stack
// gets the general questions without asking the provider. When every
// generation attempt fails the deterministic fallback set is returned and
// the failure is only logged. The error is non-nil only when ctx was
// canceled.
func (g *Generator) Questions(ctx context.Context, stack []string, years int) ([]string, error) {
	if g.provider == nil || len(stack) == 0 {
		return Fallback(stack, years, g.config.Max), nil
	}

	qs, err := g.Generate(ctx, stack, years)
	if err == nil {
		return Texts(qs), nil
	}
	if llm.IsCanceled(err) {
		return nil, err
	}

	g.log.Warn("question generation failed, using fallback set",
		zap.Strings("tech_stack", stack), zap.Error(err))
	return Fallback(stack, years, g.config.Max), nil
}

// Generate asks the provider for questions, retrying up to the configured
// budget when the response is unusable. Failures are reported as
// *GenerationError.
func (g *Generator) Generate(ctx context.Context, stack []string, years int) ([]Question, error) {
	if g.provider == nil {
		return nil, &GenerationError{Reason: "no LLM provider configured"}
	}
	ctx = llm.WithPurpose(ctx, "question-gen")

	attempts := 1 + g.config.RetryBudget
	var rejections []string
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		qs, err := g.attempt(ctx, stack, years, rejections)
		if err == nil {
			if attempt > 1 {
				g.log.Debug("question set accepted after retry", zap.Int("attempt", attempt))
			}
			return qs, nil
		}
		if llm.IsCanceled(err) {
			return nil, err
		}
		lastErr = err

		var verr *ValidationError
		if errors.As(err, &verr) {
			rejections = append(rejections, verr.Message)
		}
		g.log.Warn("question set rejected",
			zap.Int("attempt", attempt), zap.Int("budget", attempts), zap.Error(err))
	}

	return nil, &GenerationError{Attempts: attempts, Reason: "no valid question set", Err: lastErr}
}

func (g *Generator) attempt(ctx context.Context, stack []string, years int, rejections []string) ([]Question, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(stack, years, rejections, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionsOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	qs := normalizeAll(raw.Questions)
	if verr := validateSet(qs, g.config); verr != nil {
		return nil, verr
	}
	return qs, nil
}

// Texts returns the question texts in order.
func Texts(qs []Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Text
	}
	return out
}
