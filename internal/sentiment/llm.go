package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/talentscout/screener/internal/llm"
)

const classifySystemPrompt = `You classify the emotional tone of a job candidate's message during a screening interview.
Choose exactly one label from the allowed set and rate its intensity from 0 to 1.
Use "neutral" when the message carries no clear emotion, such as a plain name or email address.`

// LLMAnalyzer classifies through an LLM provider with a constrained schema.
type LLMAnalyzer struct {
	provider llm.Provider
	labels   LabelSet
}

// NewLLMAnalyzer returns an analyzer backed by provider.
func NewLLMAnalyzer(provider llm.Provider, labels LabelSet) *LLMAnalyzer {
	return &LLMAnalyzer{provider: provider, labels: labels}
}

func (a *LLMAnalyzer) schema() *llm.Schema {
	enum := make([]any, 0, len(a.labels.labels))
	for _, l := range a.labels.labels {
		enum = append(enum, l)
	}
	return &llm.Schema{
		Name:        "sentiment-" + strings.Join(a.labels.labels, "-"),
		Description: "Emotion label and intensity for one candidate message",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"label": map[string]any{"type": "string", "enum": enum},
				"score": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			},
			"required":             []any{"label", "score"},
			"additionalProperties": false,
		},
	}
}

func (a *LLMAnalyzer) Analyze(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return NeutralResult, nil
	}

	ctx = llm.WithPurpose(ctx, "sentiment")
	resp, err := a.provider.Generate(ctx, llm.Request{
		System: classifySystemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: fmt.Sprintf("Allowed labels: %s\n\nCandidate message:\n%s", strings.Join(a.labels.labels, ", "), text),
		}},
		Schema:      a.schema(),
		MaxTokens:   64,
		Temperature: 0.1,
	})
	if err != nil {
		return Result{}, &ClassifierError{Backend: "llm", Err: err}
	}

	var out Result
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Result{}, &ClassifierError{Backend: "llm", Err: fmt.Errorf("decoding classification: %w", err)}
	}
	return a.labels.Coerce(out), nil
}
