package llm

import "strings"

// ModelCost is USD per one million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call with the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model as it appears in the event log,
// or nil if unknown. Friendly names resolve through the provider model maps,
// and an OpenRouter id without its own entry falls back to the id after the
// vendor prefix.
func LookupCost(model string) *ModelCost {
	model = strings.ToLower(strings.TrimSpace(model))
	for _, aliases := range []map[string]string{anthropicModels, openaiModels, geminiModels} {
		if id, ok := aliases[model]; ok {
			model = id
			break
		}
	}
	if c, ok := modelCosts[model]; ok {
		return &c
	}
	if _, base, ok := strings.Cut(model, "/"); ok {
		if c, ok := modelCosts[base]; ok {
			return &c
		}
	}
	return nil
}

// modelCosts covers the models the configured providers resolve to.
// Prices as published by each provider, 2026-09.
var modelCosts = map[string]ModelCost{
	// Groq, the default primary.
	"llama-3.3-70b-versatile": {0.59, 0.79},
	"llama-3.1-8b-instant":    {0.05, 0.08},
	"gemma2-9b-it":            {0.2, 0.2},

	// OpenRouter, the default secondary. Unlisted ids fall back to the
	// base model after the vendor prefix.
	"meta-llama/llama-3.3-70b-instruct": {0.13, 0.4},
	"meta-llama/llama-3.1-8b-instruct":  {0.02, 0.05},
	"mistralai/mistral-small":           {0.2, 0.6},

	// Anthropic
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-5-20250929": {3, 15},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1-mini": {0.4, 1.6},

	// Gemini
	"gemini-2.5-flash": {0.3, 2.5},
	"gemini-2.5-pro":   {1.25, 10},
}
