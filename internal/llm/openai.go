package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIProvider implements Provider using the OpenAI SDK.
// Groq and OpenRouter reuse it through their OpenAI-compatible APIs.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	name   string

	// jsonObject selects the plain JSON mode for APIs without json_schema
	// support. The schema is then described in the system prompt and
	// enforced only by validateResponse.
	jsonObject bool
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	return newOpenAICompatible(ProviderOpenAI, cfg.APIKey, cfg.BaseURL, resolveModel(cfg.Model, openaiModels)), nil
}

// newOpenAICompatible builds an OpenAIProvider for any compatible endpoint.
// The model is used as given.
func newOpenAICompatible(name, apiKey, baseURL, model string) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
		name:   name,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	messages := buildOpenAIMessages(req)

	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	if req.Schema != nil {
		schemaBytes, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}

		if p.jsonObject {
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
			chatReq.Messages = withSchemaInstruction(chatReq.Messages, req.Schema, schemaBytes)
		} else {
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:        req.Schema.Name,
					Description: req.Schema.Description,
					Schema:      json.RawMessage(schemaBytes),
					Strict:      true,
				},
			}
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, p.mapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no choices in %s response", p.name),
		}
	}

	text := resp.Choices[0].Message.Content
	if resp.Choices[0].FinishReason == openai.FinishReasonLength && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(text)}
	}

	content := textContent(text)
	if req.Schema != nil {
		if content, err = decodeStructured(req.Schema, text); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: mapOpenAIStopReason(resp.Choices[0].FinishReason),
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func buildOpenAIMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonStop:
		return "end"
	case openai.FinishReasonLength:
		return "max_tokens"
	default:
		return "end"
	}
}

// withSchemaInstruction appends the schema to the system message, adding
// one if the request had none.
func withSchemaInstruction(msgs []openai.ChatCompletionMessage, schema *Schema, def []byte) []openai.ChatCompletionMessage {
	instr := fmt.Sprintf("Respond with a single JSON object (%s) matching this JSON Schema:\n%s", schema.Name, def)
	if schema.Description != "" {
		instr = schema.Description + "\n" + instr
	}
	if len(msgs) > 0 && msgs[0].Role == openai.ChatMessageRoleSystem {
		msgs[0].Content += "\n\n" + instr
		return msgs
	}
	return append([]openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: instr}}, msgs...)
}

func (p *OpenAIProvider) mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &ErrProviderUnavailable{Provider: p.name, Err: err}
		}
	}
	if IsCanceled(err) {
		return err
	}
	return &ErrProviderUnavailable{Provider: p.name, Err: err}
}
