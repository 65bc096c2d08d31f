package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider implements Provider using the Google Gemini SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	model := resolveModel(cfg.Model, geminiModels)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
	}

	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = buildGeminiSchema(req.Schema.Definition)
	}

	contents := buildGeminiContents(req.Messages)

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	text := result.Text()
	stop := mapGeminiStopReason(result)
	if stop == "max_tokens" && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(text)}
	}

	content := textContent(text)
	if req.Schema != nil {
		if content, err = decodeStructured(req.Schema, text); err != nil {
			return nil, err
		}
	}

	resp := &Response{
		Content:    content,
		Model:      p.model,
		StopReason: stop,
	}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}

	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func buildGeminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

// buildGeminiSchema converts a JSON Schema definition into a genai.Schema.
// Numeric and array bounds carry over so Gemini enforces them while
// generating; required properties are emitted first and in order.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	schema := &genai.Schema{}
	if t, ok := def["type"].(string); ok {
		schema.Type = mapGeminiType(t)
	}
	schema.Description, _ = def["description"].(string)

	if v, ok := schemaNumber(def["minimum"]); ok {
		schema.Minimum = &v
	}
	if v, ok := schemaNumber(def["maximum"]); ok {
		schema.Maximum = &v
	}
	if v, ok := schemaNumber(def["minItems"]); ok {
		n := int64(v)
		schema.MinItems = &n
	}
	if v, ok := schemaNumber(def["maxItems"]); ok {
		n := int64(v)
		schema.MaxItems = &n
	}

	for _, e := range anyStrings(def["enum"]) {
		schema.Enum = append(schema.Enum, e)
	}
	if items, ok := def["items"].(map[string]any); ok {
		schema.Items = buildGeminiSchema(items)
	}

	props, _ := def["properties"].(map[string]any)
	if len(props) == 0 {
		return schema
	}
	schema.Properties = make(map[string]*genai.Schema, len(props))
	for name, v := range props {
		if pd, ok := v.(map[string]any); ok {
			schema.Properties[name] = buildGeminiSchema(pd)
		}
	}
	for _, name := range anyStrings(def["required"]) {
		if _, ok := schema.Properties[name]; ok {
			schema.Required = append(schema.Required, name)
		}
	}
	schema.PropertyOrdering = append(schema.PropertyOrdering, schema.Required...)
	var rest []string
	for name := range schema.Properties {
		if !slices.Contains(schema.Required, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	schema.PropertyOrdering = append(schema.PropertyOrdering, rest...)
	return schema
}

// schemaNumber reads a JSON Schema number written either as a Go literal
// (int, float64) or decoded from JSON.
func schemaNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// anyStrings accepts []any or []string.
func anyStrings(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func mapGeminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func mapGeminiStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) > 0 {
		switch result.Candidates[0].FinishReason {
		case "STOP":
			return "end"
		case "MAX_TOKENS":
			return "max_tokens"
		}
	}
	return "end"
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.Code >= 500:
			return &ErrProviderUnavailable{Provider: ProviderGemini, Err: err}
		}
	}
	if IsCanceled(err) {
		return err
	}
	return &ErrProviderUnavailable{Provider: ProviderGemini, Err: err}
}
