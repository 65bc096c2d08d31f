package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return newOpenAICompatible(ProviderOpenAI, "test-key", server.URL+"/v1", "gpt-4o-mini")
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": finish,
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

var questionSchema = &Schema{
	Name:        "test-questions",
	Description: "Screening questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"questions":["How does the Go scheduler work?"]}`, "stop"))
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a technical recruiter.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate a question about Go."}},
		Schema:    questionSchema,
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 {
		t.Fatalf("expected 40 input tokens, got %d", resp.Usage.InputTokens)
	}
	if resp.Usage.OutputTokens != 25 {
		t.Fatalf("expected 25 output tokens, got %d", resp.Usage.OutputTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
}

func TestOpenAIProvider_TextResponse(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("Thanks! What is your email address?", "stop"))
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Ask for the email."}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resp.Text(); got != "Thanks! What is your email address?" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"questions":"not a list"}`, "stop"))
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
		Schema:   questionSchema,
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"questions":["How`, "length"))
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
		Schema:   questionSchema,
	})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_JSONObjectMode(t *testing.T) {
	var captured openai.ChatCompletionRequest
	handler := func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"questions":["Explain Django middleware."]}`, "stop"))
	}

	p := newTestOpenAIProvider(t, handler)
	p.jsonObject = true
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Generate a question about Django."}},
		Schema:   questionSchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Fatalf("expected json_object response format, got %+v", captured.ResponseFormat)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("expected a system message carrying the schema, got %+v", captured.Messages)
	}
	if !strings.Contains(captured.Messages[0].Content, `"questions"`) {
		t.Fatalf("schema missing from system prompt: %q", captured.Messages[0].Content)
	}
}

func TestOpenAIProvider_FencedJSON(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("```json\n{\"questions\":[\"What is a Go interface?\"]}\n```", "stop"))
	}

	p := newTestOpenAIProvider(t, handler)
	p.jsonObject = true
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Generate a question about Go."}},
		Schema:   questionSchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"questions":["What is a Go interface?"]}` {
		t.Fatalf("content = %s", resp.Content)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "server_error",
				"message": "Internal server error",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
	if unavail.Provider != ProviderOpenAI {
		t.Fatalf("expected provider %q, got %q", ProviderOpenAI, unavail.Provider)
	}
}

func TestOpenAIProvider_BaseURLOverride(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://compatible.example/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}
}
