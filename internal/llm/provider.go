package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// When the request carries a Schema the provider asks for JSON that
	// conforms to it and validates the result before returning.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation history. Question generation and
	// sentiment classification send a single user message; phrasing sends
	// the recent transcript.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When nil, Response.Content is the raw text encoded as a JSON string.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero leaves the provider default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI-compatible APIs,
	// cache key for validation). Kebab-case, e.g. "screening-questions".
	Name string

	// Description is sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the validated JSON object when a Schema was given,
	// otherwise the text response as a JSON string.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Text decodes a schema-less response into its text. Content that is not
// a JSON string is returned verbatim.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err != nil {
		return string(r.Content)
	}
	return s
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// textContent wraps a plain-text completion for Response.Content.
func textContent(text string) json.RawMessage {
	b, _ := json.Marshal(text)
	return b
}
