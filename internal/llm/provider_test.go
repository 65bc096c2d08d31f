package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCanedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "question-gen")
	if p := PurposeFrom(ctx); p != "question-gen" {
		t.Fatalf("expected 'question-gen', got %q", p)
	}
}

func TestSessionContext(t *testing.T) {
	ctx := context.Background()
	if s := SessionFrom(ctx); s != "" {
		t.Fatalf("expected empty session, got %q", s)
	}
	ctx = WithSession(ctx, "sess-1")
	if s := SessionFrom(ctx); s != "sess-1" {
		t.Fatalf("expected 'sess-1', got %q", s)
	}
}

func TestConfig_Chain(t *testing.T) {
	cfg := Config{Provider: "groq", Fallback: []string{"openrouter", "groq", "", "gemini"}}
	got := cfg.Chain()
	want := []string{"groq", "openrouter", "gemini"}
	if len(got) != len(want) {
		t.Fatalf("Chain() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Chain() = %v, want %v", got, want)
		}
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GROQ_API_KEY", "OPENROUTER_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	t.Setenv("GROQ_API_KEY", "gsk")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a provider")
	}
	if cfg.Provider != ProviderGroq {
		t.Fatalf("expected groq primary, got %q", cfg.Provider)
	}
	if len(cfg.Fallback) != 1 || cfg.Fallback[0] != ProviderOpenRouter {
		t.Fatalf("expected openrouter fallback, got %v", cfg.Fallback)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("discovered config should validate: %v", err)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]any{"questions": "nope"}))
	_, err := mock.Generate(context.Background(), Request{Schema: questionSchema})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestMockText(t *testing.T) {
	mock := NewMockProvider(MockText("Hello there"))
	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Hello there" {
		t.Fatalf("expected 'Hello there', got %q", resp.Text())
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: ProviderGroq}, nil, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "groq with key",
			cfg:     Config{Provider: "groq", Groq: GroqConfig{APIKey: "gsk-test"}},
			wantErr: false,
		},
		{
			name: "fallback without key",
			cfg: Config{
				Provider: "groq",
				Fallback: []string{"openrouter"},
				Groq:     GroqConfig{APIKey: "gsk-test"},
			},
			wantErr: true,
		},
		{
			name:    "no provider",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
