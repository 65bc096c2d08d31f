package llm

import (
	"context"
	"testing"

	"github.com/talentscout/screener/internal/store"
)

func TestLoggingProvider_RecordsEvent(t *testing.T) {
	mem := store.NewMemory()
	events := mem.EventRepo()

	mock := NewMockProvider(MockResponse{
		Content: textContent("ok"),
		Usage:   Usage{InputTokens: 12, OutputTokens: 3},
	})
	p := WithLogging(mock, ProviderGroq, events, nil)

	ctx := WithSession(WithPurpose(context.Background(), "sentiment"), "sess-42")
	if _, err := p.Generate(ctx, Request{System: "classify", Messages: []Message{{Role: RoleUser, Content: "I am excited"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := events.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	ev := got[0]
	if ev.Purpose != "sentiment" || ev.SessionID != "sess-42" || ev.Provider != ProviderGroq {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 3 {
		t.Fatalf("unexpected usage: %+v", ev)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	mem := store.NewMemory()
	events := mem.EventRepo()

	p := WithLogging(NewMockProvider(), ProviderOpenRouter, events, nil)
	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error from empty mock")
	}

	got, _ := events.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if len(got) != 1 || got[0].Success || got[0].ErrorMessage == "" {
		t.Fatalf("expected one failed event, got %+v", got)
	}
}
