package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

var testDBCounter atomic.Int64

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type repos struct {
	sessions SessionRepo
	records  RecordRepo
	events   EventRepo
}

func backends(t *testing.T) map[string]repos {
	t.Helper()
	s := openTestStore(t)
	m := NewMemory()
	return map[string]repos{
		"sqlite": {s.SessionRepo(), s.RecordRepo(), s.EventRepo()},
		"memory": {m.SessionRepo(), m.RecordRepo(), m.EventRepo()},
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dsn := fmt.Sprintf("file:store_test_reopen_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	first, err := Open(dsn)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	defer first.Close()

	second, err := Open(dsn)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	second.Close()
}

func TestSessionRepo_ReadAfterWrite(t *testing.T) {
	for name, r := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := r.sessions.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
			}

			row := &SessionRow{ID: "s-1", Stage: "COLLECTING_INFO", Language: "en", Data: []byte(`{"v":1}`)}
			if err := r.sessions.Put(ctx, row); err != nil {
				t.Fatalf("put: %v", err)
			}
			created := row.CreatedAt

			got, err := r.sessions.Get(ctx, "s-1")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Stage != "COLLECTING_INFO" || string(got.Data) != `{"v":1}` {
				t.Fatalf("unexpected row: %+v", got)
			}

			row.Stage = "CONCLUDED"
			row.Ended = true
			row.Data = []byte(`{"v":2}`)
			if err := r.sessions.Put(ctx, row); err != nil {
				t.Fatalf("second put: %v", err)
			}

			got, err = r.sessions.Get(ctx, "s-1")
			if err != nil {
				t.Fatalf("get after update: %v", err)
			}
			if !got.Ended || got.Stage != "CONCLUDED" || string(got.Data) != `{"v":2}` {
				t.Fatalf("update not visible: %+v", got)
			}
			if !got.CreatedAt.Equal(created.Truncate(time.Millisecond)) && !got.CreatedAt.Equal(created) {
				t.Errorf("created_at changed on update: %v -> %v", created, got.CreatedAt)
			}
		})
	}
}

func TestSessionRepo_ListAndDelete(t *testing.T) {
	for name, r := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i, ended := range []bool{false, true, true} {
				row := &SessionRow{ID: fmt.Sprintf("s-%d", i), Stage: "GREETING", Ended: ended, Data: []byte("{}")}
				if err := r.sessions.Put(ctx, row); err != nil {
					t.Fatalf("put %d: %v", i, err)
				}
			}

			all, err := r.sessions.List(ctx, QueryOpts{})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("expected 3 sessions, got %d", len(all))
			}

			ended := true
			done, err := r.sessions.List(ctx, QueryOpts{Ended: &ended})
			if err != nil {
				t.Fatalf("list ended: %v", err)
			}
			if len(done) != 2 {
				t.Fatalf("expected 2 ended sessions, got %d", len(done))
			}

			limited, err := r.sessions.List(ctx, QueryOpts{Limit: 1})
			if err != nil {
				t.Fatalf("list limited: %v", err)
			}
			if len(limited) != 1 {
				t.Fatalf("expected 1 session, got %d", len(limited))
			}

			if err := r.sessions.Delete(ctx, "s-0"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := r.sessions.Delete(ctx, "s-0"); err != nil {
				t.Fatalf("second delete: %v", err)
			}
			if _, err := r.sessions.Get(ctx, "s-0"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("deleted session still readable: %v", err)
			}
		})
	}
}

func TestRecordRepo_PutGet(t *testing.T) {
	for name, r := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			row := &RecordRow{
				SessionID:      "s-1",
				Name:           "Ada Lovelace",
				Email:          "ada@example.com",
				Position:       "Backend Engineer",
				EmotionalState: "confident",
				Completed:      true,
				Data:           []byte(`{"name":"Ada Lovelace"}`),
			}
			if err := r.records.Put(ctx, row); err != nil {
				t.Fatalf("put: %v", err)
			}
			row.EmotionalState = "anxious"
			if err := r.records.Put(ctx, row); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			got, err := r.records.Get(ctx, "s-1")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Name != "Ada Lovelace" || got.EmotionalState != "anxious" || !got.Completed {
				t.Fatalf("unexpected record: %+v", got)
			}

			list, err := r.records.List(ctx, QueryOpts{Filter: "Backend Engineer"})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(list) != 1 {
				t.Fatalf("expected 1 record, got %d", len(list))
			}
		})
	}
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	for name, r := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			events := []LLMEvent{
				{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
				{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "sentiment", InputTokens: 20, OutputTokens: 5, LatencyMs: 100, Success: true},
				{Provider: "openrouter", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 80, OutputTokens: 40, LatencyMs: 400, Success: false, ErrorMessage: "boom"},
			}
			for _, ev := range events {
				if err := r.events.AppendLLMRequest(ctx, ev); err != nil {
					t.Fatalf("append: %v", err)
				}
			}

			got, err := r.events.QueryLLMEvents(ctx, QueryOpts{})
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(got) != 3 {
				t.Fatalf("expected 3 events, got %d", len(got))
			}
			if got[0].Sequence <= got[1].Sequence {
				t.Fatalf("events not newest first: %d, %d", got[0].Sequence, got[1].Sequence)
			}

			qgen, err := r.events.QueryLLMEvents(ctx, QueryOpts{Filter: "question-gen"})
			if err != nil {
				t.Fatalf("query purpose: %v", err)
			}
			if len(qgen) != 2 {
				t.Fatalf("expected 2 question-gen events, got %d", len(qgen))
			}

			one, err := r.events.GetLLMEvent(ctx, got[0].Sequence)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if one.ErrorMessage != "boom" || one.Success {
				t.Fatalf("unexpected event: %+v", one)
			}
			if _, err := r.events.GetLLMEvent(ctx, 9999); !errors.Is(err, ErrNotFound) {
				t.Fatalf("GetLLMEvent(9999) error = %v, want ErrNotFound", err)
			}

			usage, err := r.events.LLMUsageByPurpose(ctx)
			if err != nil {
				t.Fatalf("usage: %v", err)
			}
			if len(usage) != 2 {
				t.Fatalf("expected 2 purposes, got %d", len(usage))
			}
			if usage[0].Key != "question-gen" || usage[0].Calls != 2 || usage[0].InputTokens != 180 || usage[0].AvgLatencyMs != 300 {
				t.Fatalf("unexpected question-gen usage: %+v", usage[0])
			}
		})
	}
}
