package phrasing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/talentscout/screener/internal/extract"
	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/langid"
	"github.com/talentscout/screener/internal/llm"
)

func newEngine(t *testing.T) *interview.Engine {
	t.Helper()
	e, err := interview.New(interview.DefaultConfig(), interview.Deps{
		Now: func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}, nil)
	if err != nil {
		t.Fatalf("interview.New: %v", err)
	}
	return e
}

func phrase(t *testing.T, s *interview.Session, ri interview.ResponseIntent) string {
	t.Helper()
	text, err := NewTemplates().Phrase(context.Background(), s, ri)
	if err != nil {
		t.Fatalf("Phrase: %v", err)
	}
	return text
}

func TestTemplates_Greeting(t *testing.T) {
	e := newEngine(t)
	s := e.Start("g")

	text := phrase(t, s, e.Resume(s))
	if !strings.HasPrefix(text, langid.Greeting("en")) {
		t.Fatalf("greeting = %q", text)
	}
	if !strings.Contains(text, `"bye"`) {
		t.Fatalf("greeting should mention how to leave: %q", text)
	}

	s.Language = "es"
	if text := phrase(t, s, e.Resume(s)); !strings.HasPrefix(text, langid.Greeting("es")) {
		t.Fatalf("spanish greeting = %q", text)
	}
}

func TestTemplates_FieldPrompts(t *testing.T) {
	e := newEngine(t)
	s := e.Start("f")
	ctx := context.Background()

	ri := e.Advance(ctx, s, "hi")
	if text := phrase(t, s, ri); text != fieldPrompts[extract.FieldName] {
		t.Fatalf("name prompt = %q", text)
	}

	ri = e.Advance(ctx, s, "???")
	if text := phrase(t, s, ri); !strings.HasPrefix(text, "I didn't quite catch that.") {
		t.Fatalf("retry prompt = %q", text)
	}

	ri = e.Advance(ctx, s, "Jane Doe")
	if text := phrase(t, s, ri); !strings.HasPrefix(text, "Nice to meet you, Jane!") {
		t.Fatalf("email prompt = %q", text)
	}

	ri = e.Advance(ctx, s, "jane@localhost")
	text := phrase(t, s, ri)
	if !strings.HasPrefix(text, "Sorry, that doesn't look like a valid email address") {
		t.Fatalf("validation prompt = %q", text)
	}
	if !strings.HasSuffix(text, fieldPrompts[extract.FieldEmail]) {
		t.Fatalf("validation prompt should repeat the question: %q", text)
	}
}

func TestTemplates_QuestionsAndConclusion(t *testing.T) {
	e := newEngine(t)
	s := e.Start("q")
	s.Stage = interview.StageCollectingInfo
	s.Candidate.Name = "Ada Lovelace"
	s.Pending = []extract.Field{extract.FieldTechStack}
	ctx := context.Background()

	ri := e.Advance(ctx, s, "Go, Rust")
	text := phrase(t, s, ri)
	if !strings.HasPrefix(text, "Thanks, Ada! Now a few technical questions about Go, Rust. Question 1 of 2: ") {
		t.Fatalf("first question = %q", text)
	}

	ri = e.Advance(ctx, s, "An answer.")
	if text := phrase(t, s, ri); !strings.HasPrefix(text, "Question 2 of 2: ") {
		t.Fatalf("second question = %q", text)
	}

	ri = e.Advance(ctx, s, "Another answer.")
	if text := phrase(t, s, ri); !strings.HasPrefix(text, "Thank you for completing the interview, Ada!") {
		t.Fatalf("completion = %q", text)
	}

	ri = e.Advance(ctx, s, "hello?")
	if text := phrase(t, s, ri); !strings.HasPrefix(text, "This interview has already ended.") {
		t.Fatalf("after the end = %q", text)
	}
}

func TestTemplates_Exit(t *testing.T) {
	e := newEngine(t)
	s := e.Start("x")
	ri := e.Advance(context.Background(), s, "bye")
	if text := phrase(t, s, ri); !strings.HasPrefix(text, "Thanks for your time.") {
		t.Fatalf("exit = %q", text)
	}
}

func TestLLM_RephrasesInSessionLanguage(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("  ¿Podrías decirme tu nombre completo?  "))
	catalog, err := langid.NewCatalog(nil)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	p := NewLLM(mock, NewTemplates(), catalog, nil)

	e := newEngine(t)
	s := e.Start("l")
	s.Language = "es"
	ri := e.Advance(context.Background(), s, "hola")
	s.Language = "es"

	text, err := p.Phrase(context.Background(), s, ri)
	if err != nil {
		t.Fatalf("Phrase: %v", err)
	}
	if text != "¿Podrías decirme tu nombre completo?" {
		t.Fatalf("text = %q", text)
	}

	msg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"Language: Spanish", "Candidate's last message: hola", "Draft reply: " + fieldPrompts[extract.FieldName]} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
	if mock.Calls[0].Schema != nil {
		t.Error("phrasing should request plain text")
	}
}

func TestLLM_FallsBackToTemplate(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")}, llm.MockText("   "))
	p := NewLLM(mock, NewTemplates(), nil, zap.New(core))

	e := newEngine(t)
	s := e.Start("l")
	ri := e.Advance(context.Background(), s, "hi")

	for range 2 {
		text, err := p.Phrase(context.Background(), s, ri)
		if err != nil {
			t.Fatalf("Phrase: %v", err)
		}
		if text != fieldPrompts[extract.FieldName] {
			t.Fatalf("text = %q", text)
		}
	}
	if observed.FilterMessage("LLM phrasing failed, using template text").Len() != 1 {
		t.Fatal("expected one warning")
	}
}
