package questions

import (
	"strings"
	"testing"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		years int
		want  Level
	}{
		{0, LevelEntry},
		{1, LevelEntry},
		{2, LevelIntermediate},
		{4, LevelIntermediate},
		{5, LevelAdvanced},
		{30, LevelAdvanced},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.years); got != tt.want {
			t.Errorf("LevelFor(%d) = %q, want %q", tt.years, got, tt.want)
		}
	}
}

func TestFallback(t *testing.T) {
	stack := []string{"Go", "Rust", "Python", "Java", "C#", "Kotlin", "Swift"}

	qs := Fallback(stack, 10, 5)
	if len(qs) != 5 {
		t.Fatalf("expected cap of 5, got %d", len(qs))
	}
	for i, q := range qs {
		if !strings.Contains(q, stack[i]) {
			t.Errorf("question %d %q does not mention %s", i, q, stack[i])
		}
	}
	if qs[0] != "Can you describe a complex technical challenge you solved using Go?" {
		t.Errorf("expected advanced template, got %q", qs[0])
	}

	again := Fallback(stack, 10, 5)
	for i := range qs {
		if qs[i] != again[i] {
			t.Fatalf("fallback is not deterministic at %d: %q vs %q", i, qs[i], again[i])
		}
	}

	if got := Fallback([]string{"SQL"}, 0, 5); got[0] != "What are the basic features of SQL?" {
		t.Errorf("expected entry template, got %q", got[0])
	}
}

func TestFallback_EmptyStack(t *testing.T) {
	qs := Fallback(nil, 3, 5)
	if len(qs) != 3 {
		t.Fatalf("expected 3 general questions, got %d", len(qs))
	}
	qs[0] = "changed"
	if generalQuestions[0] == "changed" {
		t.Fatal("fallback must not alias the general question list")
	}
}

func TestValidateSet(t *testing.T) {
	cfg := DefaultConfig()
	q := func(texts ...string) []Question {
		var out []Question
		for _, s := range texts {
			out = append(out, Question{Technology: "Go", Text: s})
		}
		return out
	}

	tests := []struct {
		name string
		qs   []Question
		want string
	}{
		{"valid", q("A?", "B?", "C?"), ""},
		{"empty", nil, "no questions"},
		{"blank entry", q("A?", "  ", "C?"), "question 2 is empty"},
		{"duplicate after folding", q("What is Go?", "what is go", "C?"), "duplicates"},
		{"too few", q("A?", "B?"), "got 2"},
		{"too many", q("A", "B", "C", "D", "E", "F"), "got 6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSet(tt.qs, cfg)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Message, tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
