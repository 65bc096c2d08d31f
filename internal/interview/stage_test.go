package interview

import (
	"testing"
	"time"

	"github.com/talentscout/screener/internal/extract"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Stage
		want     bool
	}{
		{StageGreeting, StageCollectingInfo, true},
		{StageGreeting, StageTechStackDeclared, false},
		{StageCollectingInfo, StageCollectingInfo, true},
		{StageCollectingInfo, StageAskingQuestions, false},
		{StageTechStackDeclared, StageAskingQuestions, true},
		{StageAskingQuestions, StageAwaitingAnswers, true},
		{StageAwaitingAnswers, StageAskingQuestions, true},
		{StageAwaitingAnswers, StageCollectingInfo, false},
		{StageAwaitingAnswers, StageSentimentSummary, true},
		{StageSentimentSummary, StageConcluded, true},
		{StageGreeting, StageConcluded, true},
		{StageCollectingInfo, StageConcluded, true},
		{StageConcluded, StageConcluded, false},
		{StageConcluded, StageGreeting, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStageValid(t *testing.T) {
	for _, s := range Stages {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Stage("DONE").Valid() {
		t.Error("unknown stage reported valid")
	}
	if !StageConcluded.Terminal() || StageAwaitingAnswers.Terminal() {
		t.Error("only CONCLUDED is terminal")
	}
}

func TestSessionValidate(t *testing.T) {
	ok := NewSession("v", "en", time.Now())
	if err := ok.Validate(); err != nil {
		t.Fatalf("fresh session: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Session)
	}{
		{"no id", func(s *Session) { s.ID = "" }},
		{"unknown stage", func(s *Session) { s.Stage = "DONE" }},
		{"unknown pending field", func(s *Session) { s.Pending = append(s.Pending, "shoe_size") }},
		{"unknown skipped field", func(s *Session) { s.Skipped = []extract.Field{"age"} }},
		{"answers outrun questions", func(s *Session) { s.Answers = []string{"yes"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession("v", "en", time.Now())
			tt.mutate(s)
			if err := s.Validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestExitMatcher(t *testing.T) {
	m := newExitMatcher(DefaultExitKeywords)
	tests := []struct {
		in   string
		want bool
	}{
		{"bye", true},
		{"BYE!", true},
		{"Goodbye.", true},
		{"ok, bye then", true},
		{"please end interview", true},
		{"end interview", true},
		{"I want to stop", true},
		{"I never stop learning new frameworks", false},
		{"stop the interview please", true},
		{"Okay, goodbye and thank you", false},
		{"okay goodbye thank you", true},
		{"stop the goroutine", false},
		{"quit the process", false},
		{"call os.Exit(1)", false},
		{"Use a stop channel", false},
		{"exit code", false},
		{"byelaws", false},
		{"the end", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := m.Match(tt.in); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDraftApply(t *testing.T) {
	var d Draft
	d.Apply(extract.Assignment{Field: extract.FieldTechStack, Tech: []string{"Go", "Rust"}})
	d.Apply(extract.Assignment{Field: extract.FieldTechStack, Tech: []string{"go", "Python"}})
	d.Apply(extract.Assignment{Field: extract.FieldExperience, Years: 0})

	if got := d.TechStack; len(got) != 3 || got[0] != "Go" || got[2] != "Python" {
		t.Fatalf("tech stack = %v", got)
	}
	if !d.Has(extract.FieldExperience) || d.YearsOrZero() != 0 {
		t.Fatal("zero years is a collected value")
	}
	if d.Has(extract.FieldName) {
		t.Fatal("name should not be collected")
	}
}

func TestSessionPairs(t *testing.T) {
	s := &Session{
		Questions: []string{"Q1", "Q2", "Q3"},
		Answers:   []string{"A1"},
	}
	pairs := s.Pairs()
	if len(pairs) != 3 {
		t.Fatalf("pairs = %d", len(pairs))
	}
	if pairs[0].Answer == nil || *pairs[0].Answer != "A1" {
		t.Fatalf("first pair = %+v", pairs[0])
	}
	if pairs[1].Answer != nil || pairs[2].Answer != nil {
		t.Fatal("unanswered questions must have no answer")
	}
	if got := s.Unanswered(); len(got) != 2 || got[0] != "Q2" {
		t.Fatalf("unanswered = %v", got)
	}
}

func TestSessionClone(t *testing.T) {
	years := 4
	s := NewSession("id", "en", testNow)
	s.Candidate.Years = &years
	s.Candidate.TechStack = []string{"Go"}

	c := s.Clone()
	*c.Candidate.Years = 9
	c.Candidate.TechStack[0] = "Rust"
	c.Pending[0] = extract.FieldTechStack

	if *s.Candidate.Years != 4 || s.Candidate.TechStack[0] != "Go" || s.Pending[0] != extract.FieldName {
		t.Fatal("clone shares memory with the original")
	}
}
