// Package interview runs the screening conversation: a state machine that
// reads one candidate utterance per turn, fills the candidate profile,
// asks technical questions and decides when the interview ends.
package interview

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/talentscout/screener/internal/extract"
)

// Session is the complete state of one interview. The Engine is its only
// writer; everything else reads it.
type Session struct {
	ID       string `json:"id"`
	Stage    Stage  `json:"stage"`
	Language string `json:"language"`

	// Visited lists every stage entered, starting with StageGreeting.
	Visited []Stage `json:"visited"`

	Candidate Draft             `json:"candidate"`
	Turns     []Turn            `json:"turns"`
	Sentiment []SentimentSample `json:"sentiment"`

	// Pending holds the fields still to be collected, Skipped the ones
	// given up on after repeated failed turns.
	Pending []extract.Field `json:"pending_fields"`
	Skipped []extract.Field `json:"skipped_fields,omitempty"`

	// Answers is index-aligned with Questions; the next question to ask is
	// Questions[len(Answers)].
	Questions []string `json:"technical_questions"`
	Answers   []string `json:"technical_answers"`

	// QuestionsGenerated is set once the generator has been invoked.
	QuestionsGenerated bool `json:"questions_generated"`

	// Fallbacks counts consecutive turns in which nothing was extracted for
	// FallbackField.
	Fallbacks     int           `json:"fallbacks"`
	FallbackField extract.Field `json:"fallback_field,omitempty"`

	// Notice carries the validation failure of the last turn into the
	// re-prompt.
	Notice string `json:"notice,omitempty"`

	Ended     bool   `json:"ended"`
	Completed bool   `json:"completed"`
	EndReason string `json:"end_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// End reasons.
const (
	EndCompleted   = "completed"
	EndExitKeyword = "exit_keyword"
)

// NewSession creates a session in StageGreeting with every field pending.
func NewSession(id, language string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Stage:     StageGreeting,
		Language:  language,
		Visited:   []Stage{StageGreeting},
		Pending:   slices.Clone(extract.AllFields),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks a session read back from storage before the engine
// touches it.
func (s *Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session has no id")
	}
	if !s.Stage.Valid() {
		return fmt.Errorf("session %s: unknown stage %q", s.ID, s.Stage)
	}
	for _, f := range slices.Concat(s.Pending, s.Skipped) {
		if !f.Valid() {
			return fmt.Errorf("session %s: unknown field %q", s.ID, f)
		}
	}
	if len(s.Answers) > len(s.Questions) {
		return fmt.Errorf("session %s: %d answers for %d questions", s.ID, len(s.Answers), len(s.Questions))
	}
	return nil
}

// Draft is the candidate profile collected so far. A field is set only
// after its value passed validation.
type Draft struct {
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Years     *int     `json:"years_experience,omitempty"`
	Position  string   `json:"position,omitempty"`
	Location  string   `json:"location,omitempty"`
	TechStack []string `json:"tech_stack,omitempty"`
}

// Apply stores a validated assignment. Tech stack entries are merged with
// case-insensitive dedup, keeping first-seen order.
func (d *Draft) Apply(a extract.Assignment) {
	switch a.Field {
	case extract.FieldName:
		d.Name = a.Value
	case extract.FieldEmail:
		d.Email = a.Value
	case extract.FieldPhone:
		d.Phone = a.Value
	case extract.FieldExperience:
		years := a.Years
		d.Years = &years
	case extract.FieldPosition:
		d.Position = a.Value
	case extract.FieldLocation:
		d.Location = a.Value
	case extract.FieldTechStack:
		for _, tech := range a.Tech {
			if !slices.ContainsFunc(d.TechStack, func(have string) bool {
				return strings.EqualFold(have, tech)
			}) {
				d.TechStack = append(d.TechStack, tech)
			}
		}
	}
}

// Has reports whether f has been collected.
func (d Draft) Has(f extract.Field) bool {
	switch f {
	case extract.FieldName:
		return d.Name != ""
	case extract.FieldEmail:
		return d.Email != ""
	case extract.FieldPhone:
		return d.Phone != ""
	case extract.FieldExperience:
		return d.Years != nil
	case extract.FieldPosition:
		return d.Position != ""
	case extract.FieldLocation:
		return d.Location != ""
	case extract.FieldTechStack:
		return len(d.TechStack) > 0
	}
	return false
}

// YearsOrZero returns the collected experience, or 0 when it is missing.
func (d Draft) YearsOrZero() int {
	if d.Years == nil {
		return 0
	}
	return *d.Years
}

// Turn records one processed utterance.
type Turn struct {
	Index     int       `json:"index"`
	Utterance string    `json:"utterance"`
	Language  string    `json:"language"`
	Stage     Stage     `json:"stage"`
	Action    string    `json:"action"`
	At        time.Time `json:"at"`
}

// SentimentSample is the classified tone of one turn.
type SentimentSample struct {
	TurnIndex int     `json:"turn_index"`
	Label     string  `json:"emotion"`
	Score     float64 `json:"score"`
}

// QuestionAnswer pairs a question with its answer, if any.
type QuestionAnswer struct {
	Question string  `json:"question"`
	Answer   *string `json:"answer"`
}

// Pairs builds the question/answer view by index.
func (s *Session) Pairs() []QuestionAnswer {
	out := make([]QuestionAnswer, len(s.Questions))
	for i, q := range s.Questions {
		out[i].Question = q
		if i < len(s.Answers) {
			a := s.Answers[i]
			out[i].Answer = &a
		}
	}
	return out
}

// Unanswered returns the questions that have no answer.
func (s *Session) Unanswered() []string {
	if len(s.Answers) >= len(s.Questions) {
		return nil
	}
	return slices.Clone(s.Questions[len(s.Answers):])
}

// PendingInfo reports whether any non-tech field is still pending.
func (s *Session) PendingInfo() bool {
	for _, f := range s.Pending {
		if f != extract.FieldTechStack {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.Visited = slices.Clone(s.Visited)
	c.Turns = slices.Clone(s.Turns)
	c.Sentiment = slices.Clone(s.Sentiment)
	c.Pending = slices.Clone(s.Pending)
	c.Skipped = slices.Clone(s.Skipped)
	c.Questions = slices.Clone(s.Questions)
	c.Answers = slices.Clone(s.Answers)
	c.Candidate.TechStack = slices.Clone(s.Candidate.TechStack)
	if s.Candidate.Years != nil {
		y := *s.Candidate.Years
		c.Candidate.Years = &y
	}
	return &c
}

func (s *Session) enter(to Stage) {
	s.Stage = to
	s.Visited = append(s.Visited, to)
}

func (s *Session) removePending(f extract.Field) {
	s.Pending = slices.DeleteFunc(s.Pending, func(p extract.Field) bool { return p == f })
}
