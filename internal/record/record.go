// Package record projects an interview session into the candidate record
// handed to recruiters and persisted after every turn.
package record

import (
	"time"

	"github.com/talentscout/screener/internal/extract"
	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/sentiment"
)

// DefaultShiftThreshold is the score both adjacent samples must exceed for
// a label change to count as an emotional shift.
const DefaultShiftThreshold = 0.7

// Record is the external shape of a session.
type Record struct {
	SessionID string    `json:"session_id" yaml:"session_id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Language  string    `json:"language" yaml:"language"`

	Name            string   `json:"name" yaml:"name"`
	Email           string   `json:"email" yaml:"email"`
	Phone           string   `json:"phone" yaml:"phone"`
	YearsExperience *int     `json:"years_experience" yaml:"years_experience"`
	Position        string   `json:"position" yaml:"position"`
	Location        string   `json:"location" yaml:"location"`
	TechStack       []string `json:"tech_stack" yaml:"tech_stack"`

	TechnicalQuestions []string `json:"technical_questions" yaml:"technical_questions"`
	TechnicalAnswers   []string `json:"technical_answers" yaml:"technical_answers"`
	QuestionAnswers    []Pair   `json:"question_answers" yaml:"question_answers"`

	SentimentHistory []Sample `json:"sentiment_history" yaml:"sentiment_history"`
	EmotionalState   string   `json:"emotional_state" yaml:"emotional_state"`
	EmotionalShifts  []Shift  `json:"emotional_shifts" yaml:"emotional_shifts"`
	FeedbackNotes    []string `json:"feedback_notes" yaml:"feedback_notes"`

	// UnfilledFields are fields never collected, SkippedFields the subset
	// given up on after repeated failed turns.
	UnfilledFields      []string `json:"unfilled_fields" yaml:"unfilled_fields"`
	SkippedFields       []string `json:"skipped_fields" yaml:"skipped_fields"`
	UnansweredQuestions []string `json:"unanswered_questions" yaml:"unanswered_questions"`

	Stage     string `json:"stage" yaml:"stage"`
	Ended     bool   `json:"ended" yaml:"ended"`
	Completed bool   `json:"completed" yaml:"completed"`
	EndReason string `json:"end_reason,omitempty" yaml:"end_reason,omitempty"`
}

// Pair is one question with its answer; Answer is nil when unanswered.
type Pair struct {
	Question string  `json:"question" yaml:"question"`
	Answer   *string `json:"answer" yaml:"answer"`
}

// Sample is one entry of the sentiment timeline.
type Sample struct {
	TurnIndex int     `json:"turn_index" yaml:"turn_index"`
	Emotion   string  `json:"emotion" yaml:"emotion"`
	Score     float64 `json:"score" yaml:"score"`
}

// Shift is a significant label change between adjacent samples.
type Shift struct {
	FromTurn int    `json:"from_turn" yaml:"from_turn"`
	ToTurn   int    `json:"to_turn" yaml:"to_turn"`
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
}

// Assembler builds records.
type Assembler struct {
	ShiftThreshold float64
}

// Assemble builds a record with the default shift threshold.
func Assemble(s *interview.Session) Record {
	return Assembler{ShiftThreshold: DefaultShiftThreshold}.Assemble(s)
}

// Assemble projects s into a Record. The session is only read.
func (a Assembler) Assemble(s *interview.Session) Record {
	threshold := a.ShiftThreshold
	if threshold <= 0 {
		threshold = DefaultShiftThreshold
	}

	c := s.Candidate
	r := Record{
		SessionID: s.ID,
		Timestamp: s.UpdatedAt,
		Language:  s.Language,

		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Position:  c.Position,
		Location:  c.Location,
		TechStack: nonNil(c.TechStack),

		TechnicalQuestions:  nonNil(s.Questions),
		TechnicalAnswers:    nonNil(s.Answers),
		UnansweredQuestions: nonNil(s.Unanswered()),

		Stage:     string(s.Stage),
		Ended:     s.Ended,
		Completed: s.Completed,
		EndReason: s.EndReason,
	}
	if c.Years != nil {
		years := *c.Years
		r.YearsExperience = &years
	}

	r.QuestionAnswers = make([]Pair, 0, len(s.Questions))
	for _, qa := range s.Pairs() {
		r.QuestionAnswers = append(r.QuestionAnswers, Pair{Question: qa.Question, Answer: qa.Answer})
	}

	r.SentimentHistory = make([]Sample, 0, len(s.Sentiment))
	for _, smp := range s.Sentiment {
		r.SentimentHistory = append(r.SentimentHistory, Sample{
			TurnIndex: smp.TurnIndex,
			Emotion:   smp.Label,
			Score:     smp.Score,
		})
	}

	r.UnfilledFields = []string{}
	for _, f := range extract.AllFields {
		if !c.Has(f) {
			r.UnfilledFields = append(r.UnfilledFields, string(f))
		}
	}
	r.SkippedFields = []string{}
	for _, f := range s.Skipped {
		r.SkippedFields = append(r.SkippedFields, string(f))
	}

	state, share := OverallState(r.SentimentHistory)
	r.EmotionalState = state
	r.EmotionalShifts = Shifts(r.SentimentHistory, threshold)
	r.FeedbackNotes = FeedbackNotes(state, share, r.EmotionalShifts)
	return r
}

// OverallState returns the label with the greatest summed score and that
// label's share of the total score. Ties go to the label seen first. No
// samples, or only zero scores, yield neutral.
func OverallState(samples []Sample) (string, float64) {
	totals := make(map[string]float64)
	var order []string
	var sum float64
	for _, s := range samples {
		if _, seen := totals[s.Emotion]; !seen {
			order = append(order, s.Emotion)
		}
		totals[s.Emotion] += s.Score
		sum += s.Score
	}
	if sum == 0 {
		return sentiment.Neutral, 0
	}

	best := order[0]
	for _, label := range order[1:] {
		if totals[label] > totals[best] {
			best = label
		}
	}
	return best, totals[best] / sum
}

// Shifts returns every adjacent pair of samples whose labels differ and
// whose scores both exceed threshold.
func Shifts(samples []Sample, threshold float64) []Shift {
	shifts := []Shift{}
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		if prev.Emotion == cur.Emotion {
			continue
		}
		if prev.Score > threshold && cur.Score > threshold {
			shifts = append(shifts, Shift{
				FromTurn: prev.TurnIndex,
				ToTurn:   cur.TurnIndex,
				From:     prev.Emotion,
				To:       cur.Emotion,
			})
		}
	}
	return shifts
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s...)
}
