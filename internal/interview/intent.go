package interview

import "github.com/talentscout/screener/internal/extract"

// Kind is what the rendering layer should say next.
type Kind string

const (
	KindPromptField Kind = "prompt_field"
	KindAskQuestion Kind = "ask_question"
	KindAcknowledge Kind = "acknowledge"
	KindConclude    Kind = "conclude"
)

// ResponseIntent is the outcome of one turn. Field is set for
// KindPromptField, Index for KindAskQuestion. Payload is the question text
// for KindAskQuestion, the validation failure being re-prompted for
// KindPromptField, and the end reason for KindConclude.
type ResponseIntent struct {
	Kind    Kind          `json:"kind"`
	Field   extract.Field `json:"field,omitempty"`
	Index   int           `json:"index"`
	Payload string        `json:"payload,omitempty"`
	Summary Snapshot      `json:"summary"`
}

// Snapshot summarizes a session for the caller.
type Snapshot struct {
	SessionID string          `json:"session_id"`
	Stage     Stage           `json:"stage"`
	Language  string          `json:"language"`
	Collected []extract.Field `json:"collected"`
	Pending   []extract.Field `json:"pending"`
	Skipped   []extract.Field `json:"skipped,omitempty"`
	Questions int             `json:"questions"`
	Answered  int             `json:"answered"`
	Turns     int             `json:"turns"`
	Ended     bool            `json:"ended"`
	Completed bool            `json:"completed"`
}

// Snapshot summarizes s.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID: s.ID,
		Stage:     s.Stage,
		Language:  s.Language,
		Questions: len(s.Questions),
		Answered:  len(s.Answers),
		Turns:     len(s.Turns),
		Ended:     s.Ended,
		Completed: s.Completed,
	}
	for _, f := range extract.AllFields {
		if s.Candidate.Has(f) {
			snap.Collected = append(snap.Collected, f)
		}
	}
	snap.Pending = append([]extract.Field(nil), s.Pending...)
	snap.Skipped = append([]extract.Field(nil), s.Skipped...)
	return snap
}

// intent derives the response for the session's current state. It reads
// only persisted data, so a reloaded session yields the same intent.
func (s *Session) intent() ResponseIntent {
	ri := ResponseIntent{Summary: s.Snapshot()}
	switch s.Stage {
	case StageCollectingInfo:
		ri.Kind = KindPromptField
		ri.Field = extract.Focus(s.Pending)
		ri.Payload = s.Notice
	case StageAskingQuestions, StageAwaitingAnswers:
		if i := len(s.Answers); i < len(s.Questions) {
			ri.Kind = KindAskQuestion
			ri.Index = i
			ri.Payload = s.Questions[i]
			break
		}
		ri.Kind = KindAcknowledge
	case StageConcluded:
		ri.Kind = KindConclude
		ri.Payload = s.EndReason
	default:
		ri.Kind = KindAcknowledge
	}
	return ri
}
