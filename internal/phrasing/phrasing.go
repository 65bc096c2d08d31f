// Package phrasing turns response intents into the text shown to the
// candidate.
package phrasing

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/talentscout/screener/internal/extract"
	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/langid"
)

// Phraser renders an intent for a session.
type Phraser interface {
	Phrase(ctx context.Context, s *interview.Session, ri interview.ResponseIntent) (string, error)
}

const (
	tmplGreeting  = "greeting"
	tmplField     = "field"
	tmplQuestion  = "question"
	tmplAck       = "ack"
	tmplEnded     = "ended"
	tmplCompleted = "completed"
	tmplExited    = "exited"
)

var fieldPrompts = map[extract.Field]string{
	extract.FieldName:       "Could you please tell me your full name?",
	extract.FieldEmail:      "What's the best email address to reach you at?",
	extract.FieldPhone:      "What's your phone number? Please include the country code if you're outside the US.",
	extract.FieldExperience: "How many years of professional experience do you have?",
	extract.FieldPosition:   "Which position are you applying for?",
	extract.FieldLocation:   "Where are you currently located?",
	extract.FieldTechStack:  "Please list the technologies you're proficient in: programming languages, frameworks, databases and tools.",
}

const templateText = `
{{define "greeting"}}{{.Greeting}} I'll collect a few details about you, then ask some technical questions based on your tech stack. Say hello whenever you're ready to begin, and type "bye" at any time to end the interview.{{end}}
{{define "field"}}{{if .Notice}}Sorry, that doesn't look like a valid {{.FieldLabel}}: {{.Notice}}. {{else if .Retry}}I didn't quite catch that. {{else if .JustNamed}}Nice to meet you, {{.FirstName}}! {{end}}{{.FieldPrompt}}{{end}}
{{define "question"}}{{if eq .Index 0}}Thanks{{if .FirstName}}, {{.FirstName}}{{end}}! Now a few technical questions about {{.Stack}}. {{end}}Question {{.Number}} of {{.Total}}: {{.Question}}{{end}}
{{define "ack"}}Thanks, I've noted that.{{end}}
{{define "ended"}}This interview has already ended. Thank you for your time!{{end}}
{{define "completed"}}Thank you for completing the interview{{if .FirstName}}, {{.FirstName}}{{end}}! Our team will review your responses, and qualified candidates are contacted for a follow-up interview with a recruiter within 5-7 business days.{{end}}
{{define "exited"}}Thanks for your time{{if .FirstName}}, {{.FirstName}}{{end}}. The interview has ended and we've saved what you shared so far. Feel free to come back whenever you're ready.{{end}}
`

var templates = template.Must(template.New("phrasing").Parse(templateText))

// view is the data every template sees.
type view struct {
	Greeting    string
	FieldPrompt string
	FieldLabel  string
	Notice      string
	Retry       bool
	JustNamed   bool
	FirstName   string
	Stack       string
	Index       int
	Number      int
	Total       int
	Question    string
}

// Templates phrases intents from fixed English templates. Greetings are
// localized for every language that has one.
type Templates struct{}

// NewTemplates returns the template phraser.
func NewTemplates() *Templates { return &Templates{} }

// Phrase renders ri.
func (Templates) Phrase(_ context.Context, s *interview.Session, ri interview.ResponseIntent) (string, error) {
	name, v := selectTemplate(s, ri)
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, v); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func selectTemplate(s *interview.Session, ri interview.ResponseIntent) (string, view) {
	v := view{
		FirstName: firstName(s.Candidate.Name),
		Stack:     strings.Join(s.Candidate.TechStack, ", "),
		Index:     ri.Index,
		Number:    ri.Index + 1,
		Total:     ri.Summary.Questions,
		Question:  ri.Payload,
	}
	if v.Stack == "" {
		v.Stack = "your experience"
	}

	switch ri.Kind {
	case interview.KindPromptField:
		v.FieldPrompt = fieldPrompts[ri.Field]
		v.FieldLabel = ri.Field.Label()
		v.Notice = ri.Payload
		v.Retry = s.Fallbacks > 0 && s.FallbackField == ri.Field
		v.JustNamed = ri.Field == extract.FieldEmail && justCollected(s, extract.FieldName)
		return tmplField, v
	case interview.KindAskQuestion:
		return tmplQuestion, v
	case interview.KindConclude:
		if ri.Summary.Completed {
			return tmplCompleted, v
		}
		return tmplExited, v
	}

	switch {
	case ri.Summary.Ended:
		return tmplEnded, v
	case ri.Summary.Stage == interview.StageGreeting:
		v.Greeting = langid.Greeting(s.Language)
		return tmplGreeting, v
	}
	return tmplAck, v
}

// justCollected reports whether f was filled by the latest turn.
func justCollected(s *interview.Session, f extract.Field) bool {
	if len(s.Turns) == 0 || !s.Candidate.Has(f) {
		return false
	}
	last := s.Turns[len(s.Turns)-1]
	return last.Action == "extracted"
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}
