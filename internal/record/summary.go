package record

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const answerPreview = 100

// Summary renders the record as plain text for recruiters.
func Summary(r Record) string {
	var b strings.Builder

	b.WriteString("Candidate Summary:\n")
	fmt.Fprintf(&b, "Name: %s\n", orMissing(r.Name))
	fmt.Fprintf(&b, "Email: %s\n", orMissing(r.Email))
	fmt.Fprintf(&b, "Phone: %s\n", orMissing(r.Phone))
	fmt.Fprintf(&b, "Location: %s\n", orMissing(r.Location))
	if r.YearsExperience != nil {
		fmt.Fprintf(&b, "Experience: %d years\n", *r.YearsExperience)
	} else {
		b.WriteString("Experience: Not provided\n")
	}
	fmt.Fprintf(&b, "Desired Position: %s\n", orMissing(r.Position))

	if len(r.TechStack) > 0 {
		b.WriteString("\nTech Stack:\n")
		for _, tech := range r.TechStack {
			fmt.Fprintf(&b, "- %s\n", tech)
		}
	}

	if len(r.QuestionAnswers) > 0 {
		b.WriteString("\nTechnical Questions:\n")
		for i, qa := range r.QuestionAnswers {
			fmt.Fprintf(&b, "%d. %s\n", i+1, qa.Question)
			if qa.Answer == nil {
				b.WriteString("   (unanswered)\n")
				continue
			}
			fmt.Fprintf(&b, "   A: %s\n", preview(*qa.Answer, answerPreview))
		}
	}

	fmt.Fprintf(&b, "\nEmotional State: %s\n", r.EmotionalState)
	for _, s := range r.EmotionalShifts {
		fmt.Fprintf(&b, "Shift: %s -> %s (turn %d to %d)\n", s.From, s.To, s.FromTurn, s.ToTurn)
	}
	for _, note := range r.FeedbackNotes {
		fmt.Fprintf(&b, "Note: %s\n", note)
	}

	if len(r.UnfilledFields) > 0 {
		fmt.Fprintf(&b, "\nUnfilled: %s\n", strings.Join(r.UnfilledFields, ", "))
	}
	status := "in progress"
	switch {
	case r.Completed:
		status = "completed"
	case r.Ended:
		status = "ended early"
	}
	fmt.Fprintf(&b, "Status: %s\n", status)

	return b.String()
}

func orMissing(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

func preview(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
