package record

import (
	"fmt"

	"github.com/talentscout/screener/internal/sentiment"
)

var emotionNotes = map[string]string{
	sentiment.Positive:  "Candidate appears enthusiastic and positive about the opportunity.",
	sentiment.Negative:  "Candidate may be frustrated or hesitant. Consider a more supportive approach or clarify any confusing questions.",
	sentiment.Anxious:   "Candidate appears nervous or anxious. Consider a more reassuring tone and provide clear expectations.",
	sentiment.Confident: "Candidate comes across as confident and self-assured. Consider probing deeper on technical claims.",
}

// FeedbackNotes derives recruiter-facing notes from the overall state, its
// share of the total score and the detected shifts.
func FeedbackNotes(state string, share float64, shifts []Shift) []string {
	notes := []string{}

	var significant []Shift
	for _, s := range shifts {
		if s.From != sentiment.Neutral && s.To != sentiment.Neutral {
			significant = append(significant, s)
		}
	}
	if len(significant) > 0 {
		notes = append(notes, fmt.Sprintf("Candidate's emotional state shifted from %s to %s during the interview.",
			significant[0].From, significant[len(significant)-1].To))
	}

	if note, ok := emotionNotes[state]; ok && share >= 0.5 {
		notes = append(notes, note)
	}

	switch {
	case share > 0.8:
		notes = append(notes, "High confidence in emotional assessment.")
	case share > 0 && share < 0.6:
		notes = append(notes, "Low confidence in emotional assessment - consider manual review.")
	}
	return notes
}
