package components

import (
	"strings"

	"github.com/talentscout/screener/internal/ui/theme"
)

// Speaker identifies who wrote a transcript entry.
type Speaker int

const (
	SpeakerAssistant Speaker = iota
	SpeakerCandidate
	SpeakerNotice
)

// Entry is one message in the transcript.
type Entry struct {
	Speaker Speaker
	Text    string
}

// Transcript renders the chat history, newest at the bottom.
type Transcript struct {
	entries []Entry
}

// Add appends an entry. Blank text is ignored.
func (t *Transcript) Add(s Speaker, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	t.entries = append(t.entries, Entry{Speaker: s, Text: text})
}

// Entries returns a copy of the entries.
func (t Transcript) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of entries.
func (t Transcript) Len() int { return len(t.entries) }

// View renders the entries wrapped to width and keeps only the last height
// lines.
func (t Transcript) View(width, height int) string {
	textWidth := max(width-4, 10)

	var lines []string
	for _, e := range t.entries {
		lines = append(lines, strings.Split(renderEntry(e, textWidth), "\n")...)
		lines = append(lines, "")
	}
	if height > 0 && len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}

func renderEntry(e Entry, width int) string {
	switch e.Speaker {
	case SpeakerCandidate:
		return theme.CandidateName.Render("  You") + "\n" +
			theme.CandidateText.Width(width).PaddingLeft(2).Render(e.Text)
	case SpeakerNotice:
		return theme.Warning.Width(width).PaddingLeft(2).Render(e.Text)
	default:
		return theme.AssistantName.Render("  TalentScout") + "\n" +
			theme.AssistantText.Width(width).PaddingLeft(2).Render(e.Text)
	}
}
