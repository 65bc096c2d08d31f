// Package summary shows the candidate record once an interview ends.
package summary

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/talentscout/screener/internal/record"
	"github.com/talentscout/screener/internal/router"
	"github.com/talentscout/screener/internal/screen"
	"github.com/talentscout/screener/internal/ui/layout"
	"github.com/talentscout/screener/internal/ui/theme"
)

// SummaryScreen displays the candidate summary. Long summaries scroll.
type SummaryScreen struct {
	rec    record.Record
	lines  []string
	offset int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for rec.
func New(rec record.Record) *SummaryScreen {
	text := strings.TrimRight(record.Summary(rec), "\n")
	return &SummaryScreen{rec: rec, lines: strings.Split(text, "\n")}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Interview Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back to chat"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "q", "Q", "enter":
		return s, tea.Quit
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < len(s.lines)-1 {
			s.offset++
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	heading := "Thank you! Here is what we recorded."
	if !s.rec.Completed {
		heading = "Interview ended early. Here is what we recorded."
	}
	b.WriteString(layout.CenterLine(heading, width, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)))
	b.WriteString("\n\n")

	visible := max(height-6, 1)
	end := min(s.offset+visible, len(s.lines))
	body := lipgloss.NewStyle().
		Width(min(width-8, 90)).
		Foreground(theme.Text).
		Render(strings.Join(s.lines[s.offset:end], "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))

	if end < len(s.lines) {
		b.WriteString("\n")
		b.WriteString(layout.CenterLine("more below", width, theme.Hint))
	}
	return b.String()
}
