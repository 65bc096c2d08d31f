package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/ui/components"
	"github.com/talentscout/screener/internal/ui/layout"
	"github.com/talentscout/screener/internal/ui/theme"
)

func (s *ChatScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.confirm {
		return renderQuitConfirm(width)
	}
	if !s.started {
		return layout.CenterLine("\n\n\nConnecting to your interviewer "+spinnerFrames[s.frame], width,
			lipgloss.NewStyle().Foreground(theme.TextDim))
	}

	progress := s.renderProgress(width)
	composer := s.renderComposer(width)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))

	used := lipgloss.Height(progress) + lipgloss.Height(composer) + 2
	body := s.transcript.View(width, max(height-used, 1))

	return progress + "\n" + body + "\n" + divider + "\n" + composer
}

func (s *ChatScreen) renderProgress(width int) string {
	snap := s.intent.Summary
	var bar components.ProgressBar
	switch snap.Stage {
	case interview.StageAskingQuestions, interview.StageAwaitingAnswers,
		interview.StageSentimentSummary, interview.StageConcluded:
		if snap.Questions == 0 {
			return ""
		}
		bar = components.NewProgressBar("  Questions", snap.Answered, snap.Questions, width-4)
	default:
		done, total := profileProgress(snap)
		bar = components.NewProgressBar("  Profile  ", done, total, width-4)
	}
	return bar.View()
}

func (s *ChatScreen) renderComposer(width int) string {
	switch {
	case s.ended:
		return theme.Hint.Render("  The interview has ended. Press Enter to see your summary.")
	case s.waiting:
		return theme.Hint.Render("  TalentScout is typing " + spinnerFrames[s.frame])
	}
	return "  " + s.input.View()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.CenterLine("Leave the interview?", width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true)))
	b.WriteString("\n")
	b.WriteString(layout.CenterLine("Your answers so far are saved and you can resume later.", width, lipgloss.NewStyle().Foreground(theme.TextDim)))
	b.WriteString("\n\n")
	b.WriteString(layout.CenterLine("[Y] Yes, leave for now", width, lipgloss.NewStyle().Foreground(theme.Success)))
	b.WriteString("\n")
	b.WriteString(layout.CenterLine("[N] No, keep going", width, lipgloss.NewStyle().Foreground(theme.Primary)))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return layout.CenterLine(fmt.Sprintf("\n\n\nError: %s\n\nPress any key to quit.", errMsg), width,
		lipgloss.NewStyle().Foreground(theme.Error))
}
