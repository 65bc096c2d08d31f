// Package welcome is the splash screen shown before a new interview.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/talentscout/screener/internal/router"
	"github.com/talentscout/screener/internal/screen"
	"github.com/talentscout/screener/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	phase2End    = 1000 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

const badgeArt = `  ╭─────────────╮
  │   ┌─────┐   │
  │   │ ◉ ◉ │   │
  │   │  ‿  │   │
  │   └─────┘   │
  │  HIRING BOT │
  ╰─────────────╯`

// sparkle frames cycle around the badge
var sparkleFrames = []string{"·", "•"}

// agenda is what the candidate is told to expect.
var agenda = []string{
	"A few questions about you and the role you want",
	"3 to 5 technical questions about your tech stack",
	"Type \"bye\" at any time to end the interview",
}

type tickMsg time.Time

// WelcomeScreen shows a short intro before the interview starts.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with the screen produced
// by next on the first key press.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		next: next,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Secondary).Render(badgeArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		for _, i := range []int{0, 3, 6} {
			if i < len(lines) {
				lines[i] = s + "  " + lines[i] + "  " + s
			}
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Your first-round screening interview"))
		sections = append(sections, "")

		bullet := lipgloss.NewStyle().Foreground(theme.Accent).Render("›")
		for _, item := range agenda {
			sections = append(sections, bullet+" "+theme.Body.Render(item))
		}

		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to begin"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
