// Package app hosts the terminal interview UI.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/talentscout/screener/internal/router"
	"github.com/talentscout/screener/internal/screen"
	"github.com/talentscout/screener/internal/screens/chat"
	"github.com/talentscout/screener/internal/screens/welcome"
	"github.com/talentscout/screener/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel. A new interview opens on the welcome
// screen; a resumed one goes straight to the chat.
func newAppModel(conv chat.Conversation, sessionID string) AppModel {
	if sessionID != "" {
		return AppModel{router: router.New(chat.New(conv, sessionID))}
	}
	next := func() screen.Screen { return chat.New(conv, "") }
	return AppModel{router: router.New(welcome.New(next))}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the interview UI. A non-empty sessionID resumes that session.
func Run(conv chat.Conversation, sessionID string) error {
	p := tea.NewProgram(newAppModel(conv, sessionID))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
