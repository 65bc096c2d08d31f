// Package screen defines the contract between the terminal app and its
// screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/talentscout/screener/internal/ui/layout"
)

// Screen is one full-window view of the terminal app.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a status in the
// header, such as the interview stage.
type StatusProvider interface {
	Status() string
}
