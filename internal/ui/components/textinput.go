package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/talentscout/screener/internal/ui/theme"
)

// TextInput wraps bubbles/textinput as the chat composer.
type TextInput struct {
	Model    textinput.Model
	disabled bool
}

// NewTextInput creates a focused composer. limit caps the message length;
// zero means no limit.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Focus()
	if limit > 0 {
		ti.CharLimit = limit
	}
	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Input is ignored while disabled.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.disabled {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the composer.
func (t TextInput) View() string {
	if t.disabled {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ...")
	}
	return t.Model.View()
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Take returns the current value and clears the composer.
func (t *TextInput) Take() string {
	v := t.Value()
	t.Model.Reset()
	return v
}

// SetDisabled blocks input while a reply is pending.
func (t *TextInput) SetDisabled(disabled bool) {
	t.disabled = disabled
}

// Disabled reports whether input is blocked.
func (t TextInput) Disabled() bool {
	return t.disabled
}
