package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quorum/internal/event"
)

// submitForm collects the participant's name and email before a
// submission. Configured identity values prefill the inputs.
type submitForm struct {
	name  textinput.Model
	email textinput.Model
	focus int
}

func newSubmitForm(name, email string) submitForm {
	n := textinput.New()
	n.Placeholder = "Your name"
	n.CharLimit = 60
	n.SetValue(name)
	n.Focus()

	e := textinput.New()
	e.Placeholder = "Email (optional)"
	e.CharLimit = 120
	e.SetValue(email)

	return submitForm{name: n, email: e}
}

// Update routes key input to the focused field. Tab and shift+tab move
// focus; the caller handles enter and esc.
func (f submitForm) Update(msg tea.Msg) (submitForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.name, cmd = f.name.Update(msg)
	} else {
		f.email, cmd = f.email.Update(msg)
	}
	return f, cmd
}

func (f *submitForm) setFocus(i int) {
	if i < 0 {
		i = 1
	}
	if i > 1 {
		i = 0
	}
	f.focus = i
	if i == 0 {
		f.name.Focus()
		f.email.Blur()
	} else {
		f.name.Blur()
		f.email.Focus()
	}
}

// Identity builds the participant identity from the form and config.
func (f submitForm) Identity(userID string) event.ParticipantIdentity {
	return event.ParticipantIdentity{
		UserID:      userID,
		DisplayName: strings.TrimSpace(f.name.Value()),
		Email:       strings.TrimSpace(f.email.Value()),
	}
}
