package bubble_tea

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
)

// TextInput asks for a single line of text.
type TextInput struct {
	prompt    string
	input     textinput.Model
	submitted bool
}

func NewTextInput(prompt, placeholder string) *TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 253 + len(":65535")
	ti.Width = 40
	ti.Focus()
	return &TextInput{
		prompt: prompt,
		input:  ti,
	}
}

// Value returns the trimmed input, or "" if the prompt was cancelled.
func (m *TextInput) Value() string {
	if !m.submitted {
		return ""
	}
	return strings.TrimSpace(m.input.Value())
}

func (m *TextInput) Init() tea.Cmd {
	return textinput.Blink
}

func (m *TextInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *TextInput) View() string {
	var b strings.Builder
	b.WriteString(pterm.Bold.Sprint(m.prompt))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n" + pterm.FgGray.Sprint("enter to confirm, esc to cancel") + "\n")
	return b.String()
}
