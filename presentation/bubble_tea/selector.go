package bubble_tea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
)

// Option is one selectable line. Value is what Choice reports.
type Option struct {
	Value       string
	Description string
}

func (o Option) label() string {
	if o.Description == "" {
		return o.Value
	}
	return o.Value + "  " + pterm.FgGray.Sprint(o.Description)
}

type Selector struct {
	title    string
	options  []Option
	cursor   int
	selected int
}

func NewSelector(title string, options []Option) *Selector {
	return &Selector{
		title:    title,
		options:  options,
		selected: -1,
	}
}

// Choice reports the selected value, or "" when the menu was dismissed.
func (m *Selector) Choice() string {
	if m.selected < 0 {
		return ""
	}
	return m.options[m.selected].Value
}

func (m *Selector) Init() tea.Cmd {
	return nil
}

func (m *Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if len(m.options) == 0 {
		return m, tea.Quit
	}

	switch key.String() {
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.options)
	case "enter", " ":
		m.selected = m.cursor
		return m, tea.Quit
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Selector) View() string {
	var b strings.Builder
	b.WriteString(pterm.Bold.Sprint(m.title))
	b.WriteString("\n\n")
	for i, option := range m.options {
		marker := "  "
		line := option.label()
		if i == m.cursor {
			marker = pterm.FgGreen.Sprint("> ")
			line = pterm.FgGreen.Sprint(option.Value)
			if option.Description != "" {
				line += "  " + pterm.FgGray.Sprint(option.Description)
			}
		}
		b.WriteString(marker)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("\n" + pterm.FgGray.Sprint("arrows to move, enter to pick, q to quit") + "\n")
	return b.String()
}
