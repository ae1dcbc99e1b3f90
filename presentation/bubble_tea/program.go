package bubble_tea

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Select runs a Selector to completion and returns the picked value.
func Select(title string, options []Option) (string, error) {
	model, err := tea.NewProgram(NewSelector(title, options)).Run()
	if err != nil {
		return "", fmt.Errorf("selector: %w", err)
	}
	return model.(*Selector).Choice(), nil
}

// Ask runs a TextInput to completion and returns the submitted line.
func Ask(prompt, placeholder string) (string, error) {
	model, err := tea.NewProgram(NewTextInput(prompt, placeholder)).Run()
	if err != nil {
		return "", fmt.Errorf("text input: %w", err)
	}
	return model.(*TextInput).Value(), nil
}
