package bubble_tea

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestSelector_MoveAndSelect(t *testing.T) {
	var m tea.Model = NewSelector("Select mode", []Option{
		{Value: "hub", Description: "relay"},
		{Value: "spoke", Description: "tunnel"},
		{Value: "version"},
	})
	m, _ = m.Update(key("down"))
	m, cmd := m.Update(key("enter"))

	if cmd == nil {
		t.Fatal("expected quit command after enter")
	}
	if got := m.(*Selector).Choice(); got != "spoke" {
		t.Fatalf("choice = %q, want spoke", got)
	}
	if !strings.Contains(m.View(), "tunnel") {
		t.Fatalf("view does not list descriptions: %q", m.View())
	}
}

func TestSelector_CursorWraps(t *testing.T) {
	s := NewSelector("Select mode", []Option{{Value: "hub"}, {Value: "spoke"}, {Value: "version"}})
	_, _ = s.Update(key("up"))
	_, _ = s.Update(key("enter"))
	if got := s.Choice(); got != "version" {
		t.Fatalf("choice = %q, want version", got)
	}

	s = NewSelector("Select mode", []Option{{Value: "hub"}, {Value: "spoke"}})
	_, _ = s.Update(key("down"))
	_, _ = s.Update(key("down"))
	_, _ = s.Update(key("enter"))
	if got := s.Choice(); got != "hub" {
		t.Fatalf("choice = %q, want hub", got)
	}
}

func TestSelector_QuitWithoutChoice(t *testing.T) {
	s := NewSelector("Select mode", []Option{{Value: "hub"}})
	_, cmd := s.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if got := s.Choice(); got != "" {
		t.Fatalf("choice = %q, want empty", got)
	}
}

func TestSelector_EmptyQuitsOnAnyKey(t *testing.T) {
	s := NewSelector("Nothing", nil)
	if _, cmd := s.Update(key("enter")); cmd == nil {
		t.Fatal("expected quit command")
	}
	if got := s.Choice(); got != "" {
		t.Fatalf("choice = %q, want empty", got)
	}
}

func TestTextInput_SubmitAndCancel(t *testing.T) {
	ti := NewTextInput("Hub address", "203.0.113.1:4789")
	for _, r := range "10.1.1.1:4789 " {
		_, _ = ti.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if _, cmd := ti.Update(key("enter")); cmd == nil {
		t.Fatal("expected quit command after enter")
	}
	if got := ti.Value(); got != "10.1.1.1:4789" {
		t.Fatalf("value = %q", got)
	}

	cancelled := NewTextInput("Hub address", "")
	_, _ = cancelled.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	_, _ = cancelled.Update(key("esc"))
	if got := cancelled.Value(); got != "" {
		t.Fatalf("cancelled value = %q, want empty", got)
	}
}
