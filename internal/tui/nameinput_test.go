package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(keyMsg(string(r)))
	}
	return m
}

func isQuitCmd(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNameInput_SubmitReturnsTypedValue(t *testing.T) {
	var m tea.Model = NewNameInput("Enter your new app name:", nil)
	m = typeText(t, m, "acme")

	m, cmd := m.Update(keyMsg("enter"))
	if !isQuitCmd(cmd) {
		t.Fatal("Expected enter to quit the program")
	}

	got := m.(NameInput)
	if !got.Submitted() {
		t.Error("Expected Submitted() = true")
	}
	if got.Cancelled() {
		t.Error("Expected Cancelled() = false")
	}
	if got.Value() != "acme" {
		t.Errorf("Value() = %q, want %q", got.Value(), "acme")
	}
}

func TestNameInput_CancelKeys(t *testing.T) {
	for _, k := range []string{"esc", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			var m tea.Model = NewNameInput("name?", nil)
			m, cmd := m.Update(keyMsg(k))
			if !isQuitCmd(cmd) {
				t.Fatalf("Expected %s to quit the program", k)
			}
			if !m.(NameInput).Cancelled() {
				t.Errorf("Expected %s to cancel the prompt", k)
			}
		})
	}
}

func TestNameInput_ValidatorDrivesHint(t *testing.T) {
	errUpper := errors.New("Package name must be lowercase.\nTry: acme")
	validate := func(s string) error {
		if strings.ToLower(s) != s {
			return errUpper
		}
		return nil
	}

	var m tea.Model = NewNameInput("name?", validate)
	m = typeText(t, m, "Acme")

	got := m.(NameInput)
	if !errors.Is(got.Hint(), errUpper) {
		t.Fatalf("Hint() = %v, want %v", got.Hint(), errUpper)
	}
	view := got.View()
	if !strings.Contains(view, "must be lowercase") {
		t.Errorf("Expected hint in view, got:\n%s", view)
	}
	if strings.Contains(view, "Try: acme") {
		t.Errorf("Expected only the first line of the hint, got:\n%s", view)
	}

	// Enter still submits an invalid value; rejection happens downstream.
	m, cmd := m.Update(keyMsg("enter"))
	if !isQuitCmd(cmd) || !m.(NameInput).Submitted() {
		t.Error("Expected enter to submit even when the hint is set")
	}
}

func TestNameInput_EmptyValueHasNoHint(t *testing.T) {
	called := false
	m := NewNameInput("name?", func(string) error {
		called = true
		return errors.New("never")
	})
	updated, _ := m.Update(keyMsg(" "))
	if called {
		t.Error("Validator should not run on blank input")
	}
	if updated.(NameInput).Hint() != nil {
		t.Error("Expected no hint for blank input")
	}
}

func TestKeyMap_HelpText(t *testing.T) {
	help := DefaultKeyMap().HelpText()
	if !strings.Contains(help, "enter") || !strings.Contains(help, "cancel") {
		t.Errorf("HelpText() = %q, want enter and cancel hints", help)
	}
}
