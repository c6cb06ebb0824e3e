package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the name prompt.
type KeyMap struct {
	Submit key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}

// HelpText returns a formatted help string for the prompt.
func (k KeyMap) HelpText() string {
	return k.Submit.Help().Key + " " + k.Submit.Help().Desc + " • " +
		k.Quit.Help().Key + " " + k.Quit.Help().Desc
}
