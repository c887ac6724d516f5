package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI
type KeyMap struct {
	Help      key.Binding
	Quit      key.Binding
	NextIssue key.Binding
	PrevIssue key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
}

// DefaultKeyMap returns the default key map
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextIssue: key.NewBinding(
			key.WithKeys("n", "right", "tab"),
			key.WithHelp("n", "next issue"),
		),
		PrevIssue: key.NewBinding(
			key.WithKeys("p", "left", "shift+tab"),
			key.WithHelp("p", "previous issue"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Keys is a global instance of the keymap for use in the model
var Keys = DefaultKeyMap()

// ShortHelp returns the short help text for the help bubble
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.NextIssue, k.PrevIssue}
}

// FullHelp returns the full help text for the help bubble
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextIssue, k.PrevIssue},
		{k.ScrollUp, k.ScrollDn},
		{k.Help, k.Quit},
	}
}
