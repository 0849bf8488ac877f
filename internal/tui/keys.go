package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings that work on every tab.
type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Jump     key.Binding
	Quit     key.Binding
	Help     key.Binding
	Reload   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "go to tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// tabForKey maps a jump key to its tab.
func tabForKey(k string) (SessionState, bool) {
	if len(k) != 1 || k[0] < '1' || int(k[0]-'1') >= len(tabTitles) {
		return 0, false
	}
	return SessionState(k[0] - '1'), true
}
