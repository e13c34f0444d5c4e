package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the dashboard key bindings.
type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Prev:    key.NewBinding(key.WithKeys("up", "k", "left", "h"), key.WithHelp("↑/k", "previous day")),
	Next:    key.NewBinding(key.WithKeys("down", "j", "right", "l"), key.WithHelp("↓/j", "next day")),
	Today:   key.NewBinding(key.WithKeys("t", "home"), key.WithHelp("t", "today")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refetch")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today},
		{k.Refresh, k.Help, k.Quit},
	}
}
