package editor

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Execute key.Binding
	Format  key.Binding
	Accept  key.Binding
	Dismiss key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Execute: key.NewBinding(
		key.WithKeys("f5", "ctrl+e"),
		key.WithHelp("f5", "run statement"),
	),
	Format: key.NewBinding(
		key.WithKeys("ctrl+f", "alt+F"),
		key.WithHelp("ctrl+f", "format"),
	),
	Accept: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close suggestions"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous suggestion"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next suggestion"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+q"),
		key.WithHelp("ctrl+q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Execute, k.Format, k.Accept, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Execute, k.Format, k.Help, k.Quit},
		{k.Accept, k.Dismiss, k.Up, k.Down},
	}
}
