package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Next       key.Binding
	Prev       key.Binding
	Jump       key.Binding
	Easing     key.Binding
	NextPreset key.Binding
	PrevPreset key.Binding
	Cancel     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup/b", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn/f", "page down")),
		Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next item")),
		Prev:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous item")),
		Jump:       key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "jump to item n×10")),
		Easing:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "next easing")),
		NextPreset: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next preset")),
		PrevPreset: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous preset")),
		Cancel:     key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc/x", "stop")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Next, k.Prev, k.Jump},
		{k.Easing, k.NextPreset, k.PrevPreset},
		{k.Cancel, k.Help, k.Quit},
	}
}
