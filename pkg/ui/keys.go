package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit     key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Apply    key.Binding
	Save     key.Binding
	Delete   key.Binding
	Share    key.Binding
	Refresh  key.Binding
	Interval key.Binding
	Exchange key.Binding
	Coin     key.Binding
	Fiat     key.Binding
	Insight  key.Binding
	Theme    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply/restore"),
		),
		Save: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "save"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Interval: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "interval"),
		),
		Exchange: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "exchange"),
		),
		Coin: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "coin"),
		),
		Fiat: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fiat"),
		),
		Insight: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "insight"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
	}
}

// ShortHelp returns keybindings shown in the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Apply, k.Save, k.Share, k.Refresh, k.Theme, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Up, k.Down, k.Apply},
		{k.Save, k.Delete, k.Share, k.Refresh, k.Interval},
		{k.Exchange, k.Coin, k.Fiat, k.Insight, k.Theme, k.Quit},
	}
}
