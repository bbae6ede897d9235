package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Left    key.Binding
	Right   key.Binding
	Swap    key.Binding
	Convert key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Right, k.Swap, k.Convert, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Left, k.Right}, {k.Swap, k.Convert, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev currency")),
		Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next currency")),
		Swap:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "swap")),
		Convert: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "convert")),
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}
