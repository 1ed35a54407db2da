package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the wizard's bindings. Plain letters are left to the text
// inputs, so every command uses a modifier or a navigation key.
type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Enter     key.Binding
	Save      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("pgdown", "ctrl+n"), key.WithHelp("pgdn", "next step")),
		Prev:      key.NewBinding(key.WithKeys("pgup", "ctrl+p"), key.WithHelp("pgup", "previous step")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save and continue")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) shortcuts() []key.Binding {
	return []key.Binding{k.Enter, k.NextField, k.Next, k.Prev, k.Save, k.Quit}
}
