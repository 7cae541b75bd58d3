package portalui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the terminal portal.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	SwitchRole    key.Binding
	ToggleTheme   key.Binding
	ToggleSidebar key.Binding
	Logout        key.Binding

	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	SwitchRole: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "switch role"),
	),
	ToggleTheme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	ToggleSidebar: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "sidebar"),
	),
	Logout: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "log out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k KeyMap) loginHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

func (k KeyMap) portalHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.SwitchRole, k.ToggleTheme, k.ToggleSidebar, k.Logout, k.Quit}
}
