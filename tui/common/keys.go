package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding // g: first post
	Bottom     key.Binding // G: last post
	ScrollUp   key.Binding // u: scroll post content up
	ScrollDown key.Binding // d: scroll post content down
	CycleView  key.Binding // t: list → threads → notifications
	FocusNext  key.Binding // l / tab: next link or mention
	FocusPrev  key.Binding // L / shift+tab
	Activate   key.Binding // enter: open focused link or mention
	Cancel     key.Binding
	Reload     key.Binding
	Help       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("u", "pgup"),
			key.WithHelp("u", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("d", "pgdown"),
			key.WithHelp("d", "scroll down"),
		),
		CycleView: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next view"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("l", "tab"),
			key.WithHelp("l/tab", "next link"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("L", "shift+tab"),
			key.WithHelp("L", "prev link"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear focus"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "all keys"),
		),
	}
}
