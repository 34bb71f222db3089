package watch

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/devantler-tech/kwatch/pkg/svc/session"
)

// KeyMap defines the keybindings of the watch view.
// It implements the help.KeyMap interface.
type KeyMap struct {
	Next       key.Binding
	Previous   key.Binding
	Enter      key.Binding
	Back       key.Binding
	Home       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Copy       key.Binding
	ToggleHelp key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "history of object"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "all objects"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "diff top"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll diff up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll diff down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy new version"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Enter, k.Back, k.ToggleHelp, k.Quit}
}

// FullHelp returns keybindings for the expanded footer.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.Enter, k.Back},
		{k.Home, k.PageUp, k.PageDown, k.Copy},
		{k.ToggleHelp, k.Quit},
	}
}

// action maps a key press to a session action.
func (k KeyMap) action(msg tea.KeyMsg) session.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return session.ActionQuit
	case key.Matches(msg, k.Next):
		return session.ActionNext
	case key.Matches(msg, k.Previous):
		return session.ActionPrevious
	case key.Matches(msg, k.Enter):
		return session.ActionEnter
	case key.Matches(msg, k.Back):
		return session.ActionEscape
	case key.Matches(msg, k.Home):
		return session.ActionScrollHome
	case key.Matches(msg, k.PageUp):
		return session.ActionScrollUp
	case key.Matches(msg, k.PageDown):
		return session.ActionScrollDown
	default:
		return session.ActionNone
	}
}
