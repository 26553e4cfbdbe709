package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a global command triggered by a key.
type Action int

const (
	ActionNone Action = iota
	ActionCycleFocus
	ActionCloseFocused
	ActionCycleTheme
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionCycleFocus:
		return "cycle-focus"
	case ActionCloseFocused:
		return "close-focused"
	case ActionCycleTheme:
		return "cycle-theme"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// GlobalKeys are checked before any pane or the prompt sees a key.
type GlobalKeys struct {
	CycleFocus   key.Binding
	CloseFocused key.Binding
	CycleTheme   key.Binding
	Quit         key.Binding
}

// DefaultGlobalKeys returns the stock bindings.
func DefaultGlobalKeys() GlobalKeys {
	return GlobalKeys{
		CycleFocus: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "next pane"),
		),
		CloseFocused: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "close pane"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Action returns the global action bound to msg, or ActionNone.
func (g GlobalKeys) Action(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, g.Quit):
		return ActionQuit
	case key.Matches(msg, g.CycleFocus):
		return ActionCycleFocus
	case key.Matches(msg, g.CloseFocused):
		return ActionCloseFocused
	case key.Matches(msg, g.CycleTheme):
		return ActionCycleTheme
	}
	return ActionNone
}

var _ help.KeyMap = GlobalKeys{}

// ShortHelp implements help.KeyMap.
func (g GlobalKeys) ShortHelp() []key.Binding {
	return []key.Binding{g.CycleFocus, g.CloseFocused, g.CycleTheme, g.Quit}
}

// FullHelp implements help.KeyMap.
func (g GlobalKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{g.ShortHelp()}
}
