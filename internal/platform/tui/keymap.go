package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bc-engines/internal/core"
)

// KeyMap defines the key bindings of the engine preview.
type KeyMap struct {
	Rotate     key.Binding
	HeatUp     key.Binding
	HeatDown   key.Binding
	Fuel       key.Binding
	Signal     key.Binding
	Pause      key.Binding
	Reset      key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default preview bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Rotate: key.NewBinding(
			key.WithKeys("r", "tab"),
			key.WithHelp("r", "rotate"),
		),
		HeatUp: key.NewBinding(
			key.WithKeys("+", "=", "up", "k"),
			key.WithHelp("+/up", "heat up"),
		),
		HeatDown: key.NewBinding(
			key.WithKeys("-", "down", "j"),
			key.WithHelp("-/down", "heat down"),
		),
		Fuel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "add fuel"),
		),
		Signal: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s", "signal"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rotate, k.HeatUp, k.HeatDown, k.Fuel, k.Signal, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Rotate, k.HeatUp, k.HeatDown, k.Fuel, k.Signal},
		{k.Pause, k.Reset, k.Screenshot, k.Back, k.Quit},
	}
}

// Action translates a key message to a harness action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Rotate):
		return core.ActionRotate
	case key.Matches(msg, k.HeatUp):
		return core.ActionHeatUp
	case key.Matches(msg, k.HeatDown):
		return core.ActionHeatDown
	case key.Matches(msg, k.Fuel):
		return core.ActionAddFuel
	case key.Matches(msg, k.Signal):
		return core.ActionToggleSignal
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Reset):
		return core.ActionReset
	}
	return core.ActionNone
}

// MenuKeyMap defines the key bindings of the kind picker.
type MenuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	History key.Binding
	Quit    key.Binding
}

// DefaultMenuKeyMap returns the default picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "preview"),
		),
		History: key.NewBinding(
			key.WithKeys("h", "tab"),
			key.WithHelp("h", "history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.History, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
