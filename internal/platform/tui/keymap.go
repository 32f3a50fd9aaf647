package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/outbreak/internal/core"
)

// ViewerKeyMap defines the key bindings of the simulation viewer.
// It centralizes bindings so they can be tested and shown in help.
type ViewerKeyMap struct {
	Start      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	NextParam  key.Binding
	PrevParam  key.Binding
	Increase   key.Binding
	Decrease   key.Binding
	Pace       key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// DefaultViewerKeyMap returns default key bindings.
func DefaultViewerKeyMap() ViewerKeyMap {
	return ViewerKeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		NextParam: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab", "next param"),
		),
		PrevParam: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("S-tab", "prev param"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l", "+", "="),
			key.WithHelp("+/→", "raise"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("-/←", "lower"),
		),
		Pace: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "pace"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k ViewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Restart, k.Increase, k.Decrease, k.Pace, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ViewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Restart},
		{k.NextParam, k.PrevParam, k.Increase, k.Decrease},
		{k.Pace, k.Screenshot, k.Back, k.Quit},
	}
}

// Action translates a key message to a viewer action.
func (k ViewerKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Screenshot):
		return core.ActionScreenshot
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.NextParam):
		return core.ActionNextParam
	case key.Matches(msg, k.PrevParam):
		return core.ActionPrevParam
	case key.Matches(msg, k.Increase):
		return core.ActionIncrease
	case key.Matches(msg, k.Decrease):
		return core.ActionDecrease
	case key.Matches(msg, k.Pace):
		return core.ActionPace
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// MenuKeyMap defines the key bindings of the scenario menu.
type MenuKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Outcomes key.Binding
	Quit     key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open"),
		),
		Outcomes: key.NewBinding(
			key.WithKeys("tab", "o"),
			key.WithHelp("tab", "outcomes"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Outcomes, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
