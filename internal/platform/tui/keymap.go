package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// KeyMap defines every binding used by the tetris screens.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	SoftDrop  key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	HardDrop  key.Binding
	Hold      key.Binding
	Pause     key.Binding
	Start     key.Binding
	Restart   key.Binding
	Scores    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns default key bindings. Bare shift is not reported by
// terminals, so hold also answers to shift+c.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "soft drop"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("up", "x", "k"),
			key.WithHelp("↑/x", "rotate"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "rotate left"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "drop"),
		),
		Hold: key.NewBinding(
			key.WithKeys("c", "C"),
			key.WithHelp("c", "hold"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Scores: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scores"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key pressed during play into a game action.
// Keys without a gameplay meaning map to core.ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.SoftDrop):
		return core.ActionSoftDrop
	case key.Matches(msg, k.RotateCW):
		return core.ActionRotateCW
	case key.Matches(msg, k.RotateCCW):
		return core.ActionRotateCCW
	case key.Matches(msg, k.HardDrop):
		return core.ActionHardDrop
	case key.Matches(msg, k.Hold):
		return core.ActionHold
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Start):
		return core.ActionConfirm
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	}
	return core.ActionNone
}

// playHelp implements help.KeyMap for the in-game help line.
type playHelp struct{ k KeyMap }

func (h playHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Left, h.k.Right, h.k.RotateCW, h.k.HardDrop, h.k.Hold, h.k.Pause, h.k.Quit}
}

func (h playHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Left, h.k.Right, h.k.SoftDrop, h.k.HardDrop},
		{h.k.RotateCW, h.k.RotateCCW, h.k.Hold},
		{h.k.Pause, h.k.Quit},
	}
}

// menuHelp is the help line for the start, game-over and score screens.
type menuHelp struct {
	bindings []key.Binding
}

func (h menuHelp) ShortHelp() []key.Binding  { return h.bindings }
func (h menuHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.bindings} }
