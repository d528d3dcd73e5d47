// Package tui runs the tetris game in a Bubble Tea program: the tick loop,
// key bindings, the start, game-over and score screens, and the Wish SSH
// server that serves the same program remotely.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a command that sends one TickMsg after 1/tickRate seconds.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
