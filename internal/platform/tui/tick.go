// Package tui runs the arcade on a terminal with Bubble Tea: the game loop,
// key and mat input, sound cues, the menu, the scoreboard and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultTickRate applies when a config leaves the rate unset.
const defaultTickRate = 60

// TickMsg asks the model to step the game by one frame.
type TickMsg time.Time

// frameInterval is the wall time between two ticks at tickRate.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next frame.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
