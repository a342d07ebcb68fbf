// Package tui provides the Bubble Tea integration for Skyfall. It owns the
// terminal loop: fixed-rate ticks, key-to-action mapping with hold
// synthesis, frame-rate measurement feeding the quality monitor, and
// persistence at the end of a run.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick. It carries the send time so the
// model can measure the achieved frame rate.
type TickMsg time.Time

// tickCmd returns a command that fires tick messages at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
