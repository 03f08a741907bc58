// Package tui hosts arcade loops in a terminal through Bubble Tea: the game
// model, the game picker, the scoreboard and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one fixed simulation step of the model with the same ID.
// Ticks still in flight for a model that was left are dropped.
type TickMsg struct {
	ID   uint64
	Time time.Time
}

var tickIDs atomic.Uint64

func nextTickID() uint64 {
	return tickIDs.Add(1)
}

// tickCmd schedules the next tick at the given rate.
func tickCmd(id uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
