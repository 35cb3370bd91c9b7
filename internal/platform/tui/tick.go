// Package tui runs Dynamite Valley in the terminal with Bubble Tea. It maps
// keys to actions, drives the fixed-rate tick loop and draws the screen
// buffer with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dynamite-valley/internal/core"
)

// TickMsg is sent once per simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
