// Package tui provides the Bubble Tea views for lazor boards: the sweep
// viewer, the board picker, the run history table, and SSH serving of them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the viewer by one sweep while playing.
// Ticks from an earlier play generation are dropped.
type TickMsg struct {
	Time time.Time
	gen  int
}

// tickCmd returns a Bubble Tea command that sends tick messages of
// generation gen at the specified rate.
func tickCmd(rate, gen int) tea.Cmd {
	if rate <= 0 {
		rate = 1
	}
	interval := time.Second / time.Duration(rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, gen: gen}
	})
}
