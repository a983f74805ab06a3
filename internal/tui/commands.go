package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// WaitForTimerCmd blocks until the next scheduler token fires. The model
// re-issues it after every TimerFiredMsg.
func WaitForTimerCmd(timers TimerSource) tea.Cmd {
	if timers == nil {
		return nil
	}
	return func() tea.Msg {
		tok, ok := <-timers.Fired()
		if !ok {
			return TimersClosedMsg{}
		}
		return TimerFiredMsg{Token: tok}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
