package tui

import "github.com/mmcdole/syllabus/internal/scheduler"

// Message types for the TUI

// TimerFiredMsg carries a scheduler token whose delay elapsed. The model
// dispatches it on the event loop so engine callbacks never race user input.
type TimerFiredMsg struct {
	Token scheduler.Token
}

// TimersClosedMsg signals that the timer source shut down.
type TimersClosedMsg struct{}

// TickMsg drives toast expiry.
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
