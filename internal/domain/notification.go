package domain

import "time"

// NotificationLevel hints how a notification should be styled.
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	LevelSuccess
	LevelWarning
)

// Action is a zero-argument callback the renderer exposes as a control
// (e.g. "undo pending unenrollment").
type Action struct {
	Label string
	Run   func()
}

// Notification is a request for user-visible feedback. The engine never
// waits on it being displayed.
type Notification struct {
	Title    string
	Message  string
	Duration time.Duration
	Level    NotificationLevel
	Action   *Action

	// Broadcast marks notifications whose event is also published as a
	// LessonCompleted signal, so a missed one can be replayed from the inbox.
	Broadcast bool
}

// NotificationSink receives notification requests.
type NotificationSink interface {
	Notify(n Notification)
}

// NoOpSink discards notifications (for testing/batch operations).
type NoOpSink struct{}

func (NoOpSink) Notify(Notification) {}

// LessonCompleted is broadcast when the progress simulator records lessons.
type LessonCompleted struct {
	CourseID    CourseID
	Title       string
	Description string
}

// Notice is a persisted lesson-completed record that can be replayed
// after the UI was away when the broadcast happened.
type Notice struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Read        bool   `json:"read"`
	Timestamp   int64  `json:"timestamp"`
}
