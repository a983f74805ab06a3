package notify

import (
	"context"
	"log/slog"

	"github.com/mmcdole/syllabus/internal/domain"
)

// Multi forwards each notification to every sink in order.
type Multi []domain.NotificationSink

func (m Multi) Notify(n domain.Notification) {
	for _, s := range m {
		s.Notify(n)
	}
}

// LogSink records notifications in the structured log.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Notify(n domain.Notification) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelDebug
	if n.Level == domain.LevelWarning {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, "notification", "title", n.Title, "message", n.Message, "undoable", n.Action != nil)
}
