package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/syllabus/internal/domain"
)

// maxNotices caps the persisted history; the oldest notices go first.
const maxNotices = 50

// Inbox persists lesson completions that happen while the UI is away so
// they can be shown when it comes back.
type Inbox struct {
	store  domain.NoticeStore
	logger *slog.Logger
	now    func() time.Time

	mu   sync.Mutex
	away bool
}

// NewInbox creates an inbox backed by store.
func NewInbox(store domain.NoticeStore, logger *slog.Logger) *Inbox {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inbox{store: store, logger: logger, now: time.Now}
}

// Listen records every broadcast completion. The returned func stops it.
func (i *Inbox) Listen(b *Broadcaster) func() {
	return b.Subscribe(i.Record)
}

// SetAway marks whether the UI currently has focus.
func (i *Inbox) SetAway(away bool) {
	i.mu.Lock()
	i.away = away
	i.mu.Unlock()
}

// Away reports whether completions are currently being recorded.
func (i *Inbox) Away() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.away
}

// Record stores ev as an unread notice if the UI is away.
func (i *Inbox) Record(ev domain.LessonCompleted) {
	if !i.Away() {
		return
	}

	notices := append(i.store.Notices(), domain.Notice{
		ID:          uuid.NewString(),
		Title:       ev.Title,
		Description: ev.Description,
		Timestamp:   i.now().UnixMilli(),
	})
	if len(notices) > maxNotices {
		notices = notices[len(notices)-maxNotices:]
	}
	if err := i.store.SaveNotices(notices); err != nil {
		i.logger.Warn("failed to save notice", "error", err)
		return
	}
	i.logger.Debug("recorded notice while away", "courseID", ev.CourseID)
}

// Drain returns the unread notices and marks every notice read.
func (i *Inbox) Drain() []domain.Notice {
	notices := i.store.Notices()

	var unread []domain.Notice
	for idx := range notices {
		if notices[idx].Read {
			continue
		}
		unread = append(unread, notices[idx])
		notices[idx].Read = true
	}
	if len(unread) == 0 {
		return nil
	}

	if err := i.store.SaveNotices(notices); err != nil {
		i.logger.Warn("failed to mark notices read", "error", err)
	}
	return unread
}
