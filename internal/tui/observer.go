package tui

import (
	"time"

	"github.com/mmcdole/syllabus/internal/domain"
)

const defaultToastDuration = 3 * time.Second

// Toast is a notification on screen until it expires.
type Toast struct {
	domain.Notification
	Expires time.Time
}

// Toasts adapts domain.NotificationSink to an on-screen stack. It is
// owned by the event loop; the engine calls Notify from inside Update.
type Toasts struct {
	limit int
	now   func() time.Time
	items []Toast // oldest first
	away  bool    // broadcast notifications go to the inbox instead
}

// NewToasts creates a stack showing at most limit toasts.
func NewToasts(limit int) *Toasts {
	if limit <= 0 {
		limit = 3
	}
	return &Toasts{limit: limit, now: time.Now}
}

// Notify pushes n. Beyond the limit the oldest toasts without an action
// are evicted; toasts carrying an action stay until they expire, even if
// that leaves the stack over the limit. The new toast is always shown.
func (t *Toasts) Notify(n domain.Notification) {
	if t.away && n.Broadcast {
		return
	}
	d := n.Duration
	if d <= 0 {
		d = defaultToastDuration
	}
	t.items = append(t.items, Toast{Notification: n, Expires: t.now().Add(d)})
	t.evict()
}

// SetAway suppresses broadcast notifications while the terminal is
// unfocused; the inbox replays them on return.
func (t *Toasts) SetAway(away bool) {
	t.away = away
}

func (t *Toasts) evict() {
	over := len(t.items) - t.limit
	if over <= 0 {
		return
	}
	newest := len(t.items) - 1
	kept := t.items[:0]
	for i, item := range t.items {
		if over > 0 && item.Action == nil && i != newest {
			over--
			continue
		}
		kept = append(kept, item)
	}
	t.items = kept
}

// Expire drops toasts past their deadline and reports whether any went.
func (t *Toasts) Expire() bool {
	now := t.now()
	kept := t.items[:0]
	for _, item := range t.items {
		if now.Before(item.Expires) {
			kept = append(kept, item)
		}
	}
	changed := len(kept) != len(t.items)
	t.items = kept
	return changed
}

// Items returns the visible toasts, newest first.
func (t *Toasts) Items() []Toast {
	out := make([]Toast, len(t.items))
	for i, item := range t.items {
		out[len(t.items)-1-i] = item
	}
	return out
}

// Undo runs the action of the newest toast that has one. The toast is
// removed before its action runs, so notifications the action emits land
// on a consistent stack.
func (t *Toasts) Undo() bool {
	for i := len(t.items) - 1; i >= 0; i-- {
		action := t.items[i].Action
		if action == nil || action.Run == nil {
			continue
		}
		t.items = append(t.items[:i], t.items[i+1:]...)
		action.Run()
		return true
	}
	return false
}
