// Package notify fans out notification requests and lesson-completed
// signals, and keeps the persisted inbox of completions that happened while
// the UI was away.
package notify

import (
	"maps"
	"slices"
	"sync"

	"github.com/mmcdole/syllabus/internal/domain"
)

// Broadcaster delivers lesson-completed signals to the listeners registered
// at publish time. Nothing is queued: a listener added later misses earlier
// signals.
type Broadcaster struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(domain.LessonCompleted)
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(domain.LessonCompleted))}
}

// Subscribe registers fn and returns a func that removes it.
func (b *Broadcaster) Subscribe(fn func(domain.LessonCompleted)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish calls every current listener synchronously, in subscription order.
func (b *Broadcaster) Publish(ev domain.LessonCompleted) {
	b.mu.RLock()
	fns := make([]func(domain.LessonCompleted), 0, len(b.subs))
	for _, id := range slices.Sorted(maps.Keys(b.subs)) {
		fns = append(fns, b.subs[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
