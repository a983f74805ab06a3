// Package enrollment coordinates the enrolled and wishlist collections.
//
// All mutations go through Engine: user calls, deferred-removal commits and
// progress-simulator fires. Engine is not safe for concurrent use; every call
// and every scheduled callback must run on the application's event loop.
package enrollment

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/syllabus/internal/domain"
	"github.com/mmcdole/syllabus/internal/scheduler"
)

// Scheduler arms delayed callbacks (consumer-defined interface).
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) scheduler.Token
	Cancel(tok scheduler.Token) bool
}

// Rand is the random source behind delays, increments and lesson labels.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// SnapshotStore loads and commits the collections.
type SnapshotStore interface {
	Load() domain.Snapshot
	Commit(snap domain.Snapshot) error
}

// Publisher broadcasts lesson-completed signals to whoever listens now.
type Publisher interface {
	Publish(ev domain.LessonCompleted)
}

// Config holds engine timing.
type Config struct {
	UndoWindow          time.Duration // delay of every deferred removal
	ProgressMinDelay    time.Duration
	ProgressMaxDelay    time.Duration
	MaxLessonsPerUpdate int // simulator adds 1..MaxLessonsPerUpdate lessons
}

// DefaultConfig returns the standard timing.
func DefaultConfig() Config {
	return Config{
		UndoWindow:          5 * time.Second,
		ProgressMinDelay:    5 * time.Second,
		ProgressMaxDelay:    20 * time.Second,
		MaxLessonsPerUpdate: 6,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.UndoWindow <= 0 {
		c.UndoWindow = def.UndoWindow
	}
	if c.ProgressMinDelay <= 0 {
		c.ProgressMinDelay = def.ProgressMinDelay
	}
	if c.ProgressMaxDelay < c.ProgressMinDelay {
		c.ProgressMaxDelay = c.ProgressMinDelay
	}
	if c.MaxLessonsPerUpdate <= 0 {
		c.MaxLessonsPerUpdate = def.MaxLessonsPerUpdate
	}
	return c
}

// Deps are the collaborators of an Engine. Signals and Logger are optional.
type Deps struct {
	Store     SnapshotStore
	Scheduler Scheduler
	Rand      Rand
	Sink      domain.NotificationSink
	Signals   Publisher
	Logger    *slog.Logger
}

// Engine owns the session's collections, pending removals and armed
// progress simulations.
type Engine struct {
	store   SnapshotStore
	sched   Scheduler
	rng     Rand
	sink    domain.NotificationSink
	signals Publisher
	logger  *slog.Logger
	cfg     Config

	snap    domain.Snapshot
	pending *registry
	armed   map[domain.CourseID]scheduler.Token // progress simulations
}

// NewEngine restores the persisted snapshot and returns a ready engine.
func NewEngine(deps Deps, cfg Config) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := deps.Sink
	if sink == nil {
		sink = domain.NoOpSink{}
	}

	e := &Engine{
		store:   deps.Store,
		sched:   deps.Scheduler,
		rng:     deps.Rand,
		sink:    sink,
		signals: deps.Signals,
		logger:  logger,
		cfg:     cfg.withDefaults(),
		pending: newRegistry(),
		armed:   make(map[domain.CourseID]scheduler.Token),
	}
	e.snap = e.store.Load()
	e.logger.Info("restored enrollment state",
		"enrolled", len(e.snap.Enrolled),
		"wishlist", len(e.snap.Wishlist))
	return e
}

// === Queries ===

// Snapshot returns a copy of the current collections.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.snap.Clone()
}

func (e *Engine) IsEnrolled(id domain.CourseID) bool {
	return e.snap.EnrolledIndex(id) >= 0
}

func (e *Engine) IsWishlisted(id domain.CourseID) bool {
	return e.snap.WishlistIndex(id) >= 0
}

// Enrollment returns the enrollment for id.
func (e *Engine) Enrollment(id domain.CourseID) (domain.EnrolledCourse, bool) {
	if i := e.snap.EnrolledIndex(id); i >= 0 {
		return e.snap.Enrolled[i], true
	}
	return domain.EnrolledCourse{}, false
}

func (e *Engine) HasPendingUnenroll(id domain.CourseID) bool {
	return e.pending.has(id, KindUnenroll)
}

func (e *Engine) HasPendingWishlistRemoval(id domain.CourseID) bool {
	return e.pending.has(id, KindWishlistRemove)
}

// PendingCount returns the number of deferred removals in flight.
func (e *Engine) PendingCount() int {
	return e.pending.len()
}

// Close cancels every deferred removal and armed simulation. Uncommitted
// removals are abandoned, so the persisted state keeps those courses.
func (e *Engine) Close() {
	for _, tok := range e.pending.drain() {
		e.sched.Cancel(tok)
	}
	for id, tok := range e.armed {
		e.sched.Cancel(tok)
		delete(e.armed, id)
	}
}

// === Commit ===

// commit persists the current collections. On failure memory stays
// authoritative and the returned error wraps domain.ErrSnapshotNotSaved.
func (e *Engine) commit(op string) error {
	if err := e.store.Commit(e.snap); err != nil {
		e.logger.Warn("failed to commit snapshot", "op", op, "error", err)
		return fmt.Errorf("%s: %w: %w", op, domain.ErrSnapshotNotSaved, err)
	}
	e.logger.Debug("committed snapshot", "op", op,
		"enrolled", len(e.snap.Enrolled),
		"wishlist", len(e.snap.Wishlist))
	return nil
}

// commitDeferred is commit for timer callbacks, which have no caller to
// return to; the failure becomes a warning notification.
func (e *Engine) commitDeferred(op string) {
	if err := e.commit(op); err != nil {
		e.notify(notSaved(err))
	}
}

func (e *Engine) notify(n domain.Notification) {
	e.sink.Notify(n)
}
