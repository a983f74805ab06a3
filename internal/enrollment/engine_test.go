package enrollment

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mmcdole/syllabus/internal/domain"
	"github.com/mmcdole/syllabus/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// === Fakes ===

type memStore struct {
	initial domain.Snapshot
	commits []domain.Snapshot
	fail    error
}

func (s *memStore) Load() domain.Snapshot { return s.initial.Clone() }

func (s *memStore) Commit(snap domain.Snapshot) error {
	if s.fail != nil {
		return s.fail
	}
	s.commits = append(s.commits, snap.Clone())
	return nil
}

func (s *memStore) last() domain.Snapshot {
	if len(s.commits) == 0 {
		return domain.Snapshot{}
	}
	return s.commits[len(s.commits)-1]
}

type recordingSink struct {
	got []domain.Notification
}

func (r *recordingSink) Notify(n domain.Notification) { r.got = append(r.got, n) }

func (r *recordingSink) titles() []string {
	out := make([]string, len(r.got))
	for i, n := range r.got {
		out[i] = n.Title
	}
	return out
}

func (r *recordingSink) count(title string) int {
	c := 0
	for _, n := range r.got {
		if n.Title == title {
			c++
		}
	}
	return c
}

func (r *recordingSink) lastNotification() domain.Notification {
	return r.got[len(r.got)-1]
}

// scriptedRand replays values, each reduced modulo n. An empty script
// always yields 0.
type scriptedRand struct {
	values []int
	i      int
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.i%len(r.values)]
	r.i++
	if v >= n {
		v = n - 1
	}
	return v
}

type recordingPublisher struct {
	events []domain.LessonCompleted
}

func (p *recordingPublisher) Publish(ev domain.LessonCompleted) { p.events = append(p.events, ev) }

type harness struct {
	engine *Engine
	store  *memStore
	sink   *recordingSink
	sched  *scheduler.Manual
	rng    *scriptedRand
	pub    *recordingPublisher
}

func newHarness(t *testing.T, initial domain.Snapshot) *harness {
	t.Helper()
	h := &harness{
		store: &memStore{initial: initial},
		sink:  &recordingSink{},
		sched: scheduler.NewManual(),
		rng:   &scriptedRand{},
		pub:   &recordingPublisher{},
	}
	h.engine = NewEngine(Deps{
		Store:     h.store,
		Scheduler: h.sched,
		Rand:      h.rng,
		Sink:      h.sink,
		Signals:   h.pub,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, DefaultConfig())
	return h
}

func ref(id int, lessons int) domain.CourseRef {
	return domain.CourseRef{
		ID:       domain.CourseID(id),
		Title:    "Course " + string(rune('A'+id%26)),
		Lessons:  lessons,
		Price:    49.99,
		Category: "Web Development",
		Level:    "Beginner",
	}
}

// === Enroll ===

func TestEnroll_CreatesFreshEnrollment(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})

	require.NoError(t, h.engine.Enroll(ref(7, 24)))

	got, ok := h.engine.Enrollment(7)
	require.True(t, ok)
	assert.Equal(t, 0, got.CompletedLessons)
	assert.Equal(t, 0, got.Progress)
	assert.Equal(t, 24, got.TotalLessons)
	assert.Equal(t, domain.NotStartedLesson, got.LastLesson)

	assert.Equal(t, []string{TitleEnrolled}, h.sink.titles())
	require.Len(t, h.store.commits, 1)
	assert.Equal(t, domain.CourseID(7), h.store.last().Enrolled[0].ID)
	assert.Equal(t, 1, h.sched.Pending(), "progress simulation should be armed")
}

func TestEnroll_AlreadyEnrolledIsNotification(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.Enroll(ref(1, 10)))

	require.NoError(t, h.engine.Enroll(ref(1, 10)))

	assert.Len(t, h.engine.Snapshot().Enrolled, 1)
	assert.Equal(t, []string{TitleEnrolled, TitleAlreadyEnrolled}, h.sink.titles())
	assert.Len(t, h.store.commits, 1)
	assert.Equal(t, 1, h.sched.Pending(), "no second simulation")
}

func TestEnroll_SupersedesWishlistSilently(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.AddToWishlist(ref(3, 32)))

	require.NoError(t, h.engine.Enroll(ref(3, 32)))

	snap := h.engine.Snapshot()
	assert.Equal(t, -1, snap.WishlistIndex(3))
	assert.GreaterOrEqual(t, snap.EnrolledIndex(3), 0)
	assert.Equal(t, []string{TitleWishlistAdded, TitleEnrolled}, h.sink.titles())
	assert.Zero(t, h.sink.count(TitleWishlistRemoving))
	assert.Zero(t, h.sink.count(TitleWishlistRemoved))

	last := h.store.last()
	assert.Equal(t, -1, last.WishlistIndex(3))
	assert.GreaterOrEqual(t, last.EnrolledIndex(3), 0)
}

func TestEnroll_CancelsPendingWishlistRemoval(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.AddToWishlist(ref(3, 32)))
	require.NoError(t, h.engine.RemoveFromWishlist(3, true))
	require.True(t, h.engine.HasPendingWishlistRemoval(3))

	require.NoError(t, h.engine.Enroll(ref(3, 32)))
	assert.False(t, h.engine.HasPendingWishlistRemoval(3))
	assert.False(t, h.engine.IsWishlisted(3))

	h.sched.Advance(DefaultConfig().UndoWindow)
	assert.Zero(t, h.sink.count(TitleWishlistRemoved))
}

func TestEnroll_WhilePendingUnenrollCancelsIt(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.Enroll(ref(2, 18)))
	require.NoError(t, h.engine.Unenroll(2))
	commits := len(h.store.commits)

	require.NoError(t, h.engine.Enroll(ref(2, 18)))

	assert.False(t, h.engine.HasPendingUnenroll(2))
	assert.Len(t, h.engine.Snapshot().Enrolled, 1)
	assert.Equal(t, TitleUnenrollCancelled, h.sink.lastNotification().Title)
	assert.Equal(t, 1, h.sink.count(TitleEnrolled), "no duplicate enrollment")
	assert.Len(t, h.store.commits, commits)
	assert.Equal(t, 1, h.sched.Pending(), "simulation is not re-armed")
}

// === Unenroll ===

func TestUnenroll_UndoWithinWindowKeepsEnrollment(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.Enroll(ref(7, 24)))

	require.NoError(t, h.engine.Unenroll(7))
	assert.True(t, h.engine.HasPendingUnenroll(7))
	assert.True(t, h.engine.IsEnrolled(7))
	pending := h.sink.lastNotification()
	assert.Equal(t, TitleUnenrolling, pending.Title)
	require.NotNil(t, pending.Action, "undo affordance expected")

	h.sched.Advance(4 * time.Second)
	assert.True(t, h.engine.CancelUnenrollment(7))
	assert.False(t, h.engine.HasPendingUnenroll(7))
	assert.Equal(t, TitleUnenrollCancelled, h.sink.lastNotification().Title)

	h.sched.Advance(time.Minute)
	assert.True(t, h.engine.IsEnrolled(7))
	assert.Zero(t, h.sink.count(TitleUnenrolled))
	for _, snap := range h.store.commits {
		assert.GreaterOrEqual(t, snap.EnrolledIndex(7), 0, "course 7 never leaves committed state")
	}
}

func TestUnenroll_UndoActionCancels(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.Enroll(ref(7, 24)))
	require.NoError(t, h.engine.Unenroll(7))

	h.sink.lastNotification().Action.Run()

	assert.False(t, h.engine.HasPendingUnenroll(7))
	h.sched.Advance(time.Minute)
	assert.True(t, h.engine.IsEnrolled(7))
}

func TestUnenroll_CommitsWhenWindowElapses(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.Enroll(ref(4, 28)))
	require.NoError(t, h.engine.Unenroll(4))

	h.sched.Advance(DefaultConfig().UndoWindow - time.Millisecond)
	assert.True(t, h.engine.IsEnrolled(4))

	h.sched.Advance(time.Millisecond)
	assert.False(t, h.engine.IsEnrolled(4))
	assert.False(t, h.engine.HasPendingUnenroll(4))
	assert.Equal(t, 1, h.sink.count(TitleUnenrolled))
	assert.Equal(t, -1, h.store.last().EnrolledIndex(4))
}

func TestUnenroll_SecondCallConfirmsNow(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.Enroll(ref(5, 20)))
	require.NoError(t, h.engine.Unenroll(5))

	h.sched.Advance(time.Second)
	require.NoError(t, h.engine.Unenroll(5))

	assert.False(t, h.engine.IsEnrolled(5), "removed at second call")
	assert.False(t, h.engine.HasPendingUnenroll(5))
	assert.Equal(t, 1, h.sink.count(TitleUnenrolled))

	h.sched.Advance(time.Minute)
	assert.Equal(t, 1, h.sink.count(TitleUnenrolled), "first deadline must not fire again")
	assert.Zero(t, h.sink.count(TitleLessonsCompleted))
}

func TestUnenroll_UnknownCourseIsNoop(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})

	require.NoError(t, h.engine.Unenroll(99))
	assert.False(t, h.engine.CancelUnenrollment(99))

	assert.Empty(t, h.sink.got)
	assert.Empty(t, h.store.commits)
	assert.Zero(t, h.sched.Pending())
}

// === Wishlist ===

func TestAddToWishlist_Refusals(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.AddToWishlist(ref(1, 10)))
	require.NoError(t, h.engine.Enroll(ref(2, 10)))

	require.NoError(t, h.engine.AddToWishlist(ref(1, 10)))
	require.NoError(t, h.engine.AddToWishlist(ref(2, 10)))

	snap := h.engine.Snapshot()
	assert.Len(t, snap.Wishlist, 1)
	assert.Equal(t, -1, snap.WishlistIndex(2))
	assert.Equal(t, []string{TitleWishlistAdded, TitleEnrolled, TitleAlreadyWishlisted, TitleAlreadyEnrolled}, h.sink.titles())
}

func TestAddToWishlist_CancelsPendingRemoval(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.AddToWishlist(ref(6, 26)))
	require.NoError(t, h.engine.RemoveFromWishlist(6, true))

	require.NoError(t, h.engine.AddToWishlist(ref(6, 26)))

	assert.False(t, h.engine.HasPendingWishlistRemoval(6))
	assert.Equal(t, TitleWishlistRemoveCancelled, h.sink.lastNotification().Title)
	h.sched.Advance(time.Minute)
	assert.True(t, h.engine.IsWishlisted(6))
	assert.Len(t, h.engine.Snapshot().Wishlist, 1)
}

func TestRemoveFromWishlist(t *testing.T) {
	window := DefaultConfig().UndoWindow

	t.Run("immediate", func(t *testing.T) {
		h := newHarness(t, domain.Snapshot{})
		require.NoError(t, h.engine.AddToWishlist(ref(1, 10)))

		require.NoError(t, h.engine.RemoveFromWishlist(1, false))
		assert.False(t, h.engine.IsWishlisted(1))
		assert.Equal(t, TitleWishlistRemoved, h.sink.lastNotification().Title)
		assert.Zero(t, h.sched.Pending())
	})

	t.Run("deferred commits after window", func(t *testing.T) {
		h := newHarness(t, domain.Snapshot{})
		require.NoError(t, h.engine.AddToWishlist(ref(1, 10)))

		require.NoError(t, h.engine.RemoveFromWishlist(1, true))
		assert.True(t, h.engine.IsWishlisted(1))
		pending := h.sink.lastNotification()
		assert.Equal(t, TitleWishlistRemoving, pending.Title)
		assert.NotNil(t, pending.Action)

		h.sched.Advance(window)
		assert.False(t, h.engine.IsWishlisted(1))
		assert.Equal(t, 1, h.sink.count(TitleWishlistRemoved))
	})

	t.Run("second call confirms now", func(t *testing.T) {
		h := newHarness(t, domain.Snapshot{})
		require.NoError(t, h.engine.AddToWishlist(ref(1, 10)))
		require.NoError(t, h.engine.RemoveFromWishlist(1, true))

		require.NoError(t, h.engine.RemoveFromWishlist(1, true))
		assert.False(t, h.engine.IsWishlisted(1))
		assert.False(t, h.engine.HasPendingWishlistRemoval(1))

		h.sched.Advance(window)
		assert.Equal(t, 1, h.sink.count(TitleWishlistRemoved))
	})

	t.Run("cancel keeps entry", func(t *testing.T) {
		h := newHarness(t, domain.Snapshot{})
		require.NoError(t, h.engine.AddToWishlist(ref(1, 10)))
		require.NoError(t, h.engine.RemoveFromWishlist(1, true))

		assert.True(t, h.engine.CancelWishlistRemoval(1))
		assert.False(t, h.engine.CancelWishlistRemoval(1))
		h.sched.Advance(window)
		assert.True(t, h.engine.IsWishlisted(1))
		assert.Zero(t, h.sink.count(TitleWishlistRemoved))
	})

	t.Run("unknown course is noop", func(t *testing.T) {
		h := newHarness(t, domain.Snapshot{})
		require.NoError(t, h.engine.RemoveFromWishlist(42, true))
		assert.Empty(t, h.sink.got)
		assert.Zero(t, h.sched.Pending())
	})
}

func TestRemoveFromWishlist_SilentWhenEnrolled(t *testing.T) {
	// A persisted snapshot from an older build may hold the course twice.
	h := newHarness(t, domain.Snapshot{
		Enrolled: []domain.EnrolledCourse{domain.NewEnrolledCourse(ref(8, 22))},
		Wishlist: []domain.WishlistCourse{domain.NewWishlistCourse(ref(8, 22))},
	})

	require.NoError(t, h.engine.RemoveFromWishlist(8, false))
	assert.False(t, h.engine.IsWishlisted(8))
	assert.Zero(t, h.sink.count(TitleWishlistRemoved))
}

// === Progress simulation ===

func TestSimulator_RecordsLessonsOnce(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	// delay offset, increment index, label index
	h.rng.values = []int{0, 2, 7}
	require.NoError(t, h.engine.Enroll(ref(7, 24)))

	h.sched.Advance(4 * time.Second)
	got, _ := h.engine.Enrollment(7)
	assert.Zero(t, got.CompletedLessons)

	h.sched.Advance(time.Second)
	got, _ = h.engine.Enrollment(7)
	assert.Equal(t, 3, got.CompletedLessons)
	assert.Equal(t, 13, got.Progress) // round(3/24*100) = 12.5 -> 13
	assert.Equal(t, LessonLabels[7], got.LastLesson)

	n := h.sink.lastNotification()
	assert.Equal(t, TitleLessonsCompleted, n.Title)
	assert.Contains(t, n.Message, "3 lessons")
	assert.Contains(t, n.Message, got.Title)
	require.Len(t, h.pub.events, 1)
	assert.Equal(t, domain.CourseID(7), h.pub.events[0].CourseID)
	assert.Equal(t, 3, h.store.last().Enrolled[0].CompletedLessons)

	h.sched.Advance(time.Hour)
	assert.Equal(t, 1, h.sink.count(TitleLessonsCompleted), "single shot")
	assert.Zero(t, h.sched.Pending())
}

func TestSimulator_DelayWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	for _, v := range []int{0, 7_500, 1 << 30} {
		h := newHarness(t, domain.Snapshot{})
		h.rng.values = []int{v}
		require.NoError(t, h.engine.Enroll(ref(1, 10)))

		deadlines := h.sched.Deadlines()
		require.Len(t, deadlines, 1)
		assert.GreaterOrEqual(t, deadlines[0], cfg.ProgressMinDelay)
		assert.LessOrEqual(t, deadlines[0], cfg.ProgressMaxDelay)
	}
}

func TestSimulator_ClampsToTotal(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	h.rng.values = []int{0, 5, 0} // +6 lessons on a 2-lesson course
	require.NoError(t, h.engine.Enroll(ref(1, 2)))

	h.sched.Advance(DefaultConfig().ProgressMaxDelay)

	got, _ := h.engine.Enrollment(1)
	assert.Equal(t, 2, got.CompletedLessons)
	assert.Equal(t, 100, got.Progress)
	assert.Contains(t, h.sink.lastNotification().Message, "2 lessons")
}

func TestSimulator_SkipsCompletedCourse(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.Enroll(ref(1, 0)))

	h.sched.Advance(DefaultConfig().ProgressMaxDelay)

	assert.Zero(t, h.sink.count(TitleLessonsCompleted))
	assert.Len(t, h.store.commits, 1)
}

func TestSimulator_HarmlessAfterUnenroll(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.Enroll(ref(1, 24)))
	require.NoError(t, h.engine.Unenroll(1))
	require.NoError(t, h.engine.Unenroll(1))
	commits := len(h.store.commits)

	h.sched.Advance(DefaultConfig().ProgressMaxDelay)

	assert.Zero(t, h.sink.count(TitleLessonsCompleted))
	assert.Empty(t, h.pub.events)
	assert.Len(t, h.store.commits, commits)
}

func TestSimulator_ReEnrollGetsOwnSimulation(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	h.rng.values = []int{0} // every delay is 5s, every increment 1
	require.NoError(t, h.engine.Enroll(ref(1, 24)))
	h.sched.Advance(2 * time.Second)
	require.NoError(t, h.engine.Unenroll(1))
	require.NoError(t, h.engine.Unenroll(1))
	require.NoError(t, h.engine.Enroll(ref(1, 24)))

	// The first simulation would have fired at t=5s.
	h.sched.Advance(4 * time.Second)
	assert.Zero(t, h.sink.count(TitleLessonsCompleted))

	h.sched.Advance(time.Second)
	assert.Equal(t, 1, h.sink.count(TitleLessonsCompleted))
}

// === Persistence ===

func TestNewEngine_RestoresSnapshot(t *testing.T) {
	course := domain.NewEnrolledCourse(ref(1, 10))
	course.CompleteLessons(4, "Best Practices")
	h := newHarness(t, domain.Snapshot{
		Enrolled: []domain.EnrolledCourse{course},
		Wishlist: []domain.WishlistCourse{domain.NewWishlistCourse(ref(2, 12))},
	})

	assert.True(t, h.engine.IsEnrolled(1))
	assert.True(t, h.engine.IsWishlisted(2))
	got, _ := h.engine.Enrollment(1)
	assert.Equal(t, 40, got.Progress)
	assert.Zero(t, h.sched.Pending(), "restored enrollments are not re-armed")
}

func TestCommitFailure_SurfacedToCaller(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	h.store.fail = errors.New("disk full")

	err := h.engine.Enroll(ref(1, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotSaved)
	assert.True(t, h.engine.IsEnrolled(1), "memory stays authoritative")
	assert.Equal(t, TitleEnrolled, h.sink.lastNotification().Title)

	err = h.engine.AddToWishlist(ref(2, 10))
	assert.ErrorIs(t, err, domain.ErrSnapshotNotSaved)
}

func TestCommitFailure_DeferredBecomesWarning(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.Enroll(ref(1, 10)))
	require.NoError(t, h.engine.Unenroll(1))
	h.store.fail = errors.New("disk full")

	h.sched.Advance(DefaultConfig().UndoWindow)

	assert.False(t, h.engine.IsEnrolled(1))
	assert.Equal(t, 1, h.sink.count(TitleUnenrolled))
	n := h.sink.lastNotification()
	assert.Equal(t, TitleNotSaved, n.Title)
	assert.Equal(t, domain.LevelWarning, n.Level)
}

func TestClose_AbandonsPendingWork(t *testing.T) {
	h := newHarness(t, domain.Snapshot{})
	require.NoError(t, h.engine.Enroll(ref(1, 10)))
	require.NoError(t, h.engine.AddToWishlist(ref(2, 10)))
	require.NoError(t, h.engine.Unenroll(1))
	require.NoError(t, h.engine.RemoveFromWishlist(2, true))
	require.Equal(t, 2, h.engine.PendingCount())

	h.engine.Close()

	assert.Zero(t, h.engine.PendingCount())
	assert.Zero(t, h.sched.Pending())
	last := h.store.last()
	assert.GreaterOrEqual(t, last.EnrolledIndex(1), 0)
	assert.GreaterOrEqual(t, last.WishlistIndex(2), 0)
}

func TestActionKind_String(t *testing.T) {
	assert.Equal(t, "unenroll", KindUnenroll.String())
	assert.Equal(t, "wishlist-remove", KindWishlistRemove.String())
	assert.Equal(t, "unknown", ActionKind(9).String())
}
