package enrollment

import (
	"slices"

	"github.com/mmcdole/syllabus/internal/domain"
	"github.com/mmcdole/syllabus/internal/scheduler"
)

// Enroll adds ref to the enrolled courses.
//
// A pending unenroll for the same course is cancelled instead. Enrolling
// silently drops the course from the wishlist and arms one progress
// simulation. A non-nil error wraps domain.ErrSnapshotNotSaved; the
// enrollment itself has still happened.
func (e *Engine) Enroll(ref domain.CourseRef) error {
	if e.pending.has(ref.ID, KindUnenroll) {
		e.CancelUnenrollment(ref.ID)
		return nil
	}
	if i := e.snap.EnrolledIndex(ref.ID); i >= 0 {
		e.notify(alreadyEnrolled(e.snap.Enrolled[i].Title))
		return nil
	}

	course := domain.NewEnrolledCourse(ref)
	e.snap.Enrolled = append(e.snap.Enrolled, course)
	droppedWishlist := e.dropWishlist(ref.ID)

	// One commit covers both collections so no committed state holds the
	// course twice.
	err := e.commit("enroll")

	e.arm(ref.ID)
	e.logger.Info("enrolled", "courseID", ref.ID, "title", ref.Title,
		"lessons", course.TotalLessons, "fromWishlist", droppedWishlist)
	e.notify(enrolled(course.Title))
	return err
}

// Unenroll removes the enrollment after the undo window. A second call
// while the first is pending removes it immediately.
func (e *Engine) Unenroll(id domain.CourseID) error {
	i := e.snap.EnrolledIndex(id)
	if i < 0 {
		return nil
	}
	title := e.snap.Enrolled[i].Title

	if pa, ok := e.pending.take(id, KindUnenroll); ok {
		e.sched.Cancel(pa.token)
		e.logger.Info("unenroll confirmed early", "courseID", id)
		return e.removeEnrollment(id, "unenroll")
	}

	var tok scheduler.Token
	tok = e.sched.Schedule(e.cfg.UndoWindow, func() { e.expireUnenroll(id, tok) })
	e.pending.put(id, KindUnenroll, pendingAction{token: tok})

	e.logger.Info("unenroll pending", "courseID", id, "window", e.cfg.UndoWindow)
	e.notify(unenrollPending(title, e.cfg.UndoWindow, func() { e.CancelUnenrollment(id) }))
	return nil
}

// CancelUnenrollment cancels a pending unenroll. It reports whether one
// was pending.
func (e *Engine) CancelUnenrollment(id domain.CourseID) bool {
	pa, ok := e.pending.take(id, KindUnenroll)
	if !ok {
		return false
	}
	e.sched.Cancel(pa.token)

	e.logger.Info("unenroll cancelled", "courseID", id)
	if i := e.snap.EnrolledIndex(id); i >= 0 {
		e.notify(unenrollCancelled(e.snap.Enrolled[i].Title))
	}
	return true
}

func (e *Engine) expireUnenroll(id domain.CourseID, tok scheduler.Token) {
	if !e.pending.takeToken(id, KindUnenroll, tok) {
		return
	}
	if err := e.removeEnrollment(id, "unenroll (deferred)"); err != nil {
		e.notify(notSaved(err))
	}
}

// removeEnrollment deletes the enrollment, disarms its simulation and commits.
func (e *Engine) removeEnrollment(id domain.CourseID, op string) error {
	i := e.snap.EnrolledIndex(id)
	if i < 0 {
		return nil
	}
	course := e.snap.Enrolled[i]
	e.snap.Enrolled = slices.Delete(e.snap.Enrolled, i, i+1)
	e.disarm(id)

	err := e.commit(op)
	e.logger.Info("unenrolled", "courseID", id, "title", course.Title,
		"completedLessons", course.CompletedLessons)
	e.notify(unenrolled(course.Title))
	return err
}

// AddToWishlist saves ref for later. A pending wishlist removal of the same
// course is cancelled instead. Enrolled courses are refused.
func (e *Engine) AddToWishlist(ref domain.CourseRef) error {
	if e.pending.has(ref.ID, KindWishlistRemove) {
		e.CancelWishlistRemoval(ref.ID)
		return nil
	}
	if i := e.snap.WishlistIndex(ref.ID); i >= 0 {
		e.notify(alreadyWishlisted(e.snap.Wishlist[i].Title))
		return nil
	}
	if i := e.snap.EnrolledIndex(ref.ID); i >= 0 {
		e.notify(alreadyEnrolled(e.snap.Enrolled[i].Title))
		return nil
	}

	e.snap.Wishlist = append(e.snap.Wishlist, domain.NewWishlistCourse(ref))
	err := e.commit("add to wishlist")

	e.logger.Info("added to wishlist", "courseID", ref.ID, "title", ref.Title)
	e.notify(wishlistAdded(ref.Title))
	return err
}

// RemoveFromWishlist removes the course immediately when withUndo is false
// or a removal is already pending; otherwise it defers the removal behind
// the undo window.
func (e *Engine) RemoveFromWishlist(id domain.CourseID, withUndo bool) error {
	i := e.snap.WishlistIndex(id)
	if i < 0 {
		return nil
	}
	title := e.snap.Wishlist[i].Title

	if !withUndo || e.pending.has(id, KindWishlistRemove) {
		if pa, ok := e.pending.take(id, KindWishlistRemove); ok {
			e.sched.Cancel(pa.token)
		}
		return e.removeWishlistEntry(id, "remove from wishlist")
	}

	var tok scheduler.Token
	tok = e.sched.Schedule(e.cfg.UndoWindow, func() { e.expireWishlistRemoval(id, tok) })
	e.pending.put(id, KindWishlistRemove, pendingAction{token: tok})

	e.logger.Info("wishlist removal pending", "courseID", id, "window", e.cfg.UndoWindow)
	e.notify(wishlistRemovalPending(title, e.cfg.UndoWindow, func() { e.CancelWishlistRemoval(id) }))
	return nil
}

// CancelWishlistRemoval cancels a pending wishlist removal. It reports
// whether one was pending.
func (e *Engine) CancelWishlistRemoval(id domain.CourseID) bool {
	pa, ok := e.pending.take(id, KindWishlistRemove)
	if !ok {
		return false
	}
	e.sched.Cancel(pa.token)

	e.logger.Info("wishlist removal cancelled", "courseID", id)
	if i := e.snap.WishlistIndex(id); i >= 0 {
		e.notify(wishlistRemovalCancelled(e.snap.Wishlist[i].Title))
	}
	return true
}

func (e *Engine) expireWishlistRemoval(id domain.CourseID, tok scheduler.Token) {
	if !e.pending.takeToken(id, KindWishlistRemove, tok) {
		return
	}
	if err := e.removeWishlistEntry(id, "remove from wishlist (deferred)"); err != nil {
		e.notify(notSaved(err))
	}
}

// removeWishlistEntry deletes the entry and commits. The "removed"
// notification is skipped when the course is enrolled at this moment.
func (e *Engine) removeWishlistEntry(id domain.CourseID, op string) error {
	i := e.snap.WishlistIndex(id)
	if i < 0 {
		return nil
	}
	title := e.snap.Wishlist[i].Title
	e.snap.Wishlist = slices.Delete(e.snap.Wishlist, i, i+1)

	err := e.commit(op)
	e.logger.Info("removed from wishlist", "courseID", id, "title", title)
	if !e.IsEnrolled(id) {
		e.notify(wishlistRemoved(title))
	}
	return err
}

// dropWishlist removes id from the wishlist without committing or
// notifying, cancelling any pending removal. Used when enrollment
// supersedes the wishlist entry.
func (e *Engine) dropWishlist(id domain.CourseID) bool {
	if pa, ok := e.pending.take(id, KindWishlistRemove); ok {
		e.sched.Cancel(pa.token)
	}
	i := e.snap.WishlistIndex(id)
	if i < 0 {
		return false
	}
	e.snap.Wishlist = slices.Delete(e.snap.Wishlist, i, i+1)
	return true
}
