package enrollment

import (
	"time"

	"github.com/mmcdole/syllabus/internal/domain"
	"github.com/mmcdole/syllabus/internal/scheduler"
)

// LessonLabels are the lesson names the simulator reports as last completed.
var LessonLabels = []string{
	"Introduction to Key Concepts",
	"Advanced Techniques",
	"Practical Applications",
	"Case Study Analysis",
	"Project Implementation",
	"Performance Optimization",
	"Fundamental Principles",
	"Design Patterns",
	"Best Practices",
	"Industry Standards",
}

// progressDelay picks a delay uniformly in [ProgressMinDelay, ProgressMaxDelay]
// at millisecond resolution.
func (e *Engine) progressDelay() time.Duration {
	span := int((e.cfg.ProgressMaxDelay - e.cfg.ProgressMinDelay) / time.Millisecond)
	return e.cfg.ProgressMinDelay + time.Duration(e.rng.IntN(span+1))*time.Millisecond
}

// arm schedules the one-shot progress simulation for a new enrollment.
func (e *Engine) arm(id domain.CourseID) {
	e.disarm(id)

	delay := e.progressDelay()
	var tok scheduler.Token
	tok = e.sched.Schedule(delay, func() { e.simulateProgress(id, tok) })
	e.armed[id] = tok

	e.logger.Debug("armed progress simulation", "courseID", id, "delay", delay)
}

func (e *Engine) disarm(id domain.CourseID) {
	if tok, ok := e.armed[id]; ok {
		e.sched.Cancel(tok)
		delete(e.armed, id)
	}
}

// simulateProgress records a random batch of completed lessons. The course
// is looked up again here; a missing or finished course is left alone.
func (e *Engine) simulateProgress(id domain.CourseID, tok scheduler.Token) {
	if cur, ok := e.armed[id]; !ok || cur != tok {
		return
	}
	delete(e.armed, id)

	i := e.snap.EnrolledIndex(id)
	if i < 0 {
		e.logger.Debug("progress simulation skipped, course gone", "courseID", id)
		return
	}
	course := &e.snap.Enrolled[i]
	if course.IsComplete() {
		return
	}

	n := 1 + e.rng.IntN(e.cfg.MaxLessonsPerUpdate)
	label := LessonLabels[e.rng.IntN(len(LessonLabels))]
	added := course.CompleteLessons(n, label)
	title := course.Title

	e.logger.Info("lessons completed", "courseID", id, "added", added,
		"completedLessons", course.CompletedLessons, "progress", course.Progress)
	e.commitDeferred("simulate progress")

	n10n := lessonsCompleted(title, added)
	e.notify(n10n)
	if e.signals != nil {
		e.signals.Publish(domain.LessonCompleted{
			CourseID:    id,
			Title:       n10n.Title,
			Description: n10n.Message,
		})
	}
}
