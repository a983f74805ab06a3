package domain

import "fmt"

// CourseID is the stable catalog key shared by enrollments and wishlist entries.
type CourseID int

// NotStartedLesson is the LastLesson label of a fresh enrollment.
const NotStartedLesson = "Not started yet"

// CourseRef is the projection of a catalog entry the engine accepts at
// enroll/wishlist time. The engine never reads the catalog afterwards.
type CourseRef struct {
	ID       CourseID
	Title    string
	Image    string
	Lessons  int
	Price    float64
	Category string
	Level    string
}

// EnrolledCourse is a course the user is taking.
// CompletedLessons never decreases; Progress is always derived from it.
type EnrolledCourse struct {
	ID               CourseID `json:"id"`
	Title            string   `json:"title"`
	Image            string   `json:"image"`
	Progress         int      `json:"progress"`
	LastLesson       string   `json:"lastLesson"`
	TotalLessons     int      `json:"totalLessons"`
	CompletedLessons int      `json:"completedLessons"`
}

// NewEnrolledCourse builds a not-started enrollment from a catalog projection.
func NewEnrolledCourse(ref CourseRef) EnrolledCourse {
	total := ref.Lessons
	if total < 0 {
		total = 0
	}
	return EnrolledCourse{
		ID:           ref.ID,
		Title:        ref.Title,
		Image:        ref.Image,
		LastLesson:   NotStartedLesson,
		TotalLessons: total,
	}
}

// IsComplete reports whether every lesson has been completed.
func (c EnrolledCourse) IsComplete() bool {
	return c.CompletedLessons >= c.TotalLessons
}

// CompleteLessons adds n completed lessons, clamped to TotalLessons, and
// recomputes Progress. It returns the number of lessons actually added.
// Non-positive n is ignored so CompletedLessons can only grow.
func (c *EnrolledCourse) CompleteLessons(n int, lastLesson string) int {
	if n <= 0 || c.IsComplete() {
		return 0
	}
	next := min(c.CompletedLessons+n, c.TotalLessons)
	added := next - c.CompletedLessons
	c.CompletedLessons = next
	c.Progress = ProgressPercent(next, c.TotalLessons)
	if lastLesson != "" {
		c.LastLesson = lastLesson
	}
	return added
}

// ProgressLabel renders "completed/total lessons".
func (c EnrolledCourse) ProgressLabel() string {
	return fmt.Sprintf("%d/%d lessons", c.CompletedLessons, c.TotalLessons)
}

// WishlistCourse is a course saved for later. It carries no progress.
type WishlistCourse struct {
	ID       CourseID `json:"id"`
	Title    string   `json:"title"`
	Image    string   `json:"image"`
	Price    float64  `json:"price"`
	Category string   `json:"category"`
	Level    string   `json:"level"`
	Lessons  int      `json:"lessons"`
}

// NewWishlistCourse builds a wishlist entry from a catalog projection.
func NewWishlistCourse(ref CourseRef) WishlistCourse {
	return WishlistCourse{
		ID:       ref.ID,
		Title:    ref.Title,
		Image:    ref.Image,
		Price:    ref.Price,
		Category: ref.Category,
		Level:    ref.Level,
		Lessons:  ref.Lessons,
	}
}

// Snapshot is the pair of ordered collections that is committed as a unit.
type Snapshot struct {
	Enrolled []EnrolledCourse
	Wishlist []WishlistCourse
}

// Clone returns a deep copy; the collections hold only value fields.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{}
	if len(s.Enrolled) > 0 {
		out.Enrolled = make([]EnrolledCourse, len(s.Enrolled))
		copy(out.Enrolled, s.Enrolled)
	}
	if len(s.Wishlist) > 0 {
		out.Wishlist = make([]WishlistCourse, len(s.Wishlist))
		copy(out.Wishlist, s.Wishlist)
	}
	return out
}

// EnrolledIndex returns the position of id in Enrolled, or -1.
func (s Snapshot) EnrolledIndex(id CourseID) int {
	for i := range s.Enrolled {
		if s.Enrolled[i].ID == id {
			return i
		}
	}
	return -1
}

// WishlistIndex returns the position of id in Wishlist, or -1.
func (s Snapshot) WishlistIndex(id CourseID) int {
	for i := range s.Wishlist {
		if s.Wishlist[i].ID == id {
			return i
		}
	}
	return -1
}
