package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name             string
		completed, total int
		want             int
	}{
		{"not started", 0, 24, 0},
		{"rounds half up", 3, 24, 13},
		{"rounds down", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"complete", 24, 24, 100},
		{"no lessons", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressPercent(tt.completed, tt.total))
		})
	}
}

func TestCompleteLessons(t *testing.T) {
	c := NewEnrolledCourse(CourseRef{ID: 1, Title: "Node.js Backend Development", Lessons: 5})
	assert.Equal(t, NotStartedLesson, c.LastLesson)

	assert.Equal(t, 3, c.CompleteLessons(3, "Design Patterns"))
	assert.Equal(t, 3, c.CompletedLessons)
	assert.Equal(t, 60, c.Progress)
	assert.Equal(t, "Design Patterns", c.LastLesson)

	assert.Equal(t, 0, c.CompleteLessons(-2, "ignored"), "negative counts never decrease progress")
	assert.Equal(t, 3, c.CompletedLessons)

	assert.Equal(t, 2, c.CompleteLessons(6, "Best Practices"), "clamped to total")
	assert.True(t, c.IsComplete())
	assert.Equal(t, 100, c.Progress)
	assert.Equal(t, "5/5 lessons", c.ProgressLabel())

	assert.Equal(t, 0, c.CompleteLessons(1, "Advanced Techniques"))
	assert.Equal(t, "Best Practices", c.LastLesson, "finished course keeps its last lesson")
}

func TestSnapshotClone(t *testing.T) {
	s := Snapshot{
		Enrolled: []EnrolledCourse{{ID: 1, Title: "a"}},
		Wishlist: []WishlistCourse{{ID: 2, Title: "b"}},
	}
	c := s.Clone()
	c.Enrolled[0].Title = "changed"
	c.Wishlist[0].Title = "changed"

	assert.Equal(t, "a", s.Enrolled[0].Title)
	assert.Equal(t, "b", s.Wishlist[0].Title)
	assert.Equal(t, 0, s.EnrolledIndex(1))
	assert.Equal(t, -1, s.EnrolledIndex(2))
	assert.Equal(t, 0, s.WishlistIndex(2))
}

func TestNewWishlistCourse(t *testing.T) {
	ref := CourseRef{ID: 9, Title: "GraphQL API Development", Image: "/img.svg", Lessons: 24, Price: 79.99, Category: "Backend", Level: "Intermediate"}
	w := NewWishlistCourse(ref)
	assert.Equal(t, WishlistCourse{ID: 9, Title: ref.Title, Image: ref.Image, Price: 79.99, Category: "Backend", Level: "Intermediate", Lessons: 24}, w)
}
