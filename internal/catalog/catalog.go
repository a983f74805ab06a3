// Package catalog holds the read-only course catalog and its search.
package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/syllabus/internal/domain"
)

// Course is a catalog entry.
type Course struct {
	ID          domain.CourseID
	Title       string
	Description string
	Category    string
	Level       string
	Students    int
	Lessons     int
	Image       string
	Rating      float64
	Price       float64
	Duration    string
	Instructor  string
}

// Ref projects the course to what the enrollment engine accepts.
func (c Course) Ref() domain.CourseRef {
	image := c.Image
	if image == "" {
		image = placeholderImage
	}
	return domain.CourseRef{
		ID:       c.ID,
		Title:    c.Title,
		Image:    image,
		Lessons:  c.Lessons,
		Price:    c.Price,
		Category: c.Category,
		Level:    c.Level,
	}
}

// PriceLabel renders the price, or "Free".
func (c Course) PriceLabel() string {
	if c.Price <= 0 {
		return "Free"
	}
	return fmt.Sprintf("$%.2f", c.Price)
}

// Catalog is an immutable list of courses.
type Catalog struct {
	courses []Course
}

// New builds a catalog over courses, ordered by ID.
func New(courses []Course) *Catalog {
	dup := slices.Clone(courses)
	sort.SliceStable(dup, func(i, j int) bool { return dup[i].ID < dup[j].ID })
	return &Catalog{courses: dup}
}

// Default returns the shipped catalog.
func Default() *Catalog {
	return New(builtin)
}

// All returns every course.
func (c *Catalog) All() []Course {
	return slices.Clone(c.courses)
}

// Get returns the course with id.
func (c *Catalog) Get(id domain.CourseID) (Course, error) {
	for _, course := range c.courses {
		if course.ID == id {
			return course, nil
		}
	}
	return Course{}, fmt.Errorf("course %d: %w", id, domain.ErrCourseNotFound)
}

// Categories returns the distinct categories in catalog order.
func (c *Catalog) Categories() []string {
	return distinct(c.courses, func(course Course) string { return course.Category })
}

// Levels returns the distinct levels in catalog order.
func (c *Catalog) Levels() []string {
	return distinct(c.courses, func(course Course) string { return course.Level })
}

func distinct(courses []Course, field func(Course) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, course := range courses {
		v := field(course)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// ByCategory returns courses in category (case-insensitive). An empty
// category matches everything.
func ByCategory(courses []Course, category string) []Course {
	if category == "" {
		return courses
	}
	var out []Course
	for _, course := range courses {
		if strings.EqualFold(course.Category, category) {
			out = append(out, course)
		}
	}
	return out
}

// ByLevel returns courses at level (case-insensitive). An empty level
// matches everything.
func ByLevel(courses []Course, level string) []Course {
	if level == "" {
		return courses
	}
	var out []Course
	for _, course := range courses {
		if strings.EqualFold(course.Level, level) {
			out = append(out, course)
		}
	}
	return out
}

// Search ranks courses whose title or category fuzzily contains query.
// Lower score = better match: exact, prefix, substring, then edit distance.
func (c *Catalog) Search(query string) []Course {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	targets := make([]string, len(c.courses))
	for i, course := range c.courses {
		targets[i] = strings.ToLower(course.Title + " " + course.Category)
	}

	matches := fuzzy.RankFindFold(query, targets)

	type ranked struct {
		course   Course
		score    int
		distance int
	}
	results := make([]ranked, 0, len(matches))
	for _, m := range matches {
		course := c.courses[m.OriginalIndex]
		results = append(results, ranked{course, matchScore(strings.ToLower(course.Title), query, m.Distance), m.Distance})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score < results[j].score
		}
		return results[i].distance < results[j].distance
	})

	out := make([]Course, len(results))
	for i, r := range results {
		out[i] = r.course
	}
	return out
}

func matchScore(title, query string, distance int) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	case strings.Contains(title, query):
		return 50
	default:
		return 100 + distance
	}
}
