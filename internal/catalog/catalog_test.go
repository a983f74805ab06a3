package catalog

import (
	"testing"

	"github.com/mmcdole/syllabus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_GetAndRef(t *testing.T) {
	c := Default()
	require.Len(t, c.All(), 9)

	course, err := c.Get(7)
	require.NoError(t, err)
	assert.Equal(t, "Python for Data Science", course.Title)

	ref := course.Ref()
	assert.Equal(t, domain.CourseID(7), ref.ID)
	assert.Equal(t, 30, ref.Lessons)
	assert.Equal(t, placeholderImage, ref.Image)
	assert.Equal(t, "Data Science", ref.Category)

	_, err = c.Get(404)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCategoriesAndLevels(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"Web Development", "Frontend", "Full-Stack", "Backend", "Design", "Mobile", "Data Science"}, c.Categories())
	assert.Equal(t, []string{"Beginner", "Advanced", "Intermediate"}, c.Levels())

	backend := ByCategory(c.All(), "backend")
	require.Len(t, backend, 2)
	assert.Equal(t, domain.CourseID(4), backend[0].ID)
	assert.Equal(t, domain.CourseID(9), backend[1].ID)

	assert.Len(t, ByLevel(c.All(), "Advanced"), 2)
	assert.Len(t, ByLevel(c.All(), ""), 9)
}

func TestSearch_RanksPrefixFirst(t *testing.T) {
	c := Default()

	results := c.Search("advanced")
	require.GreaterOrEqual(t, len(results), 2)
	// Both are prefix matches; the shorter target is closer.
	assert.Equal(t, "Advanced React Patterns", results[0].Title)
	assert.Equal(t, "Advanced JavaScript Concepts", results[1].Title)

	assert.Nil(t, c.Search("   "))
	assert.Empty(t, c.Search("zzzzqqq"))
}

func TestSearch_MatchesCategory(t *testing.T) {
	results := Default().Search("design")
	var ids []domain.CourseID
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, domain.CourseID(5))
}

func TestFilter(t *testing.T) {
	courses := Default().All()

	all := Filter("", courses)
	assert.Len(t, all, len(courses))

	res := Filter("graphql", courses)
	require.NotEmpty(t, res)
	assert.Equal(t, domain.CourseID(9), res[0].Course.ID)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, res[0].MatchedIndexes)

	assert.Empty(t, Filter("qqqqxx", courses))
}

func TestPriceLabel(t *testing.T) {
	assert.Equal(t, "$49.99", Course{Price: 49.99}.PriceLabel())
	assert.Equal(t, "Free", Course{}.PriceLabel())
}
