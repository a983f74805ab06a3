package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// FilterResult is a filtered course with the title positions that matched.
type FilterResult struct {
	Course         Course
	MatchedIndexes []int
}

// titleIndex implements sahilm/fuzzy.Source over lowercase titles.
type titleIndex struct {
	lower []string
}

func (t titleIndex) String(i int) string { return t.lower[i] }

func (t titleIndex) Len() int { return len(t.lower) }

// Filter narrows courses to fuzzy title matches of query, best first.
// An empty query returns every course unhighlighted.
func Filter(query string, courses []Course) []FilterResult {
	if strings.TrimSpace(query) == "" {
		out := make([]FilterResult, len(courses))
		for i, c := range courses {
			out[i] = FilterResult{Course: c}
		}
		return out
	}

	idx := titleIndex{lower: make([]string, len(courses))}
	for i, c := range courses {
		idx.lower[i] = strings.ToLower(c.Title)
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), idx)
	out := make([]FilterResult, len(matches))
	for i, m := range matches {
		out[i] = FilterResult{Course: courses[m.Index], MatchedIndexes: m.MatchedIndexes}
	}
	return out
}
