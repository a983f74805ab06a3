package domain

import "math"

// ProgressPercent returns round(completed/total*100). A course with no
// lessons reports 0.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
