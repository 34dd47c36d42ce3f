package review

import (
	"slices"

	"github.com/sstent/garmin-wrapped/internal/calendar"
)

// LongestStreak returns the longest run of consecutive ISO weeks in weeks.
// Week 52 or 53 (whichever ends the ISO year) is followed by week 1 of the
// next year. Duplicates are ignored; the input is not modified.
func LongestStreak(weeks []calendar.Week) int {
	if len(weeks) == 0 {
		return 0
	}
	sorted := slices.Clone(weeks)
	slices.SortFunc(sorted, func(a, b calendar.Week) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	sorted = slices.Compact(sorted)

	longest, current := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Next() == sorted[i] {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}
