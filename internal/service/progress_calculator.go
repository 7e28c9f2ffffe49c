package service

import "math"

// UnitPercentage derives the completion percentage of a unit from the set of
// completed lessons and the lesson-count policy. A non-positive total yields
// 0 rather than dividing by zero, and the result is clamped to [0,100] so an
// over-full completion set (stale config) cannot report more than complete.
// Rounding is half-up, matching how the dashboards have always displayed it.
func UnitPercentage(completedLessons []string, totalLessons int) int {
	if totalLessons <= 0 {
		return 0
	}

	pct := int(math.Round(float64(len(completedLessons)) * 100 / float64(totalLessons)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// OverallPercentage is the arithmetic mean of the unit percentages, rounded
// half-up. The unit set comes from configuration and is validated non-empty
// at startup; an empty slice still returns 0 rather than NaN.
func OverallPercentage(unitPercentages []int) int {
	if len(unitPercentages) == 0 {
		return 0
	}

	sum := 0
	for _, p := range unitPercentages {
		sum += p
	}
	return int(math.Round(float64(sum) / float64(len(unitPercentages))))
}
