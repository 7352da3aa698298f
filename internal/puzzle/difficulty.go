package puzzle

import "time"

// Difficulty is the tier a puzzle is generated at.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// DifficultyForDate maps a calendar date to its tier. The mapping is a pure
// function of the weekday: Monday and Tuesday are easy, Friday and Saturday
// are hard, everything else is medium.
func DifficultyForDate(date time.Time) Difficulty {
	switch date.Weekday() {
	case time.Monday, time.Tuesday:
		return Easy
	case time.Friday, time.Saturday:
		return Hard
	default:
		return Medium
	}
}

// Valid reports whether d is one of the three known tiers.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}
