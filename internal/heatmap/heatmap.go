// Package heatmap turns the activity log into the per-day intensity data a
// contribution-style calendar consumes. Rendering is out of scope; this is
// the read-only aggregation only.
package heatmap

import (
	"time"

	"github.com/Mamtagurjar/daily-puzzle/internal/puzzle"
	"github.com/Mamtagurjar/daily-puzzle/internal/store"
)

// MaxLevel is the highest intensity bucket.
const MaxLevel = 4

// Cell is one day of the calendar.
type Cell struct {
	Date      string
	Intensity int
	Solved    bool
}

// Intensity buckets a single activity into 0..MaxLevel. Unsolved days are 0;
// a near-perfect score is 4 regardless of tier; otherwise harder tiers with
// strong scores bucket higher, and any other solved day is 1.
func Intensity(a *store.Activity) int {
	if a == nil || !a.Solved {
		return 0
	}
	switch {
	case a.Score >= 95:
		return 4
	case a.Difficulty == puzzle.Hard && a.Score >= 80:
		return 3
	case a.Difficulty == puzzle.Medium && a.Score >= 70:
		return 2
	default:
		return 1
	}
}

// Year produces one cell per day of the last 365 days ending at today,
// oldest first.
func Year(activities []store.Activity, today time.Time) []Cell {
	byDate := make(map[string]store.Activity, len(activities))
	for _, a := range activities {
		byDate[a.Date] = a
	}

	cells := make([]Cell, 0, 365)
	for offset := 364; offset >= 0; offset-- {
		date := today.AddDate(0, 0, -offset).Format(puzzle.DateFormat)
		cell := Cell{Date: date}
		if a, ok := byDate[date]; ok {
			cell.Solved = a.Solved
			cell.Intensity = Intensity(&a)
		}
		cells = append(cells, cell)
	}
	return cells
}

// LevelCounts tallies how many of the cells landed in each bucket.
func LevelCounts(cells []Cell) [MaxLevel + 1]int {
	var counts [MaxLevel + 1]int
	for _, c := range cells {
		counts[c.Intensity]++
	}
	return counts
}
