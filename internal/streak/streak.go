// Package streak derives completion streaks from the activity log. No
// persisted streak field exists anywhere; both values are always recomputed
// from the full set of activities.
package streak

import (
	"sort"
	"time"

	"github.com/Mamtagurjar/daily-puzzle/internal/puzzle"
	"github.com/Mamtagurjar/daily-puzzle/internal/store"
)

// Stats bundles the derived streak values.
type Stats struct {
	Current     int
	Longest     int
	TotalSolved int
	Active      bool
}

// Compute derives all streak statistics for one user's activities.
func Compute(activities []store.Activity, today time.Time) Stats {
	current := Current(activities, today)
	total := 0
	for _, a := range activities {
		if a.Solved {
			total++
		}
	}
	return Stats{
		Current:     current,
		Longest:     Longest(activities),
		TotalSolved: total,
		Active:      current > 0,
	}
}

// Current counts consecutive solved days walking backward from today. An
// unsolved today does not break the streak: it is skipped once and the walk
// continues from yesterday, so the streak is the most recent unbroken run
// ending no later than yesterday, or today if today is complete.
func Current(activities []store.Activity, today time.Time) int {
	solved := solvedSet(activities)
	todayKey := today.Format(puzzle.DateFormat)

	count := 0
	day := today
	for {
		key := day.Format(puzzle.DateFormat)
		if solved[key] {
			count++
			day = day.AddDate(0, 0, -1)
			continue
		}
		if count == 0 && key == todayKey {
			day = day.AddDate(0, 0, -1)
			continue
		}
		return count
	}
}

// Longest returns the longest run of consecutive solved calendar days in
// the whole log. A run continues only when the next solved date is exactly
// one day after the previous; any gap resets the run length to 1.
func Longest(activities []store.Activity) int {
	var days []time.Time
	for _, a := range activities {
		if !a.Solved {
			continue
		}
		d, err := time.Parse(puzzle.DateFormat, a.Date)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func solvedSet(activities []store.Activity) map[string]bool {
	set := make(map[string]bool, len(activities))
	for _, a := range activities {
		if a.Solved {
			set[a.Date] = true
		}
	}
	return set
}
