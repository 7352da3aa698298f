package puzzle

// Scoring constants. Score is non-increasing in time taken and hints used,
// non-decreasing in difficulty tier, and always lands in [0, 100].
const (
	MaxScore = 100

	// MaxHints is the most hints a single attempt may consume.
	MaxHints = 3

	hintPenalty    = 10
	maxTimeBonus   = 20
	bonusDecaySecs = 30 // one bonus point lost per 30 seconds
)

// baseScore is the tier's starting score before time bonus and hint penalty.
func baseScore(d Difficulty) int {
	switch d {
	case Easy:
		return 60
	case Hard:
		return 100
	default:
		return 80
	}
}

// Score converts difficulty, elapsed time and hint count into a bounded
// score: base 60/80/100 per tier, plus a time bonus of 20 decaying by one
// point per 30 seconds, minus 10 per hint, clamped to [0, 100].
func Score(d Difficulty, timeTakenSeconds, hintsUsed int) int {
	bonus := maxTimeBonus - timeTakenSeconds/bonusDecaySecs
	if bonus < 0 {
		bonus = 0
	}
	if bonus > maxTimeBonus {
		bonus = maxTimeBonus
	}

	s := baseScore(d) + bonus - hintsUsed*hintPenalty
	if s < 0 {
		s = 0
	}
	if s > MaxScore {
		s = MaxScore
	}
	return s
}
