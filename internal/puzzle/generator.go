package puzzle

import "time"

// baseGrid is one fixed valid 4x4 Latin square. Every daily grid puzzle is
// this board under a seeded relabeling of the digit set, so validity is
// preserved by construction.
var baseGrid = Grid{
	{1, 2, 3, 4},
	{3, 4, 1, 2},
	{2, 3, 4, 1},
	{4, 1, 2, 3},
}

// blanksFor is the number of cells removed from the grid per tier.
func blanksFor(d Difficulty) int {
	switch d {
	case Easy:
		return 6
	case Hard:
		return 10
	default:
		return 8
	}
}

// sequenceLengthFor is the arithmetic-progression length per tier.
func sequenceLengthFor(d Difficulty) int {
	switch d {
	case Easy:
		return 5
	case Hard:
		return 7
	default:
		return 6
	}
}

// Generator produces the daily puzzle for a date. The secret is injected so
// tests can supply alternates; it must never live in package scope.
type Generator struct {
	secret string
}

// NewGenerator creates a Generator using the given shared secret.
func NewGenerator(secret string) *Generator {
	return &Generator{secret: secret}
}

// ForDate returns the puzzle for a date. The variant alternates with the
// parity of the daily seed; selection is otherwise uncorrelated with the
// difficulty logic. For a fixed (date, secret) the result is identical
// across all calls and all processes.
func (g *Generator) ForDate(date time.Time) *Puzzle {
	if DailySeed(date, g.secret)%2 == 0 {
		return g.GridPuzzle(date)
	}
	return g.SequencePuzzle(date)
}

// GridPuzzle generates the grid-logic variant for a date. It relabels the
// base Latin square with a seeded bijection on {1,2,3,4}, then blanks a
// difficulty-dependent count of cells by sampling positions from the seeded
// stream, skipping positions that are already blank.
func (g *Generator) GridPuzzle(date time.Time) *Puzzle {
	rng := NewRand(DailySeed(date, g.secret))
	difficulty := DifficultyForDate(date)

	// Seeded bijection on the digit set.
	digits := []int{1, 2, 3, 4}
	shuffled := rng.Shuffle(digits)
	relabel := map[int]int{}
	for i, d := range digits {
		relabel[d] = shuffled[i]
	}

	var solution Grid
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			solution[r][c] = relabel[baseGrid[r][c]]
		}
	}

	cells := solution
	removed := 0
	for removed < blanksFor(difficulty) {
		r := rng.NextInt(0, GridSize-1)
		c := rng.NextInt(0, GridSize-1)
		if cells[r][c] != 0 {
			cells[r][c] = 0
			removed++
		}
	}

	return &Puzzle{
		Kind:       KindGrid,
		Difficulty: difficulty,
		Grid:       &GridPuzzle{Cells: cells, Solution: solution},
	}
}

// SequencePuzzle generates the numeric-sequence variant for a date: an
// arithmetic progression with a seeded start and step, one interior term
// blanked out. The first and last terms are never removed.
func (g *Generator) SequencePuzzle(date time.Time) *Puzzle {
	rng := NewRand(DailySeed(date, g.secret))
	difficulty := DifficultyForDate(date)

	start := rng.NextInt(1, 20)
	step := rng.NextInt(2, 8)
	length := sequenceLengthFor(difficulty)

	terms := make([]int, length)
	for i := range terms {
		terms[i] = start + step*i
	}

	missing := rng.NextInt(1, length-2)
	answer := terms[missing]
	terms[missing] = 0

	return &Puzzle{
		Kind:       KindSequence,
		Difficulty: difficulty,
		Sequence:   &SequencePuzzle{Terms: terms, MissingIndex: missing, Answer: answer},
	}
}
