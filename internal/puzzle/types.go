package puzzle

// Kind identifies which of the two puzzle variants a date produced.
type Kind string

const (
	KindGrid     Kind = "grid"
	KindSequence Kind = "sequence"
)

// GridSize is the edge length of the grid puzzle. Rows, columns and the
// four non-overlapping 2x2 boxes must each contain the digits 1..4 exactly
// once; 0 marks a blank cell.
const GridSize = 4

// Grid is a 4x4 board. Value semantics make puzzles trivially copyable and
// comparable, which the determinism tests rely on.
type Grid [GridSize][GridSize]int

// GridPuzzle is the grid-logic variant: Cells is the board handed to the
// player (with blanks), Solution the unique correct completion.
type GridPuzzle struct {
	Cells    Grid
	Solution Grid
}

// SequencePuzzle is the numeric-sequence variant: an arithmetic progression
// with exactly one interior term removed. Terms holds 0 at MissingIndex;
// Answer is the removed value.
type SequencePuzzle struct {
	Terms        []int
	MissingIndex int
	Answer       int
}

// Puzzle is the ephemeral daily puzzle. It is regenerated deterministically
// from (date, secret) whenever it is needed and never persisted; only its
// outcome is, as an activity-log row. Exactly one of Grid and Sequence is
// set, matching Kind.
type Puzzle struct {
	Kind       Kind
	Difficulty Difficulty
	Grid       *GridPuzzle
	Sequence   *SequencePuzzle
}
