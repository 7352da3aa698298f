package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mamtagurjar/daily-puzzle/internal/puzzle"
)

// playGrid runs the grid variant. Commands:
//
//	<row> <col> <value>  fill a blank cell (1-based)
//	clear <row> <col>    empty a cell again
//	hint                 reveal one cell from the solution
//	quit                 save progress and exit
//
// The attempt is checked automatically whenever the grid is full. Returns
// true once the grid validates.
func (s *Session) playGrid(p *puzzle.Puzzle, state *attemptState, hints *int) (bool, error) {
	gp := p.Grid

	// given marks the pre-filled cells, which are never editable.
	var given [puzzle.GridSize][puzzle.GridSize]bool
	for r := 0; r < puzzle.GridSize; r++ {
		for c := 0; c < puzzle.GridSize; c++ {
			given[r][c] = gp.Cells[r][c] != 0
		}
	}

	cells := gp.Cells
	if state.Cells != nil && matchesGivens(*state.Cells, gp.Cells, given) {
		cells = *state.Cells
	}

	s.printGrid(cells)
	fmt.Fprintln(s.out, `Fill the blanks ("row col value", "clear row col", "hint", "quit").`)

	for {
		line, ok := s.readLine()
		if !ok {
			line = "quit"
		}

		switch {
		case line == "quit":
			state.Cells = &cells
			return false, nil

		case line == "hint":
			if *hints >= puzzle.MaxHints {
				fmt.Fprintln(s.out, "No hints left.")
				continue
			}
			r, c, ok := nextHintCell(cells, gp.Solution, given)
			if !ok {
				fmt.Fprintln(s.out, "Nothing left to reveal.")
				continue
			}
			*hints++
			cells[r][c] = gp.Solution[r][c]
			fmt.Fprintf(s.out, "Hint: row %d col %d is %d (%d left)\n",
				r+1, c+1, gp.Solution[r][c], puzzle.MaxHints-*hints)

		case strings.HasPrefix(line, "clear "):
			r, c, ok := parseCell(strings.TrimPrefix(line, "clear "))
			if !ok {
				fmt.Fprintln(s.out, `Usage: clear <row> <col>`)
				continue
			}
			if given[r][c] {
				fmt.Fprintln(s.out, "That cell is part of the puzzle.")
				continue
			}
			cells[r][c] = 0

		default:
			r, c, v, ok := parseMove(line)
			if !ok {
				fmt.Fprintln(s.out, `Enter "row col value" with numbers 1-4.`)
				continue
			}
			if given[r][c] {
				fmt.Fprintln(s.out, "That cell is part of the puzzle.")
				continue
			}
			cells[r][c] = v
		}

		s.printGrid(cells)

		if gridFull(cells) {
			if puzzle.ValidateGrid(cells) {
				return true, nil
			}
			fmt.Fprintln(s.out, "Grid is full but not valid. Keep going.")
		}
	}
}

func (s *Session) printGrid(g puzzle.Grid) {
	for r := 0; r < puzzle.GridSize; r++ {
		row := make([]string, puzzle.GridSize)
		for c := 0; c < puzzle.GridSize; c++ {
			if g[r][c] == 0 {
				row[c] = "_"
			} else {
				row[c] = strconv.Itoa(g[r][c])
			}
		}
		fmt.Fprintln(s.out, strings.Join(row, " "))
	}
}

// matchesGivens reports whether a restored grid agrees with the puzzle's
// pre-filled cells. A snapshot from a different puzzle is discarded.
func matchesGivens(restored, fresh puzzle.Grid, given [puzzle.GridSize][puzzle.GridSize]bool) bool {
	for r := 0; r < puzzle.GridSize; r++ {
		for c := 0; c < puzzle.GridSize; c++ {
			if given[r][c] && restored[r][c] != fresh[r][c] {
				return false
			}
		}
	}
	return true
}

// nextHintCell picks the first editable cell that is empty or wrong.
func nextHintCell(cells, solution puzzle.Grid, given [puzzle.GridSize][puzzle.GridSize]bool) (int, int, bool) {
	for r := 0; r < puzzle.GridSize; r++ {
		for c := 0; c < puzzle.GridSize; c++ {
			if !given[r][c] && cells[r][c] != solution[r][c] {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

func gridFull(g puzzle.Grid) bool {
	for r := 0; r < puzzle.GridSize; r++ {
		for c := 0; c < puzzle.GridSize; c++ {
			if g[r][c] == 0 {
				return false
			}
		}
	}
	return true
}

// parseCell parses "<row> <col>" into 0-based indices.
func parseCell(input string) (int, int, bool) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return 0, 0, false
	}
	r, err1 := strconv.Atoi(fields[0])
	c, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || r < 1 || r > puzzle.GridSize || c < 1 || c > puzzle.GridSize {
		return 0, 0, false
	}
	return r - 1, c - 1, true
}

// parseMove parses "<row> <col> <value>" into 0-based indices and a value.
func parseMove(input string) (int, int, int, bool) {
	fields := strings.Fields(input)
	if len(fields) != 3 {
		return 0, 0, 0, false
	}
	r, c, ok := parseCell(fields[0] + " " + fields[1])
	if !ok {
		return 0, 0, 0, false
	}
	v, err := strconv.Atoi(fields[2])
	if err != nil || v < 1 || v > puzzle.GridSize {
		return 0, 0, 0, false
	}
	return r, c, v, true
}
