package puzzle

// ValidateGrid reports whether a candidate board is a correct grid-puzzle
// solution: every cell filled with a digit in 1..4, and every row, every
// column and each of the four non-overlapping 2x2 boxes containing each
// digit exactly once. It is a pure predicate with no side effects.
func ValidateGrid(candidate Grid) bool {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if candidate[r][c] < 1 || candidate[r][c] > GridSize {
				return false
			}
		}
	}

	for r := 0; r < GridSize; r++ {
		var seen [GridSize + 1]bool
		for c := 0; c < GridSize; c++ {
			v := candidate[r][c]
			if seen[v] {
				return false
			}
			seen[v] = true
		}
	}

	for c := 0; c < GridSize; c++ {
		var seen [GridSize + 1]bool
		for r := 0; r < GridSize; r++ {
			v := candidate[r][c]
			if seen[v] {
				return false
			}
			seen[v] = true
		}
	}

	for boxRow := 0; boxRow < 2; boxRow++ {
		for boxCol := 0; boxCol < 2; boxCol++ {
			var seen [GridSize + 1]bool
			for r := 0; r < 2; r++ {
				for c := 0; c < 2; c++ {
					v := candidate[boxRow*2+r][boxCol*2+c]
					if seen[v] {
						return false
					}
					seen[v] = true
				}
			}
		}
	}

	return true
}

// ValidateSequence reports whether the submitted value matches the stored
// sequence answer. Exact integer equality, no tolerance.
func ValidateSequence(answer, submitted int) bool {
	return answer == submitted
}
