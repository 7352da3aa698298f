package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mamtagurjar/daily-puzzle/internal/puzzle"
)

// playSequence runs the sequence variant: guess the blanked term. The first
// hint reveals the common difference, further hints reveal the answer.
// Returns true on a correct guess.
func (s *Session) playSequence(p *puzzle.Puzzle, hints *int) (bool, error) {
	sp := p.Sequence

	s.printSequence(sp)
	fmt.Fprintln(s.out, `What is the missing number? ("hint", "quit")`)

	for {
		line, ok := s.readLine()
		if !ok {
			line = "quit"
		}

		switch line {
		case "quit":
			return false, nil

		case "hint":
			if *hints >= puzzle.MaxHints {
				fmt.Fprintln(s.out, "No hints left.")
				continue
			}
			*hints++
			if *hints == 1 {
				fmt.Fprintf(s.out, "Hint: each term grows by %d (%d left)\n",
					commonStep(sp), puzzle.MaxHints-*hints)
			} else {
				fmt.Fprintf(s.out, "Hint: the answer is %d (%d left)\n",
					sp.Answer, puzzle.MaxHints-*hints)
			}

		default:
			guess, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintln(s.out, `Enter a number, "hint" or "quit".`)
				continue
			}
			if puzzle.ValidateSequence(sp.Answer, guess) {
				return true, nil
			}
			fmt.Fprintln(s.out, "Not it. Try again.")
		}
	}
}

func (s *Session) printSequence(sp *puzzle.SequencePuzzle) {
	terms := make([]string, len(sp.Terms))
	for i, t := range sp.Terms {
		if i == sp.MissingIndex {
			terms[i] = "_"
		} else {
			terms[i] = strconv.Itoa(t)
		}
	}
	fmt.Fprintln(s.out, strings.Join(terms, ", "))
}

// commonStep derives the progression step from the first adjacent pair of
// visible terms. With a single gap one such pair always exists.
func commonStep(sp *puzzle.SequencePuzzle) int {
	for i := 0; i+1 < len(sp.Terms); i++ {
		if i != sp.MissingIndex && i+1 != sp.MissingIndex {
			return sp.Terms[i+1] - sp.Terms[i]
		}
	}
	return 0
}
