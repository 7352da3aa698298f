package game

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Mamtagurjar/daily-puzzle/internal/puzzle"
	"github.com/Mamtagurjar/daily-puzzle/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "game.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// findDate scans forward from a fixed base until the generator produces the
// wanted puzzle kind.
func findDate(t *testing.T, gen *puzzle.Generator, kind puzzle.Kind) time.Time {
	t.Helper()
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		if gen.ForDate(date).Kind == kind {
			return date
		}
		date = date.AddDate(0, 0, 1)
	}
	t.Fatalf("no %v puzzle in 30 days", kind)
	return time.Time{}
}

func newTestSession(t *testing.T, gen *puzzle.Generator, st *store.Store, today time.Time, input string) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := New(gen, st, "u1", strings.NewReader(input), &out,
		WithClock(func() time.Time { return today }))
	return s, &out
}

// solutionMoves lists "row col value" lines filling every blank of a grid
// puzzle from its solution.
func solutionMoves(gp *puzzle.GridPuzzle) string {
	var b strings.Builder
	for r := 0; r < puzzle.GridSize; r++ {
		for c := 0; c < puzzle.GridSize; c++ {
			if gp.Cells[r][c] == 0 {
				fmt.Fprintf(&b, "%d %d %d\n", r+1, c+1, gp.Solution[r][c])
			}
		}
	}
	return b.String()
}

func TestPlay_SolvesGrid(t *testing.T) {
	gen := puzzle.NewGenerator("test-secret")
	today := findDate(t, gen, puzzle.KindGrid)
	p := gen.ForDate(today)
	st := openTestStore(t)

	s, out := newTestSession(t, gen, st, today, solutionMoves(p.Grid))
	if err := s.Play(context.Background()); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out.String(), "Solved!") {
		t.Fatalf("output missing solve line:\n%s", out.String())
	}

	a, err := st.Activities().Get(context.Background(), "u1", today.Format(puzzle.DateFormat))
	if err != nil {
		t.Fatalf("get activity: %v", err)
	}
	if a == nil || !a.Solved {
		t.Fatal("no solved activity persisted")
	}
	if a.HintsUsed != 0 {
		t.Errorf("HintsUsed = %d, want 0", a.HintsUsed)
	}
	// Instant solve with no hints earns the full base plus time bonus.
	want := puzzle.Score(p.Difficulty, 1, 0)
	if a.Score != want {
		t.Errorf("Score = %d, want %d", a.Score, want)
	}
}

func TestPlay_SolvesSequence(t *testing.T) {
	gen := puzzle.NewGenerator("test-secret")
	today := findDate(t, gen, puzzle.KindSequence)
	p := gen.ForDate(today)
	st := openTestStore(t)

	input := fmt.Sprintf("999\n%d\n", p.Sequence.Answer)
	s, out := newTestSession(t, gen, st, today, input)
	if err := s.Play(context.Background()); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out.String(), "Not it") {
		t.Error("wrong guess not reported")
	}
	if !strings.Contains(out.String(), "Solved!") {
		t.Fatalf("output missing solve line:\n%s", out.String())
	}
}

func TestPlay_HintLimitAndScorePenalty(t *testing.T) {
	gen := puzzle.NewGenerator("test-secret")
	today := findDate(t, gen, puzzle.KindSequence)
	p := gen.ForDate(today)
	st := openTestStore(t)

	input := fmt.Sprintf("hint\nhint\nhint\nhint\n%d\n", p.Sequence.Answer)
	s, out := newTestSession(t, gen, st, today, input)
	if err := s.Play(context.Background()); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out.String(), "No hints left.") {
		t.Error("fourth hint not refused")
	}

	a, _ := st.Activities().Get(context.Background(), "u1", today.Format(puzzle.DateFormat))
	if a == nil {
		t.Fatal("no activity persisted")
	}
	if a.HintsUsed != puzzle.MaxHints {
		t.Errorf("HintsUsed = %d, want %d", a.HintsUsed, puzzle.MaxHints)
	}
	noHints := puzzle.Score(p.Difficulty, 1, 0)
	if a.Score != noHints-30 && a.Score != 0 {
		t.Errorf("Score = %d, want %d", a.Score, noHints-30)
	}
}

func TestPlay_QuitSavesProgressAndResumes(t *testing.T) {
	gen := puzzle.NewGenerator("test-secret")
	today := findDate(t, gen, puzzle.KindGrid)
	p := gen.ForDate(today)
	st := openTestStore(t)
	ctx := context.Background()
	date := today.Format(puzzle.DateFormat)

	// Make one correct move, then quit.
	moves := strings.SplitN(solutionMoves(p.Grid), "\n", 2)
	s, out := newTestSession(t, gen, st, today, moves[0]+"\nquit\n")
	if err := s.Play(ctx); err != nil {
		t.Fatalf("first play: %v", err)
	}
	if !strings.Contains(out.String(), "Progress saved.") {
		t.Fatal("quit did not save progress")
	}

	prog, err := st.Progress().Get(ctx, "u1", date)
	if err != nil || prog == nil {
		t.Fatalf("no progress snapshot: %v", err)
	}
	if a, _ := st.Activities().Get(ctx, "u1", date); a != nil {
		t.Fatal("unsolved attempt wrote an activity")
	}

	// Resume and finish with the remaining moves.
	s2, out2 := newTestSession(t, gen, st, today, moves[1])
	if err := s2.Play(ctx); err != nil {
		t.Fatalf("second play: %v", err)
	}
	if !strings.Contains(out2.String(), "Resuming saved attempt.") {
		t.Error("saved attempt not resumed")
	}
	if !strings.Contains(out2.String(), "Solved!") {
		t.Fatalf("resumed attempt not solved:\n%s", out2.String())
	}
	if prog, _ := st.Progress().Get(ctx, "u1", date); prog != nil {
		t.Error("progress snapshot survived the solve")
	}
}

func TestPlay_AlreadySolvedToday(t *testing.T) {
	gen := puzzle.NewGenerator("test-secret")
	today := findDate(t, gen, puzzle.KindGrid)
	st := openTestStore(t)
	ctx := context.Background()

	err := st.Activities().Save(ctx, "u1", store.Activity{
		Date:             today.Format(puzzle.DateFormat),
		Solved:           true,
		Score:            91,
		TimeTakenSeconds: 60,
		Difficulty:       puzzle.Easy,
	})
	if err != nil {
		t.Fatalf("seed activity: %v", err)
	}

	s, out := newTestSession(t, gen, st, today, "")
	if err := s.Play(ctx); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out.String(), "Already solved today's puzzle (score 91).") {
		t.Fatalf("replay not refused:\n%s", out.String())
	}
}

func TestPlay_InvalidFullGridKeepsGoing(t *testing.T) {
	gen := puzzle.NewGenerator("test-secret")
	today := findDate(t, gen, puzzle.KindGrid)
	p := gen.ForDate(today)
	st := openTestStore(t)

	// Fill the first blank wrongly, complete the rest, then fix it.
	var firstR, firstC int
	var b strings.Builder
	found := false
	for r := 0; r < puzzle.GridSize; r++ {
		for c := 0; c < puzzle.GridSize; c++ {
			if p.Grid.Cells[r][c] != 0 {
				continue
			}
			if !found {
				found = true
				firstR, firstC = r, c
				wrong := p.Grid.Solution[r][c]%puzzle.GridSize + 1
				fmt.Fprintf(&b, "%d %d %d\n", r+1, c+1, wrong)
				continue
			}
			fmt.Fprintf(&b, "%d %d %d\n", r+1, c+1, p.Grid.Solution[r][c])
		}
	}
	fmt.Fprintf(&b, "%d %d %d\n", firstR+1, firstC+1, p.Grid.Solution[firstR][firstC])

	s, out := newTestSession(t, gen, st, today, b.String())
	if err := s.Play(context.Background()); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out.String(), "Grid is full but not valid.") {
		t.Error("invalid full grid not reported")
	}
	if !strings.Contains(out.String(), "Solved!") {
		t.Fatalf("corrected grid not solved:\n%s", out.String())
	}
}
