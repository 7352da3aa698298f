// Package game runs the interactive daily-puzzle session: present today's
// puzzle, accept input, spend hints, and persist the outcome. It owns no
// rendering beyond plain lines on the writer it is given.
package game

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Mamtagurjar/daily-puzzle/internal/puzzle"
	"github.com/Mamtagurjar/daily-puzzle/internal/store"
	"github.com/Mamtagurjar/daily-puzzle/internal/streak"
)

// DefaultSecret seeds daily puzzle generation. Every device must use the
// same value or the same date yields different puzzles.
const DefaultSecret = "dailypuzzle-v1"

// Session is one user's interactive attempt at the daily puzzle.
type Session struct {
	gen        *puzzle.Generator
	activities store.ActivityRepo
	progress   store.ProgressRepo
	userID     string
	in         *bufio.Scanner
	out        io.Writer
	now        func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the session clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session reading player input from in and writing to out.
func New(gen *puzzle.Generator, st *store.Store, userID string, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		gen:        gen,
		activities: st.Activities(),
		progress:   st.Progress(),
		userID:     userID,
		in:         bufio.NewScanner(in),
		out:        out,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// attemptState is the JSON progress snapshot for an unfinished attempt.
type attemptState struct {
	Cells          *puzzle.Grid `json:"cells,omitempty"`
	ElapsedSeconds int          `json:"elapsedSeconds"`
}

// Play runs one session for today's puzzle. Quitting mid-attempt saves a
// progress snapshot; solving persists the activity and deletes the snapshot.
func (s *Session) Play(ctx context.Context) error {
	today := s.now()
	date := today.Format(puzzle.DateFormat)

	existing, err := s.activities.Get(ctx, s.userID, date)
	if err != nil {
		return fmt.Errorf("read today's activity: %w", err)
	}
	if existing != nil && existing.Solved {
		fmt.Fprintf(s.out, "Already solved today's puzzle (score %d).\n", existing.Score)
		return s.printStreak(ctx, today)
	}

	p := s.gen.ForDate(today)

	saved, err := s.progress.Get(ctx, s.userID, date)
	if err != nil {
		return fmt.Errorf("read saved progress: %w", err)
	}
	var state attemptState
	hints := 0
	if saved != nil {
		if err := json.Unmarshal(saved.State, &state); err != nil {
			// Unreadable snapshot, start the attempt over.
			state = attemptState{}
		} else {
			hints = saved.HintsUsed
			fmt.Fprintln(s.out, "Resuming saved attempt.")
		}
	}

	start := s.now()
	fmt.Fprintf(s.out, "Daily puzzle for %s (%s)\n", date, p.Difficulty)

	var solved bool
	switch p.Kind {
	case puzzle.KindGrid:
		solved, err = s.playGrid(p, &state, &hints)
	default:
		solved, err = s.playSequence(p, &hints)
	}
	if err != nil {
		return err
	}

	elapsed := state.ElapsedSeconds + int(s.now().Sub(start).Seconds())
	if elapsed < store.MinTimeTakenSeconds {
		elapsed = store.MinTimeTakenSeconds
	}
	if elapsed > store.MaxTimeTakenSeconds {
		elapsed = store.MaxTimeTakenSeconds
	}

	if !solved {
		state.ElapsedSeconds = elapsed
		return s.saveProgress(ctx, date, state, hints)
	}

	score := puzzle.Score(p.Difficulty, elapsed, hints)
	err = s.activities.Save(ctx, s.userID, store.Activity{
		Date:             date,
		Solved:           true,
		Score:            score,
		TimeTakenSeconds: elapsed,
		Difficulty:       p.Difficulty,
		HintsUsed:        hints,
		CompletedAt:      s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("save activity: %w", err)
	}
	if err := s.progress.Delete(ctx, s.userID, date); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}

	fmt.Fprintf(s.out, "Solved! Score: %d (time %ds, hints %d)\n", score, elapsed, hints)
	return s.printStreak(ctx, today)
}

func (s *Session) saveProgress(ctx context.Context, date string, state attemptState, hints int) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	err = s.progress.Save(ctx, s.userID, store.Progress{
		Date:      date,
		State:     raw,
		HintsUsed: hints,
	})
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	fmt.Fprintln(s.out, "Progress saved.")
	return nil
}

func (s *Session) printStreak(ctx context.Context, today time.Time) error {
	activities, err := s.activities.List(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("list activities: %w", err)
	}
	stats := streak.Compute(activities, today)
	fmt.Fprintf(s.out, "Current streak: %d (longest %d)\n", stats.Current, stats.Longest)
	return nil
}

// readLine returns the next trimmed input line, or false on EOF.
func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
