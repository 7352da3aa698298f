package cmd

import (
	"fmt"
	"time"

	"github.com/Mamtagurjar/daily-puzzle/internal/heatmap"
	"github.com/Mamtagurjar/daily-puzzle/internal/store"
	"github.com/Mamtagurjar/daily-puzzle/internal/streak"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streaks and score statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		sess, err := currentSession()
		if err != nil {
			return err
		}

		activities, err := st.Activities().List(cmd.Context(), sess.UserID)
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}

		now := time.Now()
		stats := streak.Compute(activities, now)

		total := 0
		scoreSum := 0
		for _, a := range activities {
			if a.Solved {
				total++
				scoreSum += a.Score
			}
		}
		avg := 0.0
		if total > 0 {
			avg = float64(scoreSum) / float64(total)
		}

		fmt.Printf("Puzzles solved:  %d\n", total)
		fmt.Printf("Average score:   %.1f\n", avg)
		fmt.Printf("Current streak:  %d", stats.Current)
		if stats.Active {
			fmt.Print(" (active)")
		}
		fmt.Println()
		fmt.Printf("Longest streak:  %d\n", stats.Longest)

		levels := heatmap.LevelCounts(heatmap.Year(activities, now))
		fmt.Print("Last 365 days:   ")
		for lvl, n := range levels {
			if lvl > 0 {
				fmt.Print("  ")
			}
			fmt.Printf("L%d:%d", lvl, n)
		}
		fmt.Println()
		return nil
	},
}
