package cmd

import (
	"fmt"
	"os"

	"github.com/Mamtagurjar/daily-puzzle/internal/auth"
	"github.com/Mamtagurjar/daily-puzzle/internal/game"
	"github.com/Mamtagurjar/daily-puzzle/internal/puzzle"
	"github.com/Mamtagurjar/daily-puzzle/internal/store"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play today's puzzle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func runPlay(cmd *cobra.Command) error {
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

	gen := puzzle.NewGenerator(puzzleSecret())
	session := game.New(gen, st, sess.UserID, os.Stdin, os.Stdout)
	return session.Play(cmd.Context())
}

// puzzleSecret returns the generation secret, overridable for private
// leagues running their own sync service.
func puzzleSecret() string {
	if s := os.Getenv("DAILYPUZZLE_SECRET"); s != "" {
		return s
	}
	return game.DefaultSecret
}

// currentSession loads the active session from the default state directory.
func currentSession() (*auth.Session, error) {
	dir, err := auth.DefaultStateDir()
	if err != nil {
		return nil, fmt.Errorf("resolve state dir: %w", err)
	}
	sess, err := auth.NewManager(dir).Current()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}
