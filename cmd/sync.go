package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Mamtagurjar/daily-puzzle/internal/auth"
	"github.com/Mamtagurjar/daily-puzzle/internal/store"
	"github.com/Mamtagurjar/daily-puzzle/internal/sync"
	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:8787"

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the local activity log with the sync service",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := auth.DefaultStateDir()
		if err != nil {
			return fmt.Errorf("resolve state dir: %w", err)
		}
		mgr := auth.NewManager(dir)
		sess, err := mgr.Current()
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if sess.IsGuest() {
			fmt.Println("Playing as guest; nothing to sync. Run 'dailypuzzle login' first.")
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		client := sync.NewHTTPClient(serverURL(cmd), sess.Token)
		engine := sync.NewEngine(st.Activities(), client)
		cur := sync.NewCursor(sess.PullDone)

		res, runErr := engine.Run(cmd.Context(), sess, cur)

		// A successful pull is remembered even if we then fail elsewhere.
		if cur.Pulled() && !sess.PullDone {
			sess.PullDone = true
			if err := mgr.Save(sess); err != nil {
				return fmt.Errorf("persist sync cursor: %w", err)
			}
		}

		if runErr != nil {
			return describeSyncError(runErr)
		}

		fmt.Printf("Sync complete: pushed %d, pulled %d.\n", res.Pushed, res.Pulled)
		return nil
	},
}

func init() {
	syncCmd.Flags().String("server", "", "Sync service base URL (overrides DAILYPUZZLE_SERVER env var)")
}

func serverURL(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("server"); u != "" {
		return u
	}
	if u := os.Getenv("DAILYPUZZLE_SERVER"); u != "" {
		return u
	}
	return defaultServerURL
}

// describeSyncError keeps the raw error but prefixes it with what the player
// should do about it.
func describeSyncError(err error) error {
	var (
		connErr *sync.ConnectivityError
		authErr *sync.AuthError
	)
	switch {
	case errors.Is(err, sync.ErrBusy):
		return errors.New("a sync is already running")
	case errors.As(err, &connErr):
		return fmt.Errorf("sync service unreachable, your progress is safe locally: %w", err)
	case errors.As(err, &authErr):
		return fmt.Errorf("session rejected, run 'dailypuzzle login' again: %w", err)
	default:
		return err
	}
}
