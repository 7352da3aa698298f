package cmd

import (
	"fmt"

	"github.com/Mamtagurjar/daily-puzzle/internal/auth"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <user-id> <token>",
	Short: "Store sync credentials for this device",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := auth.DefaultStateDir()
		if err != nil {
			return fmt.Errorf("resolve state dir: %w", err)
		}

		sess, err := auth.NewManager(dir).Login(args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s. Run 'dailypuzzle sync' to reconcile.\n", sess.UserID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored sync credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := auth.DefaultStateDir()
		if err != nil {
			return fmt.Errorf("resolve state dir: %w", err)
		}
		if err := auth.NewManager(dir).Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out. Local activity stays on this device.")
		return nil
	},
}
