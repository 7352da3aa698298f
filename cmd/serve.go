package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mamtagurjar/daily-puzzle/internal/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync service",
	Long:  "Run the sync service the CLI reconciles against. Configured via PUZZLE_* environment variables; PUZZLE_AUTH_SECRET is required.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := server.NewConfig()
		if err != nil {
			return err
		}

		if user, _ := cmd.Flags().GetString("mint-token"); user != "" {
			token := server.NewHMACAuthorizer(cfg.AuthSecret).MintToken(user, cfg.TokenTTL)
			fmt.Println(token)
			return nil
		}

		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		srv, err := server.New(cfg, logger)
		if err != nil {
			return fmt.Errorf("start sync service: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("mint-token", "", "Print a bearer token for the given user id and exit")
}
