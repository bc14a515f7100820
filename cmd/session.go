package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/spotkit/spotkit/internal/config"
	"github.com/spotkit/spotkit/internal/session"
)

var (
	sessionLogFile  string
	sessionInterval time.Duration
)

// sessionCmd represents the session command
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run the session controller in the foreground",
	Long: `Run the authentication session controller in the foreground.

The controller will:
- Authenticate with Spotify on startup
- Renew the token shortly before it expires
- Periodically reconcile its view of the cached token
- Handle graceful shutdown on SIGINT/SIGTERM

This is mostly useful for keeping the shared token cache warm and for
debugging token lifecycle issues with --log-level debug.`,
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)

	sessionCmd.Flags().StringVar(&sessionLogFile, "log-file", "", "Log file path (default: stderr)")
	sessionCmd.Flags().DurationVar(&sessionInterval, "reconcile-interval", session.DefaultReconcileInterval,
		"How often to re-read token state")
}

func runSession(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if !cfg.HasCredentials() {
		printSetupInstructions()
		return fmt.Errorf("spotify credentials not configured")
	}

	// Set up logging
	logger := setupLogger(sessionLogFile, flagLogLevel)

	logger.Info().
		Str("version", version).
		Msg("Starting spotkit session controller")

	client, err := newSpotifyClient(cfg, logger)
	if err != nil {
		return err
	}

	controller := session.New(client.Auth(), session.Config{
		ReconcileInterval: sessionInterval,
	}, logger)

	// Run until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := controller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("session controller error: %w", err)
	}

	if state := controller.State(); state.Err != "" {
		logger.Warn().Str("error", state.Err).Msg("Session ended in a failed state")
	}

	logger.Info().Msg("Session controller stopped")
	return nil
}
