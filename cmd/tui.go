package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/spotkit/spotkit/internal/config"
	"github.com/spotkit/spotkit/internal/session"
	"github.com/spotkit/spotkit/internal/tui"
)

var tuiLogFile string

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse artists and albums in a terminal UI",
	Long: `Browse Spotify artists and their albums in a terminal-based user interface.

The TUI includes:
- An artist search box with a result list
- An album table for the selected artist, with paging
- A status bar showing authentication state and token expiry
- Saving albums to the local library

Keys: Tab cycles focus, / focuses search, s saves the selected album,
] and [ page through albums, q quits.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "Log file path (default: logging disabled)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if !cfg.HasCredentials() {
		printSetupInstructions()
		return fmt.Errorf("spotify credentials not configured")
	}

	// Logging to stderr would corrupt the screen, so discard logs unless a
	// file was given.
	logLevel := flagLogLevel
	if tuiLogFile == "" {
		logLevel = "disabled"
	}
	logger := setupLogger(tuiLogFile, logLevel)

	client, err := newSpotifyClient(cfg, logger)
	if err != nil {
		return err
	}

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	controller := session.New(client.Auth(), session.Config{}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Keep the token fresh for the lifetime of the UI.
	go controller.Run(ctx)

	app := tui.New(tui.Config{
		RefreshRate: time.Second,
		PageSize:    cfg.PageSize,
		Market:      cfg.Market,
	}, client, controller, lib)

	return app.Run(ctx)
}
