package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spotkit/spotkit/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Spotify authentication",
	Long: `Manage the cached Spotify access token.

spotkit uses the Client Credentials flow: it exchanges your application's
client ID and secret for a short-lived access token, caches it on disk,
and renews it automatically. These subcommands inspect and control the
cached token.`,
	RunE: runAuthStatus,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status and token expiry",
	RunE:  runAuthStatus,
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a new access token",
	RunE:  runAuthRefresh,
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the cached access token",
	RunE:  runAuthClear,
}

func init() {
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRefreshCmd)
	authCmd.AddCommand(authClearCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger("", flagLogLevel)
	client, err := newSpotifyClient(cfg, logger)
	if err != nil {
		return err
	}

	if !client.Auth().HasCredentials() {
		printSetupInstructions()
		return nil
	}

	info := client.Auth().TokenInfo(ctx)
	if !info.HasToken {
		fmt.Println("No cached token. One will be fetched on the next request,")
		fmt.Println("or run 'spotkit auth refresh' to fetch one now.")
		return nil
	}

	expiresAt := time.UnixMilli(info.ExpiresAt)
	fmt.Println("Authenticated with Spotify.")
	fmt.Printf("Token expires at %s (in %s)\n",
		expiresAt.Format(time.RFC1123),
		(time.Duration(info.ExpiresIn) * time.Second).Round(time.Second))
	return nil
}

func runAuthRefresh(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger("", flagLogLevel)
	client, err := newSpotifyClient(cfg, logger)
	if err != nil {
		return err
	}

	if !client.Auth().HasCredentials() {
		printSetupInstructions()
		return fmt.Errorf("credentials not configured")
	}

	if _, err := client.Auth().Refresh(ctx); err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	info := client.Auth().TokenInfo(ctx)
	fmt.Printf("✓ New token fetched, valid for %s\n",
		(time.Duration(info.ExpiresIn) * time.Second).Round(time.Second))
	return nil
}

func runAuthClear(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger("", flagLogLevel)
	client, err := newSpotifyClient(cfg, logger)
	if err != nil {
		return err
	}

	client.Auth().Clear(ctx)
	fmt.Println("✓ Cached token cleared")
	return nil
}
