package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotkit",
	Short: "Explore Spotify artists from the terminal",
	Long: `spotkit is a terminal client for exploring Spotify artists.

It searches artists, shows artist details, pages through an artist's
albums, and keeps a local list of bookmarked albums.

spotkit authenticates with the Spotify Client Credentials flow using
your application's client ID and secret, caches the access token on
disk, and renews it automatically before it expires.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
