package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/spotkit/spotkit/internal/config"
	"github.com/spotkit/spotkit/internal/tokenstore"
	"github.com/spotkit/spotkit/pkg/spotify"
)

var (
	flagDataDir  string
	flagLogLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "",
		"Data directory for the token cache and saved albums (default: ~/.local/share/spotkit)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn",
		"Log level (debug, info, warn, error)")
}

// dataDir resolves the data directory and makes sure it exists
func dataDir() (string, error) {
	dir := flagDataDir
	if dir == "" {
		dir = config.GetDataDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// libraryPath returns the saved-albums database path
func libraryPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "library.db"), nil
}

// newSpotifyClient builds the API client with the file-backed token store
func newSpotifyClient(cfg *config.Config, logger zerolog.Logger) (*spotify.Client, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}

	store, err := tokenstore.NewFile(filepath.Join(dir, "token.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to create token store: %w", err)
	}

	return spotify.NewClient(spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		TokenStore:   store,
		Logger:       sdkLogger{logger},
	}), nil
}

// sdkLogger adapts zerolog to the SDK's Logger interface
type sdkLogger struct {
	logger zerolog.Logger
}

func (l sdkLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.WarnLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	case "disabled":
		level = zerolog.Disabled
	}

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	// Create logger
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return logger
}

// printSetupInstructions explains how to configure credentials when they
// are missing
func printSetupInstructions() {
	fmt.Println("Spotify credentials are not configured.")
	fmt.Println()
	fmt.Println("Create an application at https://developer.spotify.com/dashboard and")
	fmt.Println("set its client ID and secret, either in the config file")
	fmt.Printf("(%s/config.yaml):\n", config.GetConfigDir())
	fmt.Println()
	fmt.Println("  spotify:")
	fmt.Println("    client_id: your-client-id")
	fmt.Println("    client_secret: your-client-secret")
	fmt.Println()
	fmt.Println("or via environment variables:")
	fmt.Println()
	fmt.Println("  export SPOTKIT_SPOTIFY_CLIENT_ID=your-client-id")
	fmt.Println("  export SPOTKIT_SPOTIFY_CLIENT_SECRET=your-client-secret")
}
