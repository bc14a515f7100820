package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spotkit/spotkit/internal/config"
	"github.com/spotkit/spotkit/internal/library"
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage locally saved albums",
	Long: `Manage the local list of bookmarked albums.

Saved albums live in a local database; nothing is written to your
Spotify account.`,
	RunE: runLibraryList,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved albums",
	RunE:  runLibraryList,
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <album-id>",
	Short: "Save an album",
	Long: `Save an album to the local library.

The album name and artist are fetched from Spotify. Use --name and
--artist to skip the lookup, and --notes to attach a note.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibraryAdd,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <album-id>",
	Short: "Remove a saved album",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemove,
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)

	libraryAddCmd.Flags().String("name", "", "Album name (skips the Spotify lookup)")
	libraryAddCmd.Flags().String("artist", "", "Artist name (skips the Spotify lookup)")
	libraryAddCmd.Flags().String("notes", "", "Attach a note to the bookmark")
}

func openLibrary() (*library.Library, error) {
	path, err := libraryPath()
	if err != nil {
		return nil, err
	}
	lib, err := library.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return lib, nil
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	albums, err := lib.List(ctx)
	if err != nil {
		return err
	}

	if len(albums) == 0 {
		fmt.Println("No saved albums. Use 'spotkit library add <album-id>' to save one.")
		return nil
	}

	for _, album := range albums {
		fmt.Printf("%s  %s - %s  (saved %s)\n",
			album.ID,
			album.Artist,
			album.Name,
			album.SavedAt.Format("2006-01-02"))
		if album.Notes != "" {
			fmt.Printf("    %s\n", album.Notes)
		}
	}
	return nil
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	id := args[0]
	name, _ := cmd.Flags().GetString("name")
	artist, _ := cmd.Flags().GetString("artist")
	notes, _ := cmd.Flags().GetString("notes")

	// Look up the album unless both fields were supplied on the command line.
	if name == "" || artist == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cfg.HasCredentials() {
			printSetupInstructions()
			return fmt.Errorf("missing credentials (or pass --name and --artist)")
		}

		client, err := newSpotifyClient(cfg, setupLogger("", flagLogLevel))
		if err != nil {
			return err
		}

		album, err := client.Albums().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to look up album: %w", err)
		}
		if name == "" {
			name = album.Name
		}
		if artist == "" {
			names := make([]string, 0, len(album.Artists))
			for _, a := range album.Artists {
				names = append(names, a.Name)
			}
			artist = strings.Join(names, ", ")
		}
	}

	entry := library.SavedAlbum{
		ID:     id,
		Name:   name,
		Artist: artist,
		Notes:  notes,
	}
	if err := lib.Save(ctx, entry); err != nil {
		return err
	}

	fmt.Printf("✓ Saved %s - %s\n", entry.Artist, entry.Name)
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.Remove(ctx, args[0]); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			return fmt.Errorf("no saved album with ID %s", args[0])
		}
		return err
	}

	fmt.Println("✓ Removed")
	return nil
}
