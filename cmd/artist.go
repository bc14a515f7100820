package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/spotkit/spotkit/internal/config"
	"github.com/spotkit/spotkit/pkg/spotify"
)

// artistCmd represents the artist command
var artistCmd = &cobra.Command{
	Use:   "artist <id>",
	Short: "Show details for an artist",
	Long: `Show details for a Spotify artist by ID.

Find artist IDs with 'spotkit search <query> --ids'.`,
	Args: cobra.ExactArgs(1),
	RunE: runArtist,
}

var artistAlbumsCmd = &cobra.Command{
	Use:   "albums <id>",
	Short: "List an artist's albums",
	Long: `List a Spotify artist's albums, paginated.

Use --groups to filter by release type (album, single, appears_on,
compilation) and --limit/--offset to page through the results.`,
	Args: cobra.ExactArgs(1),
	RunE: runArtistAlbums,
}

func init() {
	artistCmd.AddCommand(artistAlbumsCmd)
	rootCmd.AddCommand(artistCmd)

	artistAlbumsCmd.Flags().IntP("limit", "l", 0, "Results per page (default from config, max 50)")
	artistAlbumsCmd.Flags().IntP("offset", "o", 0, "Index of the first result")
	artistAlbumsCmd.Flags().StringP("market", "m", "", "Market code, e.g. US (overrides config)")
	artistAlbumsCmd.Flags().StringP("groups", "g", "", "Comma-separated release groups (album,single,appears_on,compilation)")
}

func runArtist(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
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

	artist, err := client.Artists().Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get artist: %w", err)
	}

	fmt.Println(artist.Name)
	fmt.Println(strings.Repeat("=", len(artist.Name)))
	fmt.Printf("ID:         %s\n", artist.ID)
	fmt.Printf("Followers:  %d\n", artist.Followers.Total)
	fmt.Printf("Popularity: %d/100\n", artist.Popularity)
	if len(artist.Genres) > 0 {
		fmt.Printf("Genres:     %s\n", strings.Join(artist.Genres, ", "))
	}
	if artist.ExternalURLs.Spotify != "" {
		fmt.Printf("Link:       %s\n", artist.ExternalURLs.Spotify)
	}
	return nil
}

func runArtistAlbums(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
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

	limit, _ := cmd.Flags().GetInt("limit")
	if limit == 0 {
		limit = cfg.PageSize
	}
	offset, _ := cmd.Flags().GetInt("offset")
	market, _ := cmd.Flags().GetString("market")
	if market == "" {
		market = cfg.Market
	}
	groups, _ := cmd.Flags().GetString("groups")

	page, err := client.Artists().Albums(ctx, args[0], spotify.AlbumParams{
		Limit:         limit,
		Offset:        offset,
		IncludeGroups: groups,
		Market:        market,
	})
	if err != nil {
		return fmt.Errorf("failed to list albums: %w", err)
	}

	if len(page.Items) == 0 {
		fmt.Println("No albums found.")
		return nil
	}

	nameWidth := 0
	for _, album := range page.Items {
		if w := runewidth.StringWidth(album.Name); w > nameWidth {
			nameWidth = w
		}
	}
	if nameWidth > 44 {
		nameWidth = 44
	}

	for _, album := range page.Items {
		fmt.Printf("%s  %-22s  %-11s  %-10s  %2d tracks\n",
			padToWidth(album.Name, nameWidth),
			album.ID,
			album.AlbumType,
			album.ReleaseDate,
			album.TotalTracks)
	}

	fmt.Printf("\nShowing %d-%d of %d", page.Offset+1, page.Offset+len(page.Items), page.Total)
	if page.HasNext() {
		fmt.Printf("  (next page: --offset %d)", page.Offset+len(page.Items))
	}
	fmt.Println()
	return nil
}
