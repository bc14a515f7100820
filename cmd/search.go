package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/spotkit/spotkit/internal/config"
	"github.com/spotkit/spotkit/pkg/spotify"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search Spotify for artists",
	Long: `Search Spotify for artists matching the query.

Each result row can be formatted with a Go template via --format
(or output_format in ~/.config/spotkit/config.yaml). Available fields:
.ID, .Name, .Popularity, .Genres, .Followers.Total

Use --limit and --offset to page through results.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("limit", "l", 0, "Results per page (default from config, max 50)")
	searchCmd.Flags().IntP("offset", "o", 0, "Index of the first result")
	searchCmd.Flags().StringP("market", "m", "", "Market code, e.g. US (overrides config)")
	searchCmd.Flags().StringP("format", "f", "", "Row format template (overrides config)")
	searchCmd.Flags().Bool("ids", false, "Print only artist IDs")
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	page, err := client.Search().Artists(ctx, spotify.SearchParams{
		Query:  args[0],
		Limit:  limit,
		Offset: offset,
		Market: market,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(page.Items) == 0 {
		fmt.Println("No artists found.")
		return nil
	}

	if ids, _ := cmd.Flags().GetBool("ids"); ids {
		for _, artist := range page.Items {
			fmt.Println(artist.ID)
		}
		return nil
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	if formatFlag != "" || cfg.OutputFormat != "{{.Name}}" {
		tmplStr := formatFlag
		if tmplStr == "" {
			tmplStr = cfg.OutputFormat
		}
		for _, artist := range page.Items {
			row, err := formatArtist(&artist, tmplStr)
			if err != nil {
				return err
			}
			fmt.Println(row)
		}
	} else {
		printArtistTable(page.Items)
	}

	fmt.Printf("\nShowing %d-%d of %d", page.Offset+1, page.Offset+len(page.Items), page.Total)
	if page.HasNext() {
		fmt.Printf("  (next page: --offset %d)", page.Offset+len(page.Items))
	}
	fmt.Println()
	return nil
}

// printArtistTable renders the default aligned listing
func printArtistTable(artists []spotify.Artist) {
	nameWidth := 0
	for _, artist := range artists {
		if w := runewidth.StringWidth(artist.Name); w > nameWidth {
			nameWidth = w
		}
	}
	if nameWidth > 40 {
		nameWidth = 40
	}

	for _, artist := range artists {
		genres := strings.Join(artist.Genres, ", ")
		fmt.Printf("%s  %-22s  %9d followers  %s\n",
			padToWidth(artist.Name, nameWidth),
			artist.ID,
			artist.Followers.Total,
			genres)
	}
}

// formatArtist applies the template to the artist data
func formatArtist(artist *spotify.Artist, templateStr string) (string, error) {
	tmpl, err := template.New("output").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, artist); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text // no padding requested
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Ensure we're exactly at the target width (in case truncate was imprecise)
		resultWidth := runewidth.StringWidth(result)
		if resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		} else if resultWidth > width {
			return runewidth.Truncate(result, width, "")
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text // exactly the right width
}
