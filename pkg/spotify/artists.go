package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ArtistService provides artist detail and album listing operations.
type ArtistService struct {
	client *Client
}

// AlbumParams are the parameters for listing an artist's albums.
type AlbumParams struct {
	Limit         int    // Optional: results per page (Spotify default 20, max 50)
	Offset        int    // Optional: index of the first result
	IncludeGroups string // Optional: comma-separated filter (album,single,appears_on,compilation)
	Market        string // Optional: ISO 3166-1 alpha-2 market code
}

// Get fetches the full artist object for the given Spotify artist ID.
func (s *ArtistService) Get(ctx context.Context, id string) (*Artist, error) {
	if id == "" {
		return nil, fmt.Errorf("spotify: artist ID is required")
	}

	var artist Artist
	if err := s.client.get(ctx, "/artists/"+url.PathEscape(id), nil, &artist); err != nil {
		return nil, err
	}

	return &artist, nil
}

// Albums lists the artist's albums, paginated.
//
// Example:
//
//	page, err := client.Artists().Albums(ctx, artistID, spotify.AlbumParams{
//	    Limit:         20,
//	    IncludeGroups: "album,single",
//	})
func (s *ArtistService) Albums(ctx context.Context, id string, params AlbumParams) (*AlbumPage, error) {
	if id == "" {
		return nil, fmt.Errorf("spotify: artist ID is required")
	}

	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.IncludeGroups != "" {
		query.Set("include_groups", params.IncludeGroups)
	}
	if params.Market != "" {
		query.Set("market", params.Market)
	}

	var page AlbumPage
	if err := s.client.get(ctx, "/artists/"+url.PathEscape(id)+"/albums", query, &page); err != nil {
		return nil, err
	}

	return &page, nil
}
