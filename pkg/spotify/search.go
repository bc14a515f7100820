package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchService provides search operations for the Spotify Web API.
type SearchService struct {
	client *Client
}

// SearchParams are the parameters for an artist search.
type SearchParams struct {
	Query  string // Required: search term
	Limit  int    // Optional: results per page (Spotify default 20, max 50)
	Offset int    // Optional: index of the first result
	Market string // Optional: ISO 3166-1 alpha-2 market code
}

// searchResponse is the search endpoint's envelope for artist queries.
type searchResponse struct {
	Artists ArtistPage `json:"artists"`
}

// Artists searches Spotify for artists matching the query.
//
// Example:
//
//	page, err := client.Search().Artists(ctx, spotify.SearchParams{
//	    Query: "radiohead",
//	    Limit: 10,
//	})
func (s *SearchService) Artists(ctx context.Context, params SearchParams) (*ArtistPage, error) {
	if params.Query == "" {
		return nil, fmt.Errorf("spotify: search query is required")
	}

	query := url.Values{}
	query.Set("q", params.Query)
	query.Set("type", "artist")
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.Market != "" {
		query.Set("market", params.Market)
	}

	var resp searchResponse
	if err := s.client.get(ctx, "/search", query, &resp); err != nil {
		return nil, err
	}

	return &resp.Artists, nil
}
