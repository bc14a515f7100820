package spotify

import (
	"context"
	"fmt"
	"net/url"
)

// AlbumService provides album detail operations.
type AlbumService struct {
	client *Client
}

// Get fetches the full album object for the given Spotify album ID.
func (s *AlbumService) Get(ctx context.Context, id string) (*Album, error) {
	if id == "" {
		return nil, fmt.Errorf("spotify: album ID is required")
	}

	var album Album
	if err := s.client.get(ctx, "/albums/"+url.PathEscape(id), nil, &album); err != nil {
		return nil, err
	}

	return &album, nil
}
