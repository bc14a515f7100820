package spotify

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestAlbumService_Get(t *testing.T) {
	f := newAPIFixture(t, func(f *apiFixture, w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/albums/6dVIqQ8qmQ5GBnJ9shOYGE" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"id": "6dVIqQ8qmQ5GBnJ9shOYGE",
			"name": "OK Computer",
			"album_type": "album",
			"release_date": "1997-05-21",
			"release_date_precision": "day",
			"total_tracks": 12,
			"artists": [{"id": "4Z8W4fKeB5YxbusRsdQVPb", "name": "Radiohead"}]
		}`)
	})

	album, err := f.client.Albums().Get(context.Background(), "6dVIqQ8qmQ5GBnJ9shOYGE")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if album.Name != "OK Computer" {
		t.Errorf("name = %q, want OK Computer", album.Name)
	}
	if len(album.Artists) != 1 || album.Artists[0].Name != "Radiohead" {
		t.Errorf("artists = %+v", album.Artists)
	}
}

func TestAlbumService_Get_RequiresID(t *testing.T) {
	client := NewClient(Config{ClientID: "id", ClientSecret: "secret"})
	if _, err := client.Albums().Get(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty album ID")
	}
}
