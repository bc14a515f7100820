package spotify

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestSearchService_Artists(t *testing.T) {
	f := newAPIFixture(t, func(f *apiFixture, w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "nirvana" {
			t.Errorf("q = %q, want nirvana", q.Get("q"))
		}
		if q.Get("type") != "artist" {
			t.Errorf("type = %q, want artist", q.Get("type"))
		}
		if q.Get("limit") != "10" {
			t.Errorf("limit = %q, want 10", q.Get("limit"))
		}
		if q.Get("offset") != "20" {
			t.Errorf("offset = %q, want 20", q.Get("offset"))
		}
		if q.Get("market") != "US" {
			t.Errorf("market = %q, want US", q.Get("market"))
		}

		fmt.Fprint(w, `{
			"artists": {
				"href": "https://api.spotify.com/v1/search?q=nirvana",
				"items": [
					{"id": "a1", "name": "Nirvana", "popularity": 82,
					 "genres": ["grunge", "rock"],
					 "followers": {"total": 1234567}},
					{"id": "a2", "name": "Nirvana Sitar Orchestra", "popularity": 12,
					 "followers": {"total": 89}}
				],
				"limit": 10, "offset": 20, "total": 55,
				"next": "https://api.spotify.com/v1/search?offset=30",
				"previous": "https://api.spotify.com/v1/search?offset=10"
			}
		}`)
	})

	page, err := f.client.Search().Artists(context.Background(), SearchParams{
		Query:  "nirvana",
		Limit:  10,
		Offset: 20,
		Market: "US",
	})
	if err != nil {
		t.Fatalf("Artists failed: %v", err)
	}

	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	if page.Items[0].Name != "Nirvana" || page.Items[0].Followers.Total != 1234567 {
		t.Errorf("unexpected first artist: %+v", page.Items[0])
	}
	if page.Total != 55 {
		t.Errorf("total = %d, want 55", page.Total)
	}
	if !page.HasNext() {
		t.Error("HasNext() = false, want true")
	}
}

func TestSearchService_Artists_RequiresQuery(t *testing.T) {
	client := NewClient(Config{ClientID: "id", ClientSecret: "secret"})
	if _, err := client.Search().Artists(context.Background(), SearchParams{}); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearchService_Artists_OmitsDefaultParams(t *testing.T) {
	f := newAPIFixture(t, func(f *apiFixture, w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		for _, key := range []string{"limit", "offset", "market"} {
			if q.Has(key) {
				t.Errorf("expected %s to be omitted, got %q", key, q.Get(key))
			}
		}
		fmt.Fprint(w, `{"artists": {"items": [], "total": 0}}`)
	})

	page, err := f.client.Search().Artists(context.Background(), SearchParams{Query: "x"})
	if err != nil {
		t.Fatalf("Artists failed: %v", err)
	}
	if page.HasNext() {
		t.Error("HasNext() = true for last page")
	}
}
