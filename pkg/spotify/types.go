package spotify

// Image is an artwork image in one of the sizes Spotify serves.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Followers holds an artist's follower count.
type Followers struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// ExternalURLs holds known external links for an entity.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Artist is a Spotify artist.
//
// Artists embedded in album listings are simplified objects: Genres,
// Followers, Images and Popularity are zero there.
type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Genres       []string     `json:"genres"`
	Popularity   int          `json:"popularity"`
	Followers    Followers    `json:"followers"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Href         string       `json:"href"`
	URI          string       `json:"uri"`
	Type         string       `json:"type"`
}

// Album is a Spotify album as returned by the artist-albums listing.
type Album struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	AlbumType            string       `json:"album_type"`
	AlbumGroup           string       `json:"album_group"`
	ReleaseDate          string       `json:"release_date"`
	ReleaseDatePrecision string       `json:"release_date_precision"`
	TotalTracks          int          `json:"total_tracks"`
	Images               []Image      `json:"images"`
	Artists              []Artist     `json:"artists"`
	ExternalURLs         ExternalURLs `json:"external_urls"`
	Href                 string       `json:"href"`
	URI                  string       `json:"uri"`
}

// ArtistPage is a paging envelope of artists.
type ArtistPage struct {
	Href     string   `json:"href"`
	Items    []Artist `json:"items"`
	Limit    int      `json:"limit"`
	Offset   int      `json:"offset"`
	Total    int      `json:"total"`
	Next     string   `json:"next"`
	Previous string   `json:"previous"`
}

// AlbumPage is a paging envelope of albums.
type AlbumPage struct {
	Href     string  `json:"href"`
	Items    []Album `json:"items"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Total    int     `json:"total"`
	Next     string  `json:"next"`
	Previous string  `json:"previous"`
}

// HasNext reports whether another page of artists exists.
func (p *ArtistPage) HasNext() bool {
	return p.Next != ""
}

// HasNext reports whether another page of albums exists.
func (p *AlbumPage) HasNext() bool {
	return p.Next != ""
}
