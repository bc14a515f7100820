package spotify

import (
	"net/http"
)

// Config holds client configuration.
type Config struct {
	ClientID     string       // Spotify application client ID
	ClientSecret string       // Spotify application client secret
	TokenStore   TokenStore   // Optional: durable token storage (defaults to in-memory)
	HTTPClient   *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL      string       // Optional: Web API base URL (used for testing)
	AccountsURL  string       // Optional: token endpoint URL (used for testing)
	Logger       Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Spotify Web API operations.
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	baseURL      string
	accountsURL  string
	logger       Logger

	auth    *AuthService
	search  *SearchService
	artists *ArtistService
	albums  *AlbumService
}

const (
	// DefaultBaseURL is the default Spotify Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// DefaultAccountsURL is the default Spotify token endpoint.
	DefaultAccountsURL = "https://accounts.spotify.com/api/token"
)

// NewClient creates a new Spotify Web API client.
//
// Missing credentials are not an error at construction time: the client is
// still usable for credential checks, and operations that need a token fail
// with ErrMissingCredentials when invoked.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	accountsURL := cfg.AccountsURL
	if accountsURL == "" {
		accountsURL = DefaultAccountsURL
	}

	store := cfg.TokenStore
	if store == nil {
		store = NewMemoryTokenStore()
	}

	c := &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
		baseURL:      baseURL,
		accountsURL:  accountsURL,
		logger:       cfg.Logger,
	}

	c.auth = &AuthService{client: c, store: store}
	c.search = &SearchService{client: c}
	c.artists = &ArtistService{client: c}
	c.albums = &AlbumService{client: c}

	return c
}

// Auth returns the token authority service.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return c.search
}

// Artists returns the artist service.
func (c *Client) Artists() *ArtistService {
	return c.artists
}

// Albums returns the album service.
func (c *Client) Albums() *AlbumService {
	return c.albums
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
