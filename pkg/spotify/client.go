package spotify

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the Spotify Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// DefaultAccountsURL is the Spotify accounts service endpoint.
	DefaultAccountsURL = "https://accounts.spotify.com"

	// DefaultMaxRetryAfter caps how long a single 429 Retry-After hint may
	// ask the gateway to wait before it gives up instead.
	DefaultMaxRetryAfter = 60 * time.Second

	// Version is the library version reported in the User-Agent header.
	Version = "1.0.0"
)

// Config holds client configuration.
type Config struct {
	ClientID     string // Required unless a Token is supplied: application client ID
	ClientSecret string // Required unless a Token is supplied: application client secret

	// Token is an optional pre-existing token, typically from a completed
	// authorization-code flow. When it carries a refresh token the client
	// refreshes it transparently; without one, and without client
	// credentials, expired-token calls go out as-is and surface 401s.
	Token *oauth2.Token

	// OnTokenRefresh is called with a copy of the token after every
	// successful refresh, letting callers persist it. The hook must not
	// call back into the Client.
	OnTokenRefresh func(*oauth2.Token)

	RateLimit     RateLimit      // Optional: outbound pacing (defaults to DefaultRateLimit)
	MaxRetryAfter time.Duration  // Optional: 429 wait ceiling (defaults to DefaultMaxRetryAfter)
	HTTPClient    *http.Client   // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL       string         // Optional: API base URL override, used for testing
	AccountsURL   string         // Optional: accounts base URL override, used for testing
	UserAgent     string         // Optional: User-Agent header override
	Logger        zerolog.Logger // Optional: structured logger (silent when unset)
}

// Client is the main entry point for Spotify Web API operations.
//
// A Client owns its token manager and rate limiter; their lifetime is the
// client's, and nothing is shared through package globals.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	userAgent     string
	maxRetryAfter time.Duration
	logger        zerolog.Logger

	tokens  *tokenManager
	limiter *limiter

	tracks    *TracksService
	albums    *AlbumsService
	artists   *ArtistsService
	playlists *PlaylistsService
	users     *UsersService
	player    *PlayerService
}

// NewClient creates a new Spotify Web API client.
//
// Returns an error if neither client credentials nor a usable token are
// configured, or if the rate limit override is invalid.
func NewClient(cfg Config) (*Client, error) {
	hasToken := cfg.Token != nil && cfg.Token.AccessToken != ""
	if !hasToken {
		if cfg.ClientID == "" {
			return nil, fmt.Errorf("spotify: ClientID is required")
		}
		if cfg.ClientSecret == "" {
			return nil, fmt.Errorf("spotify: ClientSecret is required")
		}
	}
	if cfg.ClientID != "" && cfg.ClientSecret == "" {
		return nil, fmt.Errorf("spotify: ClientSecret is required")
	}
	if cfg.RateLimit.Window < 0 || cfg.RateLimit.MaxCalls < 0 {
		return nil, fmt.Errorf("spotify: RateLimit values must not be negative")
	}

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

	rl := cfg.RateLimit
	if rl.Window == 0 {
		rl.Window = DefaultRateLimit.Window
	}
	if rl.MaxCalls == 0 {
		rl.MaxCalls = DefaultRateLimit.MaxCalls
	}

	maxRetryAfter := cfg.MaxRetryAfter
	if maxRetryAfter == 0 {
		maxRetryAfter = DefaultMaxRetryAfter
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "chorus/" + Version
	}

	c := &Client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		userAgent:     userAgent,
		maxRetryAfter: maxRetryAfter,
		logger:        cfg.Logger.With().Str("component", "spotify").Logger(),
	}

	c.tokens = &tokenManager{
		token:        cloneToken(cfg.Token),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		accountsURL:  accountsURL,
		httpClient:   httpClient,
		onRefresh:    cfg.OnTokenRefresh,
		logger:       cfg.Logger.With().Str("component", "token").Logger(),
		now:          time.Now,
	}
	c.limiter = newLimiter(rl, cfg.Logger)

	c.tracks = &TracksService{client: c}
	c.albums = &AlbumsService{client: c}
	c.artists = &ArtistsService{client: c}
	c.playlists = &PlaylistsService{client: c}
	c.users = &UsersService{client: c}
	c.player = &PlayerService{client: c}

	return c, nil
}

// Tracks returns the track lookup service.
func (c *Client) Tracks() *TracksService {
	return c.tracks
}

// Albums returns the album lookup service.
func (c *Client) Albums() *AlbumsService {
	return c.albums
}

// Artists returns the artist lookup service.
func (c *Client) Artists() *ArtistsService {
	return c.artists
}

// Playlists returns the playlist lookup service.
func (c *Client) Playlists() *PlaylistsService {
	return c.playlists
}

// Users returns the user profile service.
func (c *Client) Users() *UsersService {
	return c.users
}

// Player returns the playback state service.
func (c *Client) Player() *PlayerService {
	return c.player
}

// PageOptions selects a page for the list endpoints.
type PageOptions struct {
	Limit  int // Page size, 0 for the API default
	Offset int // Index of the first item
}

func (o PageOptions) values() url.Values {
	q := url.Values{}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	return q
}
