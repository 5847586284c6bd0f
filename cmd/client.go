package cmd

import (
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/jfmyers9/chorus/internal/authflow"
	"github.com/jfmyers9/chorus/internal/config"
	"github.com/jfmyers9/chorus/pkg/spotify"
)

// newSpotifyClient builds a Web API client from the saved credentials and
// the cached token. Refreshed tokens are written back to the cache so the
// next invocation does not have to refresh again.
func newSpotifyClient(cfg *config.Config) (*spotify.Client, error) {
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return nil, fmt.Errorf("Spotify credentials not configured. Run 'chorus auth' first")
	}

	tokenFile := config.TokenFile()
	token, err := authflow.LoadToken(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("no cached token. Run 'chorus auth' first: %w", err)
	}

	return spotify.NewClient(spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		Token:        token,
		OnTokenRefresh: func(t *oauth2.Token) {
			// Best effort; a failed cache write just means a refresh on
			// the next run.
			_ = authflow.SaveToken(tokenFile, t)
		},
		RateLimit: spotify.RateLimit{
			Window:   time.Duration(cfg.Spotify.RateLimitWindowSeconds) * time.Second,
			MaxCalls: cfg.Spotify.RateLimitMaxCalls,
		},
	})
}
