// Package spotify provides a client library for the Spotify Web API.
//
// # Overview
//
// This package implements a read-oriented Go client for the Spotify Web
// API: typed model objects, transparent token refresh, and client-side
// rate limiting. Every request passes through one gateway that paces calls
// against a configurable window, attaches a fresh bearer token, and maps
// failures into a small error taxonomy.
//
// # Installation
//
//	go get github.com/jfmyers9/chorus/pkg/spotify
//
// # Quick Start
//
// With application credentials alone the client uses the client-credentials
// flow, which is enough for catalog lookups:
//
//	import "github.com/jfmyers9/chorus/pkg/spotify"
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	track, err := client.Tracks().Get(ctx, "6rqhFgbbKwnb9MLmUQDhG6")
//
// # User Tokens
//
// User-scoped endpoints (profile, currently playing) need a token from the
// authorization-code flow:
//
//  1. Send the user to the URL from AuthURL (or OAuthConfig.AuthCodeURL)
//  2. Exchange the redirect code for a token
//  3. Pass the token in Config.Token
//
// When the token carries a refresh token the client refreshes it
// transparently, including once after any 401, and reports every new token
// through Config.OnTokenRefresh so callers can persist it. Refreshing is
// single-flight: concurrent calls needing a token while one refresh is in
// progress reuse its result.
//
// # Rate Limiting
//
// Outbound calls share a process-wide window (Config.RateLimit, default 10
// calls per second). When the window's budget is spent, callers block until
// the next window, first come first served. A 429 from the API is honored
// via its Retry-After hint, bounded by Config.MaxRetryAfter and a small
// retry budget.
//
// # Models
//
// Methods return value objects (Track, Album, Artist, Playlist, User,
// Activity and friends) mapped from the API's JSON. Values are snapshots:
// mutating one affects nothing else. References embedded in other payloads
// arrive as partial variants (PartialArtist, PartialUser) that carry
// identity only and can be upgraded with a follow-up Get.
//
// # Error Handling
//
// Failures map into three types: *AuthError (credential or token failure),
// *RateLimitError (quota exhausted beyond the retry budget), and *APIError
// (any other non-2xx, with status and body preserved):
//
//	track, err := client.Tracks().Get(ctx, id)
//	if err != nil {
//	    var apiErr *spotify.APIError
//	    if errors.As(err, &apiErr) && apiErr.Status == 404 {
//	        // unknown id
//	    }
//	}
//
// spotify.IsNotFound(err) is shorthand for the 404 case.
//
// # Context Support
//
// All API methods accept a context.Context. Cancellation is honored while
// waiting on the rate limiter, during backoff sleeps, and for the HTTP
// exchange itself. A call abandoned mid-wait does not return its rate-limit
// slot.
//
// # Configuration
//
// The client accepts a custom HTTP client, base URL overrides for testing,
// and a zerolog logger for structured diagnostics:
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	    HTTPClient:   &http.Client{Timeout: 30 * time.Second},
//	    RateLimit:    spotify.RateLimit{Window: time.Second, MaxCalls: 5},
//	    Logger:       logger,
//	})
//
// # API Coverage
//
// Currently implemented (read-only):
//   - Tracks (single, several, audio features)
//   - Albums (single, several, tracks)
//   - Artists (single, several, albums, top tracks)
//   - Playlists (single, tracks, full pagination)
//   - Users (current profile, public profiles)
//   - Player (currently playing)
//   - Search (tracks, albums, artists, playlists)
//
// Write operations (creating playlists, modifying the library, controlling
// playback) are intentionally not provided.
package spotify
