// Package authflow runs the browser-based authorization-code flow and
// caches the resulting token on disk.
package authflow

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/jfmyers9/chorus/pkg/spotify"
)

// DefaultScopes covers everything the bundled commands need.
var DefaultScopes = []string{
	spotify.ScopeUserReadPrivate,
	spotify.ScopeUserReadEmail,
	spotify.ScopeUserReadCurrentlyPlaying,
	spotify.ScopeUserReadPlaybackState,
	spotify.ScopeUserReadRecentlyPlayed,
	spotify.ScopeUserTopRead,
	spotify.ScopePlaylistReadPrivate,
	spotify.ScopePlaylistReadCollaborative,
}

// Config holds the flow's settings.
type Config struct {
	ClientID     string         // Required: application client ID
	ClientSecret string         // Required: application client secret
	Port         int            // Optional: callback port (0 picks a free one)
	Scopes       []string       // Optional: requested scopes (defaults to DefaultScopes)
	Logger       zerolog.Logger // Optional: structured logger
}

// Flow is a one-shot authorization-code exchange backed by a local
// callback server. The redirect URI is http://127.0.0.1:<port>/callback
// and must be registered on the Spotify application.
type Flow struct {
	oauth    *oauth2.Config
	state    string
	listener net.Listener
	logger   zerolog.Logger
}

type callbackResult struct {
	code string
	err  error
}

// New binds the callback port and prepares the authorization URL. Call
// Wait to serve the callback and complete the exchange.
func New(cfg Config) (*Flow, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("authflow: client id and secret are required")
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("authflow: failed to bind callback port: %w", err)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	redirectURI := fmt.Sprintf("http://%s/callback", listener.Addr().String())

	return &Flow{
		oauth:    spotify.OAuthConfig(cfg.ClientID, cfg.ClientSecret, redirectURI, scopes),
		state:    uuid.New().String(),
		listener: listener,
		logger:   cfg.Logger.With().Str("component", "authflow").Logger(),
	}, nil
}

// AuthURL returns the URL the user must open to authorize the application.
func (f *Flow) AuthURL() string {
	return f.oauth.AuthCodeURL(f.state)
}

// Wait serves the callback until the authorization code arrives, then
// exchanges it for a token. It returns the context's error if the user
// never completes the flow.
func (f *Flow) Wait(ctx context.Context) (*oauth2.Token, error) {
	results := make(chan callbackResult, 1)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Get("/callback", f.callbackHandler(results))

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(f.listener); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	f.logger.Info().Str("addr", f.listener.Addr().String()).Msg("Waiting for authorization callback")

	var code string
	select {
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		code = res.code
	case err := <-serveErr:
		return nil, fmt.Errorf("authflow: callback server failed: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("authflow: code exchange failed: %w", err)
	}

	f.logger.Info().Time("expiry", token.Expiry).Msg("Authorization complete")
	return token, nil
}

func (f *Flow) callbackHandler(results chan<- callbackResult) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if errName := query.Get("error"); errName != "" {
			http.Error(w, "Authorization was denied. You can close this tab.", http.StatusForbidden)
			results <- callbackResult{err: fmt.Errorf("authflow: authorization denied: %s", errName)}
			return
		}
		if query.Get("state") != f.state {
			http.Error(w, "State mismatch. You can close this tab.", http.StatusForbidden)
			results <- callbackResult{err: fmt.Errorf("authflow: state mismatch on callback")}
			return
		}
		code := query.Get("code")
		if code == "" {
			http.Error(w, "Missing authorization code.", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("authflow: callback carried no code")}
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, "<html><body><h2>Authorization complete</h2><p>You can close this tab and return to the terminal.</p></body></html>")
		results <- callbackResult{code: code}
	}
}
