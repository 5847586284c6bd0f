package spotify

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

// newTestClient builds a client against a throwaway test server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		Token:     staticToken("test-token"),
		BaseURL:   server.URL,
		RateLimit: testRateLimit,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantErr     bool
		errContains string
	}{
		{
			name:        "missing credentials",
			cfg:         Config{},
			wantErr:     true,
			errContains: "ClientID is required",
		},
		{
			name:        "missing secret",
			cfg:         Config{ClientID: "id"},
			wantErr:     true,
			errContains: "ClientSecret is required",
		},
		{
			name:        "missing id",
			cfg:         Config{ClientSecret: "secret"},
			wantErr:     true,
			errContains: "ClientID is required",
		},
		{
			name: "token only",
			cfg:  Config{Token: &oauth2.Token{AccessToken: "tok"}},
		},
		{
			name: "token with dangling id",
			cfg: Config{
				ClientID: "id",
				Token:    &oauth2.Token{AccessToken: "tok"},
			},
			wantErr:     true,
			errContains: "ClientSecret is required",
		},
		{
			name: "negative rate limit",
			cfg: Config{
				ClientID:     "id",
				ClientSecret: "secret",
				RateLimit:    RateLimit{Window: -time.Second, MaxCalls: 5},
			},
			wantErr:     true,
			errContains: "must not be negative",
		},
		{
			name: "client credentials",
			cfg:  Config{ClientID: "id", ClientSecret: "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error to contain %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client == nil {
				t.Fatal("expected client, got nil")
			}
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{Token: &oauth2.Token{AccessToken: "tok"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("expected base URL %s, got %s", DefaultBaseURL, client.baseURL)
	}
	if want := "chorus/" + Version; client.userAgent != want {
		t.Errorf("expected user agent %s, got %s", want, client.userAgent)
	}
	if client.maxRetryAfter != DefaultMaxRetryAfter {
		t.Errorf("expected max retry-after %s, got %s", DefaultMaxRetryAfter, client.maxRetryAfter)
	}
	if client.limiter.window != DefaultRateLimit.Window || client.limiter.max != DefaultRateLimit.MaxCalls {
		t.Errorf("expected default rate limit, got %s/%d", client.limiter.window, client.limiter.max)
	}

	if client.Tracks() == nil || client.Albums() == nil || client.Artists() == nil ||
		client.Playlists() == nil || client.Users() == nil || client.Player() == nil {
		t.Error("expected every service to be wired")
	}
}

func TestNewClientOverrides(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:      "id",
		ClientSecret:  "secret",
		RateLimit:     RateLimit{Window: 5 * time.Second, MaxCalls: 3},
		MaxRetryAfter: 10 * time.Second,
		UserAgent:     "my-app/2.1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.userAgent != "my-app/2.1" {
		t.Errorf("expected custom user agent, got %s", client.userAgent)
	}
	if client.maxRetryAfter != 10*time.Second {
		t.Errorf("expected max retry-after 10s, got %s", client.maxRetryAfter)
	}
	if client.limiter.window != 5*time.Second || client.limiter.max != 3 {
		t.Errorf("expected custom rate limit, got %s/%d", client.limiter.window, client.limiter.max)
	}
}

func TestPageOptionsValues(t *testing.T) {
	tests := []struct {
		name string
		opts PageOptions
		want string
	}{
		{"zero options", PageOptions{}, ""},
		{"limit only", PageOptions{Limit: 50}, "limit=50"},
		{"offset only", PageOptions{Offset: 100}, "offset=100"},
		{"both", PageOptions{Limit: 20, Offset: 40}, "limit=20&offset=40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.values().Encode(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func ExampleNewClient() {
	client, err := NewClient(Config{
		ClientID:     "your-client-id",
		ClientSecret: "your-client-secret",
	})
	if err != nil {
		log.Fatal(err)
	}

	track, err := client.Tracks().Get(context.Background(), "6rqhFgbbKwnb9MLmUQDhG6")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s by %s\n", track.Name, track.Artists[0].Name)
}

func ExampleNewClient_userToken() {
	// A token from a completed authorization-code flow refreshes
	// transparently; the hook persists each rotation.
	client, err := NewClient(Config{
		ClientID:     "your-client-id",
		ClientSecret: "your-client-secret",
		Token: &oauth2.Token{
			AccessToken:  "stored-access-token",
			RefreshToken: "stored-refresh-token",
		},
		OnTokenRefresh: func(tok *oauth2.Token) {
			log.Printf("new token expires %s", tok.Expiry)
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	me, err := client.Users().Me(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("logged in as %s\n", me.DisplayName)
}

func ExampleClient_Search() {
	client, err := NewClient(Config{
		ClientID:     "your-client-id",
		ClientSecret: "your-client-secret",
	})
	if err != nil {
		log.Fatal(err)
	}

	result, err := client.Search(context.Background(), "dark side of the moon", SearchOptions{
		Types: []SearchType{SearchTypeAlbum},
		Limit: 5,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, album := range result.Albums.Items {
		fmt.Printf("%s (%d)\n", album.Name, album.ReleaseDate.Year())
	}
}
