package authflow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func newTestFlow(t *testing.T) *Flow {
	t.Helper()
	f, err := New(Config{ClientID: "test-id", ClientSecret: "test-secret", Port: 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func callbackURL(f *Flow, query string) string {
	return fmt.Sprintf("http://%s/callback?%s", f.listener.Addr().String(), query)
}

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing credentials")
	}
	if _, err := New(Config{ClientID: "id"}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestAuthURL(t *testing.T) {
	f := newTestFlow(t)

	u, err := url.Parse(f.AuthURL())
	if err != nil {
		t.Fatalf("failed to parse auth URL: %v", err)
	}

	q := u.Query()
	if q.Get("client_id") != "test-id" {
		t.Errorf("unexpected client_id %s", q.Get("client_id"))
	}
	if q.Get("state") == "" {
		t.Error("expected a state nonce")
	}
	if !strings.HasPrefix(q.Get("redirect_uri"), "http://127.0.0.1:") {
		t.Errorf("unexpected redirect_uri %s", q.Get("redirect_uri"))
	}
	if !strings.Contains(q.Get("scope"), "user-read-currently-playing") {
		t.Errorf("expected default scopes, got %s", q.Get("scope"))
	}
}

func TestFlowCompletes(t *testing.T) {
	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if grant := r.FormValue("grant_type"); grant != "authorization_code" {
			t.Errorf("expected grant_type authorization_code, got %s", grant)
		}
		if code := r.FormValue("code"); code != "auth-code" {
			t.Errorf("expected code auth-code, got %s", code)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"user-token","token_type":"Bearer","refresh_token":"user-refresh","expires_in":3600}`))
	}))
	defer accounts.Close()

	f := newTestFlow(t)
	f.oauth.Endpoint = oauth2.Endpoint{TokenURL: accounts.URL + "/api/token"}

	// Play the browser's part.
	go func() {
		resp, err := http.Get(callbackURL(f, "code=auth-code&state="+url.QueryEscape(f.state)))
		if err != nil {
			t.Errorf("callback request failed: %v", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200 from callback, got %d", resp.StatusCode)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	token, err := f.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if token.AccessToken != "user-token" {
		t.Errorf("unexpected access token %s", token.AccessToken)
	}
	if token.RefreshToken != "user-refresh" {
		t.Errorf("unexpected refresh token %s", token.RefreshToken)
	}
}

func TestFlowRejectsStateMismatch(t *testing.T) {
	f := newTestFlow(t)

	go func() {
		resp, err := http.Get(callbackURL(f, "code=auth-code&state=forged"))
		if err != nil {
			t.Errorf("callback request failed: %v", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("expected 403 from callback, got %d", resp.StatusCode)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := f.Wait(ctx)
	if err == nil || !strings.Contains(err.Error(), "state mismatch") {
		t.Fatalf("expected state mismatch error, got %v", err)
	}
}

func TestFlowDenied(t *testing.T) {
	f := newTestFlow(t)

	go func() {
		resp, err := http.Get(callbackURL(f, "error=access_denied"))
		if err != nil {
			t.Errorf("callback request failed: %v", err)
			return
		}
		resp.Body.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := f.Wait(ctx)
	if err == nil || !strings.Contains(err.Error(), "authorization denied") {
		t.Fatalf("expected denial error, got %v", err)
	}
}

func TestFlowContextCancelled(t *testing.T) {
	f := newTestFlow(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := f.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
}
