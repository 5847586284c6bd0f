package spotify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// tokenExpiryLeeway is how long before the recorded expiry a token is
// already treated as expired, so requests never go out with a token about
// to lapse mid-flight.
const tokenExpiryLeeway = 5 * time.Minute

// tokenManager owns the access token for one client.
//
// All token state is guarded by a single mutex that is held across the
// refresh exchange. That makes the refresh a single-flight operation: a
// second caller needing a token while a refresh is in progress blocks on
// the lock, re-checks validity once it gets in, and reuses the token the
// first caller minted instead of issuing a duplicate exchange.
type tokenManager struct {
	mu    sync.Mutex
	token *oauth2.Token
	stale bool // set by Invalidate, cleared by a successful refresh

	clientID     string
	clientSecret string
	accountsURL  string
	httpClient   *http.Client
	onRefresh    func(*oauth2.Token)
	appSource    oauth2.TokenSource // client-credentials flow, built lazily
	logger       zerolog.Logger
	now          func() time.Time
}

// tokenResponse is the accounts service token grant payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// Token returns a non-expired access token, refreshing transparently when
// the stored one is expired or absent.
//
// When no refresh token and no client credentials exist, the stored token
// is returned as-is and any 401 it earns surfaces to the caller.
func (m *tokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.validLocked() {
		return m.token.AccessToken, nil
	}

	switch {
	case m.token != nil && m.token.RefreshToken != "" && m.clientID != "":
		if err := m.refreshLocked(ctx); err != nil {
			return "", err
		}
	case m.clientID != "" && m.clientSecret != "":
		if err := m.mintAppTokenLocked(); err != nil {
			return "", err
		}
	case m.token != nil && m.token.AccessToken != "":
		// No way to refresh: proceed with what we have.
		return m.token.AccessToken, nil
	default:
		return "", ErrNoToken
	}

	return m.token.AccessToken, nil
}

// Invalidate marks the current token expired so the next Token call
// refreshes. The request gateway calls this after a 401.
func (m *tokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stale = true
	// A cached client-credentials source would keep serving the rejected
	// token; rebuild it on next use.
	m.appSource = nil
}

func (m *tokenManager) validLocked() bool {
	if m.stale || m.token == nil || m.token.AccessToken == "" {
		return false
	}
	if m.token.Expiry.IsZero() {
		// Statically supplied token with no known expiry.
		return true
	}
	return m.now().Before(m.token.Expiry.Add(-tokenExpiryLeeway))
}

// refreshLocked exchanges the refresh token for a new access token.
// Callers hold m.mu.
func (m *tokenManager) refreshLocked(ctx context.Context) error {
	m.logger.Debug().Msg("Refreshing access token")

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", m.token.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return &AuthError{Message: "failed to build refresh request", Err: err}
	}
	req.SetBasicAuth(m.clientID, m.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return &AuthError{Message: "accounts endpoint unreachable", Err: err}
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return &AuthError{Message: "failed to read refresh response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		m.logger.Warn().Int("status", resp.StatusCode).Msg("Token refresh rejected")
		return &AuthError{Message: "token refresh rejected", Err: newAPIError(resp.StatusCode, body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return &AuthError{Message: "failed to parse refresh response", Err: err}
	}
	if tr.AccessToken == "" {
		return &AuthError{Message: "refresh response carried no access token"}
	}

	refreshToken := tr.RefreshToken
	if refreshToken == "" {
		// The accounts service omits the refresh token when it is unchanged.
		refreshToken = m.token.RefreshToken
	}

	m.token = &oauth2.Token{
		AccessToken:  tr.AccessToken,
		TokenType:    tr.TokenType,
		RefreshToken: refreshToken,
		Expiry:       m.now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	m.stale = false

	m.logger.Info().
		Time("expiry", m.token.Expiry).
		Msg("Access token refreshed")

	if m.onRefresh != nil {
		m.onRefresh(cloneToken(m.token))
	}
	return nil
}

// mintAppTokenLocked obtains an app token via the client-credentials flow.
// Callers hold m.mu.
func (m *tokenManager) mintAppTokenLocked() error {
	if m.appSource == nil {
		cc := &clientcredentials.Config{
			ClientID:     m.clientID,
			ClientSecret: m.clientSecret,
			TokenURL:     m.accountsURL + "/api/token",
		}
		cctx := context.WithValue(context.Background(), oauth2.HTTPClient, m.httpClient)
		m.appSource = cc.TokenSource(cctx)
	}

	m.logger.Debug().Msg("Requesting client-credentials token")

	tok, err := m.appSource.Token()
	if err != nil {
		m.logger.Warn().Err(err).Msg("Client-credentials exchange failed")
		return &AuthError{Message: "client-credentials exchange failed", Err: err}
	}

	m.token = tok
	m.stale = false

	m.logger.Info().
		Time("expiry", tok.Expiry).
		Msg("Client-credentials token obtained")

	if m.onRefresh != nil {
		m.onRefresh(cloneToken(m.token))
	}
	return nil
}

// cloneToken copies a token so callers and callbacks cannot alias the
// manager's state.
func cloneToken(t *oauth2.Token) *oauth2.Token {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}
