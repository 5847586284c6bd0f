package spotify

import (
	"golang.org/x/oauth2"
)

// Endpoint is the Spotify accounts service OAuth 2.0 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:  DefaultAccountsURL + "/authorize",
	TokenURL: DefaultAccountsURL + "/api/token",
}

// OAuthConfig builds the oauth2 configuration for the authorization-code
// flow. The token it yields carries a refresh token; hand it to Config.Token
// and the client keeps it fresh from then on.
func OAuthConfig(clientID, clientSecret, redirectURI string, scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       scopes,
		Endpoint:     Endpoint,
	}
}

// AuthURL builds the user-facing authorization URL. state should be an
// unguessable value the caller verifies on the redirect; when showDialog is
// true the approval prompt is forced even for already-authorized users.
func AuthURL(clientID, redirectURI string, scopes []string, state string, showDialog bool) string {
	cfg := OAuthConfig(clientID, "", redirectURI, scopes)
	opts := []oauth2.AuthCodeOption{}
	if showDialog {
		opts = append(opts, oauth2.SetAuthURLParam("show_dialog", "true"))
	}
	return cfg.AuthCodeURL(state, opts...)
}
