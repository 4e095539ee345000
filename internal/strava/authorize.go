package strava

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// Scope required to read all activity detail, including private activities.
const Scope = "activity:read_all"

// redirectURL is the conventional out-of-band redirect for CLI bootstraps:
// Strava redirects the browser to localhost and the user copies the code
// from the address bar.
const redirectURL = "http://localhost/exchange_token"

// oauthConfig returns the x/oauth2 configuration for the authorization-code
// bootstrap. The regular refresh flow does not go through x/oauth2; it needs
// the raw expires_at and tolerates absent fields (see Refresh).
func oauthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  BaseURL + "/oauth/authorize",
			TokenURL: BaseURL + "/oauth/token",
		},
		RedirectURL: redirectURL,
		Scopes:      []string{Scope},
	}
}

// AuthCodeURL returns the URL the user opens in a browser to grant access.
func AuthCodeURL(clientID string) string {
	return oauthConfig(clientID, "").AuthCodeURL("state",
		oauth2.SetAuthURLParam("approval_prompt", "auto"))
}

// Exchange trades an authorization code for the initial token pair.
func Exchange(ctx context.Context, clientID, clientSecret, code string) (TokenTriple, error) {
	tok, err := oauthConfig(clientID, clientSecret).Exchange(ctx, code)
	if err != nil {
		return TokenTriple{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	return TokenTriple{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry.Unix(),
	}, nil
}
