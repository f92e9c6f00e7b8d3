package googleauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// driveFileScope grants per-file access to files the app creates or opens.
const driveFileScope = "https://www.googleapis.com/auth/drive.file"

// Config identifies the OAuth client used for the one-time refresh-token
// bootstrap flow.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func (c Config) oauth() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       []string{driveFileScope},
		Endpoint:     google.Endpoint,
	}
}

// AuthCodeURL returns the consent-screen URL. Offline access plus forced
// consent is what makes Google hand back a refresh token.
func AuthCodeURL(cfg Config, state string) string {
	return cfg.oauth().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// Exchange trades an authorization code for tokens. The refresh token in the
// result is what the operator stores as GOOGLE_REFRESH_TOKEN.
func Exchange(ctx context.Context, cfg Config, code string) (*oauth2.Token, error) {
	tok, err := cfg.oauth().Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}
