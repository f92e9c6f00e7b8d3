package drive

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"pixdrop/internal/domain"
)

// Config holds the OAuth2 credentials used to reach the Drive API.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	RedirectURL  string
}

var (
	errNoCredentials  = errors.New("google oauth credentials not configured")
	errNoRefreshToken = errors.New("google refresh token not configured; visit /api/oauth/authorize to set up OAuth")
)

// NewService builds an authorized Drive service from a stored refresh token.
func NewService(ctx context.Context, cfg Config) (*drive.Service, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errNoCredentials
	}
	if cfg.RefreshToken == "" {
		return nil, errNoRefreshToken
	}
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{drive.DriveFileScope},
		Endpoint:     google.Endpoint,
	}
	ts := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return svc, nil
}

// NewFileStorage returns Drive-backed storage when credentials are complete,
// or a storage whose every call fails with the configuration error otherwise.
// The server still boots without credentials so the OAuth bootstrap endpoints
// stay reachable.
func NewFileStorage(ctx context.Context, cfg Config) domain.FileStorage {
	svc, err := NewService(ctx, cfg)
	if err != nil {
		return &unconfiguredStorage{err: err}
	}
	return &driveStorage{svc: svc}
}
