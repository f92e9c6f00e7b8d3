package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Environment string
	Port        string
	LogLevel    string

	// RedisURL points at the shared key-value store holding the event
	// registry. EventsKey is the single key the registry lives under.
	RedisURL  string
	EventsKey string

	// DriveFolderID is the default folder uploads land in when an event has
	// no folder of its own. DrivePublic grants public read on uploaded files.
	DriveFolderID string
	DrivePublic   bool

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string

	// PublicBaseURL is used for the OAuth redirect URL and public event links.
	PublicBaseURL  string
	AllowedOrigins []string

	// UploadTmpDir overrides the staging directory for in-flight uploads.
	// Empty means the OS temp dir.
	UploadTmpDir string
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production .env might not exist and we rely on system environment
	// variables, so a missing file is only a warning.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               os.Getenv("PORT"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		EventsKey:          os.Getenv("EVENTS_KEY"),
		DriveFolderID:      os.Getenv("DRIVE_FOLDER_ID"),
		DrivePublic:        strings.EqualFold(os.Getenv("DRIVE_PUBLIC"), "true"),
		GoogleClientID:     os.Getenv("GOOGLE_OAUTH_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET"),
		GoogleRefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),
		PublicBaseURL:      os.Getenv("PUBLIC_BASE_URL"),
		UploadTmpDir:       os.Getenv("UPLOAD_TMP_DIR"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}
	if cfg.EventsKey == "" {
		cfg.EventsKey = "pixdrop:events"
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "https://www.pixdrop.cloud"
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{"https://pixdrop.cloud", "https://www.pixdrop.cloud"}
	}

	return cfg, nil
}

// OAuthRedirectURL is where the OAuth consent flow returns to.
func (c *Config) OAuthRedirectURL() string {
	return strings.TrimSuffix(c.PublicBaseURL, "/") + "/api/oauth/callback"
}

// HasGoogleCredentials reports whether the OAuth client pair is configured.
func (c *Config) HasGoogleCredentials() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
