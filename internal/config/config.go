package config

import (
	"os"
)

// Environment variable names for credentials and identifiers. Values are
// secrets except the athlete id and port.
const (
	EnvAthleteID    = "INTERVALS_ATHLETE_ID"
	EnvAPIKey       = "INTERVALS_API_KEY"
	EnvClientID     = "STRAVA_CLIENT_ID"
	EnvClientSecret = "STRAVA_CLIENT_SECRET"
	EnvAccessToken  = "STRAVA_ACCESS_TOKEN"
	EnvRefreshToken = "STRAVA_REFRESH_TOKEN"
	EnvPort         = "PORT"
)

// Config is the process-wide credential and identity store. It is read once
// at startup and injected into every component; absent values are empty
// strings and become per-call errors, never a startup failure. The only
// value that is ever replaced after startup is the in-memory bearer token
// inside a single retry cycle, which is call-local and never written back
// here.
type Config struct {
	// Intervals.icu (primary API)
	AthleteID string
	APIKey    string

	// Strava (secondary API)
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string

	// Listener port for the HTTP transport (raw env value, may be empty).
	Port string
}

// FromEnv reads the credential set from the environment.
func FromEnv() *Config {
	return &Config{
		AthleteID:    os.Getenv(EnvAthleteID),
		APIKey:       os.Getenv(EnvAPIKey),
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		AccessToken:  os.Getenv(EnvAccessToken),
		RefreshToken: os.Getenv(EnvRefreshToken),
		Port:         os.Getenv(EnvPort),
	}
}

// IntervalsConfigured reports whether primary-API calls can be made.
func (c *Config) IntervalsConfigured() bool {
	return c.APIKey != ""
}

// MissingIntervals lists the absent variables required for primary-API calls.
func (c *Config) MissingIntervals() []string {
	if c.APIKey == "" {
		return []string{EnvAPIKey}
	}
	return nil
}

// StravaReady reports secondary-API readiness: client id and client secret
// present, and at least one of refresh token or access token.
func (c *Config) StravaReady() bool {
	return c.ClientID != "" && c.ClientSecret != "" &&
		(c.RefreshToken != "" || c.AccessToken != "")
}

// MissingStrava enumerates every absent field required for secondary-API
// access, so one error message is fully diagnostic.
func (c *Config) MissingStrava() []string {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if c.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if c.RefreshToken == "" && c.AccessToken == "" {
		missing = append(missing, EnvRefreshToken+" or "+EnvAccessToken)
	}
	return missing
}

// MissingRefresh enumerates every absent field required to exchange the
// refresh token for a new bearer token.
func (c *Config) MissingRefresh() []string {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if c.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if c.RefreshToken == "" {
		missing = append(missing, EnvRefreshToken)
	}
	return missing
}
