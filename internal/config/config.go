// Package config holds the application's settings in one explicit struct.
// Every option and its default is enumerated here; required credentials are
// validated eagerly so a missing variable fails before any network call.
package config

import (
	"github.com/spf13/viper"

	"github.com/bplemons/flow-metrics/internal/errs"
)

// Environment variable names, also usable as flags or config-file keys via
// viper.
const (
	EnvSpotifyClientID     = "SPOTIFY_CLIENT_ID"
	EnvSpotifyClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvGeniusAccessToken   = "GENIUS_ACCESS_TOKEN"
	EnvMusixmatchAPIKey    = "MUSIXMATCH_API_KEY"
	EnvMusicBrainzApp      = "MUSICBRAINZ_APP_NAME"
	EnvMusicBrainzVersion  = "MUSICBRAINZ_APP_VERSION"
	EnvMusicBrainzContact  = "MUSICBRAINZ_CONTACT"
	EnvSendGridAPIKey      = "SENDGRID_API_KEY"
	EnvLogLevel            = "LOG_LEVEL"
	EnvCacheDir            = "CACHE_DIR"
	EnvDatabase            = "DATABASE"
)

// Config is populated once at command start.
type Config struct {
	SpotifyClientID     string
	SpotifyClientSecret string
	GeniusAccessToken   string
	MusixmatchAPIKey    string
	MusicBrainzApp      string
	MusicBrainzVersion  string
	MusicBrainzContact  string
	SendGridAPIKey      string
	LogLevel            string
	CacheDir            string
	DatabasePath        string
}

// viper keys for each setting.
var keys = map[string]string{
	EnvSpotifyClientID:     "spotify_client_id",
	EnvSpotifyClientSecret: "spotify_client_secret",
	EnvGeniusAccessToken:   "genius_access_token",
	EnvMusixmatchAPIKey:    "musixmatch_api_key",
	EnvMusicBrainzApp:      "musicbrainz_app_name",
	EnvMusicBrainzVersion:  "musicbrainz_app_version",
	EnvMusicBrainzContact:  "musicbrainz_contact",
	EnvSendGridAPIKey:      "sendgrid_api_key",
	EnvLogLevel:            "log_level",
	EnvCacheDir:            "cache_dir",
	EnvDatabase:            "database",
}

// BindEnv wires every setting to its environment variable and registers
// defaults. Call once before Load, typically from the root command.
func BindEnv() {
	for env, key := range keys {
		viper.BindEnv(key, env)
	}
	viper.SetDefault(keys[EnvMusicBrainzApp], "flow-metrics")
	viper.SetDefault(keys[EnvMusicBrainzVersion], "1.0")
	viper.SetDefault(keys[EnvLogLevel], "info")
	viper.SetDefault(keys[EnvCacheDir], ".cache")
	viper.SetDefault(keys[EnvDatabase], "./flowmetrics.db")
}

// Load populates the configuration struct from viper (flags, environment,
// config file).
func Load() *Config {
	return &Config{
		SpotifyClientID:     viper.GetString(keys[EnvSpotifyClientID]),
		SpotifyClientSecret: viper.GetString(keys[EnvSpotifyClientSecret]),
		GeniusAccessToken:   viper.GetString(keys[EnvGeniusAccessToken]),
		MusixmatchAPIKey:    viper.GetString(keys[EnvMusixmatchAPIKey]),
		MusicBrainzApp:      viper.GetString(keys[EnvMusicBrainzApp]),
		MusicBrainzVersion:  viper.GetString(keys[EnvMusicBrainzVersion]),
		MusicBrainzContact:  viper.GetString(keys[EnvMusicBrainzContact]),
		SendGridAPIKey:      viper.GetString(keys[EnvSendGridAPIKey]),
		LogLevel:            viper.GetString(keys[EnvLogLevel]),
		CacheDir:            viper.GetString(keys[EnvCacheDir]),
		DatabasePath:        viper.GetString(keys[EnvDatabase]),
	}
}

// RequireSpotify validates the Spotify credentials, failing with the name of
// the first missing variable.
func (c *Config) RequireSpotify() error {
	if c.SpotifyClientID == "" {
		return &errs.ConfigurationError{Variable: EnvSpotifyClientID}
	}
	if c.SpotifyClientSecret == "" {
		return &errs.ConfigurationError{Variable: EnvSpotifyClientSecret}
	}
	return nil
}

// RequireGenius validates the Genius access token.
func (c *Config) RequireGenius() error {
	if c.GeniusAccessToken == "" {
		return &errs.ConfigurationError{Variable: EnvGeniusAccessToken}
	}
	return nil
}

// RequireMusixmatch validates the Musixmatch API key. Musixmatch is an
// optional fallback lyrics source, so callers treat a failure here as
// "fallback disabled" rather than a fatal error.
func (c *Config) RequireMusixmatch() error {
	if c.MusixmatchAPIKey == "" {
		return &errs.ConfigurationError{Variable: EnvMusixmatchAPIKey}
	}
	return nil
}

// RequireMusicBrainz validates the MusicBrainz app identity. App name and
// version have defaults; the contact address must be supplied because
// MusicBrainz requires an identified User-Agent.
func (c *Config) RequireMusicBrainz() error {
	if c.MusicBrainzContact == "" {
		return &errs.ConfigurationError{Variable: EnvMusicBrainzContact}
	}
	return nil
}

// RequireSendGrid validates the SendGrid API key.
func (c *Config) RequireSendGrid() error {
	if c.SendGridAPIKey == "" {
		return &errs.ConfigurationError{Variable: EnvSendGridAPIKey}
	}
	return nil
}

// Quiet reports whether per-item progress and skip warnings should be
// suppressed, leaving only errors on the console.
func (c *Config) Quiet() bool {
	return c.LogLevel == "error"
}
