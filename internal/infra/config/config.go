// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Sink types.
const (
	SinkTypeSpeaker = "speaker"
	SinkTypeNone    = "none"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Admin   AdminConfig   `yaml:"admin"`
	Player  PlayerConfig  `yaml:"player"`
	Sink    SinkConfig    `yaml:"sink"`
	Catalog CatalogConfig `yaml:"catalog"`
	Spotify SpotifyConfig `yaml:"spotify"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr  string      `yaml:"addr" default:":8080"`
	Hooks HooksConfig `yaml:"hooks"`
}

// HooksConfig represents lifecycle hooks configuration.
type HooksConfig struct {
	OnStarted []string `yaml:"on_started"`
	OnStopped []string `yaml:"on_stopped"`
}

// AdminConfig represents admin-related configuration.
type AdminConfig struct {
	Token string `yaml:"token" validate:"required"`
}

// PlayerConfig represents the initial player state.
type PlayerConfig struct {
	InitialVolume *float64 `yaml:"initial_volume" default:"1" validate:"required,gte=0,lte=1"`
	Looping       *bool    `yaml:"looping" default:"true" validate:"required"`
	Shuffled      bool     `yaml:"shuffled"`
	HistorySize   int      `yaml:"history_size" default:"10" validate:"gte=1,lte=100"`
}

// SinkConfig selects and configures the audio output.
type SinkConfig struct {
	Type     string         `yaml:"type" default:"speaker" validate:"oneof=speaker none"`
	Settings map[string]any `yaml:"settings"`
}

// CatalogConfig represents the catalog store configuration.
type CatalogConfig struct {
	Path string `yaml:"path" default:"data/tunebox.db" validate:"required"`
}

// SpotifyConfig represents Spotify API configuration. Credentials are only
// needed for playlist import.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	Market       string `yaml:"market" validate:"omitempty,len=2" default:"JP"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values for sensitive fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return Parse(data)
}

// Parse builds a configuration from YAML bytes, applying environment
// overrides, defaults and validation in that order.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("SPOTIFY_REFRESH_TOKEN"); v != "" {
		c.Spotify.RefreshToken = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		c.Admin.Token = v
	}
	if v := os.Getenv("TUNEBOX_CATALOG_PATH"); v != "" {
		c.Catalog.Path = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// HasSpotify reports whether Spotify credentials are configured.
func (c *Config) HasSpotify() bool {
	return c.Spotify.ClientID != "" && c.Spotify.ClientSecret != "" && c.Spotify.RefreshToken != ""
}

// Volume returns the configured initial volume.
func (p PlayerConfig) Volume() float64 {
	if p.InitialVolume == nil {
		return 1
	}
	return *p.InitialVolume
}

// IsLooping returns the configured initial auto-advance flag.
func (p PlayerConfig) IsLooping() bool {
	if p.Looping == nil {
		return true
	}
	return *p.Looping
}

// DecodeSettings decodes the sink settings map into out, which must be a
// pointer to a struct tagged with `mapstructure`. Unknown keys are rejected.
func (s SinkConfig) DecodeSettings(out any) error {
	if len(s.Settings) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create settings decoder")
	}
	if err := decoder.Decode(s.Settings); err != nil {
		return errors.Wrapf(err, "invalid %s sink settings", s.Type)
	}
	return nil
}
