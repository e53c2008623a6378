// Package config loads runtime settings from defaults, an optional YAML file
// and the environment, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// FileEnv names the variable holding the optional YAML config path.
const FileEnv = "SEEKWAVE_CONFIG"

// Config holds all runtime settings.
type Config struct {
	Spotify  SpotifyConfig  `yaml:"spotify"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	Waveform WaveformConfig `yaml:"waveform"`
	Prefetch PrefetchConfig `yaml:"prefetch"`
	Preview  PreviewConfig  `yaml:"preview"`
}

type SpotifyConfig struct {
	ClientID       string `yaml:"client_id"`
	ClientSecret   string `yaml:"client_secret"`
	APIURL         string `yaml:"api_url"`
	TokenURL       string `yaml:"token_url"`
	MaxRetries     int    `yaml:"max_retries"`
	RetryBackoffMs int    `yaml:"retry_backoff_ms"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type WaveformConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Color  string `yaml:"color"`
}

type PrefetchConfig struct {
	Workers int `yaml:"workers"`
	Queue   int `yaml:"queue"`
}

type PreviewConfig struct {
	WindowMs int `yaml:"window_ms"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Spotify: SpotifyConfig{
			APIURL:         "https://api.spotify.com/v1",
			TokenURL:       "https://accounts.spotify.com/api/token",
			MaxRetries:     3,
			RetryBackoffMs: 500,
		},
		Storage:  StorageConfig{Path: "seekwave.db"},
		Server:   ServerConfig{Port: 8080},
		Waveform: WaveformConfig{Width: 1000, Height: 36, Color: "lightgrey"},
		Prefetch: PrefetchConfig{Workers: 2, Queue: 100},
		Preview:  PreviewConfig{WindowMs: 250},
	}
}

// Load builds the configuration. Missing credentials are not an error here;
// callers decide whether they need them.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Spotify.ClientID = envStr("SPOTIFY_CLIENT_ID", c.Spotify.ClientID)
	c.Spotify.ClientSecret = envStr("SPOTIFY_CLIENT_SECRET", c.Spotify.ClientSecret)
	c.Spotify.APIURL = envStr("SPOTIFY_API_URL", c.Spotify.APIURL)
	c.Spotify.TokenURL = envStr("SPOTIFY_TOKEN_URL", c.Spotify.TokenURL)
	c.Storage.Path = envStr("STORAGE_PATH", c.Storage.Path)
	c.Waveform.Color = envStr("WAVEFORM_COLOR", c.Waveform.Color)

	ints := []struct {
		key string
		dst *int
	}{
		{"SPOTIFY_MAX_RETRIES", &c.Spotify.MaxRetries},
		{"SPOTIFY_RETRY_BACKOFF_MS", &c.Spotify.RetryBackoffMs},
		{"PORT", &c.Server.Port},
		{"WAVEFORM_WIDTH", &c.Waveform.Width},
		{"WAVEFORM_HEIGHT", &c.Waveform.Height},
		{"PREFETCH_WORKERS", &c.Prefetch.Workers},
		{"PREFETCH_QUEUE", &c.Prefetch.Queue},
		{"PREVIEW_WINDOW_MS", &c.Preview.WindowMs},
	}
	for _, v := range ints {
		n, err := envInt(v.key, *v.dst)
		if err != nil {
			return err
		}
		*v.dst = n
	}
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	if c.Waveform.Width <= 0 || c.Waveform.Height <= 0 {
		return fmt.Errorf("config: waveform size must be positive, got %dx%d", c.Waveform.Width, c.Waveform.Height)
	}
	if c.Spotify.MaxRetries < 0 {
		return fmt.Errorf("config: max retries cannot be negative, got %d", c.Spotify.MaxRetries)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

func (c SpotifyConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMs) * time.Millisecond
}

func (c PreviewConfig) Window() time.Duration {
	return time.Duration(c.WindowMs) * time.Millisecond
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}
