package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		FileEnv,
		"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "SPOTIFY_API_URL", "SPOTIFY_TOKEN_URL",
		"SPOTIFY_MAX_RETRIES", "SPOTIFY_RETRY_BACKOFF_MS", "STORAGE_PATH", "PORT",
		"WAVEFORM_WIDTH", "WAVEFORM_HEIGHT", "WAVEFORM_COLOR", "PREFETCH_WORKERS", "PREFETCH_QUEUE", "PREVIEW_WINDOW_MS",
	} {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seekwave.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("addr: got %q", cfg.Addr())
	}
	if cfg.Spotify.RetryBackoff() != 500*time.Millisecond {
		t.Errorf("backoff: got %v", cfg.Spotify.RetryBackoff())
	}
	if cfg.Preview.Window() != 250*time.Millisecond {
		t.Errorf("window: got %v", cfg.Preview.Window())
	}
}

func TestLoad_Precedence(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		want func(Config) Config
	}{
		{
			name: "env overrides defaults",
			env: map[string]string{
				"SPOTIFY_CLIENT_ID": "id",
				"PORT":              "9090",
				"WAVEFORM_COLOR":    "#1db954",
				"WAVEFORM_WIDTH":    "600",
			},
			want: func(c Config) Config {
				c.Waveform.Width = 600
				c.Spotify.ClientID = "id"
				c.Server.Port = 9090
				c.Waveform.Color = "#1db954"
				return c
			},
		},
		{
			name: "file overrides defaults",
			file: "storage:\n  path: /var/lib/seekwave.db\nwaveform:\n  height: 48\n",
			want: func(c Config) Config {
				c.Storage.Path = "/var/lib/seekwave.db"
				c.Waveform.Height = 48
				return c
			},
		},
		{
			name: "env overrides file",
			file: "prefetch:\n  workers: 8\n  queue: 16\n",
			env:  map[string]string{"PREFETCH_WORKERS": "4"},
			want: func(c Config) Config {
				c.Prefetch.Workers = 4
				c.Prefetch.Queue = 16
				return c
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			if tc.file != "" {
				t.Setenv(FileEnv, writeConfigFile(t, tc.file))
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			got, err := Load()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if want := tc.want(Default()); got != want {
				t.Fatalf("got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "non-numeric int", env: map[string]string{"PORT": "http"}},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "zero height", env: map[string]string{"WAVEFORM_HEIGHT": "0"}},
		{name: "negative width", env: map[string]string{"WAVEFORM_WIDTH": "-5"}},
		{name: "negative retries", env: map[string]string{"SPOTIFY_MAX_RETRIES": "-1"}},
		{name: "invalid yaml", file: "server: [port"},
		{name: "missing file", env: map[string]string{FileEnv: "/nonexistent/seekwave.yaml"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			if tc.file != "" {
				t.Setenv(FileEnv, writeConfigFile(t, tc.file))
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
