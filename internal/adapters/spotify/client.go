package spotify

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ewilliams-labs/seekwave/internal/core/ports"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	DefaultBaseURL  = "https://api.spotify.com/v1"
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
)

// Config holds the credentials and endpoints for the Spotify Web API.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	MaxRetries   int
	RetryBackoff time.Duration
}

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.SpotifyProvider = (*Client)(nil)

// NewClient constructs a Spotify client authenticated with the client
// credentials flow. When store is non-nil, issued tokens are persisted there
// and reused across restarts until they expire.
func NewClient(ctx context.Context, cfg Config, store ports.TokenStore) *Client {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	var src oauth2.TokenSource = cc.TokenSource(ctx)
	if store != nil {
		src = oauth2.ReuseTokenSource(nil, newStoreTokenSource(cfg.ClientID, store, src))
	}

	c := NewClientWithBaseURL(oauth2.NewClient(ctx, src), cfg.BaseURL)
	c.maxRetries = cfg.MaxRetries
	c.baseBackoff = cfg.RetryBackoff
	return c
}

// NewClientWithBaseURL constructs a client around an already authenticated http.Client.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		baseBackoff: time.Duration(defaultBackoffMs) * time.Millisecond,
	}
}
